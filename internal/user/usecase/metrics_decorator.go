package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/metrics"
	"github.com/allisson/orders/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, u.metrics, "users", operation, start, err)
}

// Create records metrics for user registration.
func (u *userUseCaseWithMetrics) Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	u.record(ctx, "user_create", start, err)
	return user, err
}

// GetByID records metrics for user lookups.
func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetByID(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// List records metrics for user listing.
func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	u.record(ctx, "user_list", start, err)
	return users, err
}

// Delete records metrics for user deletion.
func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	u.record(ctx, "user_delete", start, err)
	return err
}
