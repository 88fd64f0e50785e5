// Package usecase implements the user directory business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/user/domain"
)

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
