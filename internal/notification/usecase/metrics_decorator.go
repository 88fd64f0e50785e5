package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/messaging"
	"github.com/allisson/orders/internal/metrics"
	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

// notificationUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type notificationUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewNotificationUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewNotificationUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &notificationUseCaseWithMetrics{next: useCase, metrics: m}
}

func (n *notificationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, n.metrics, "notifications", operation, start, err)
}

// Project records metrics for notification projection.
func (n *notificationUseCaseWithMetrics) Project(
	ctx context.Context,
	event *messaging.OrderCreatedEvent,
) (*notificationDomain.Notification, error) {
	start := time.Now()
	notification, err := n.next.Project(ctx, event)
	n.record(ctx, "notification_project", start, err)
	return notification, err
}

// GetByID records metrics for notification retrieval.
func (n *notificationUseCaseWithMetrics) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*notificationDomain.Notification, error) {
	start := time.Now()
	notification, err := n.next.GetByID(ctx, id)
	n.record(ctx, "notification_get", start, err)
	return notification, err
}

// ListByOrderID records metrics for notification listing.
func (n *notificationUseCaseWithMetrics) ListByOrderID(
	ctx context.Context,
	orderID string,
) ([]*notificationDomain.Notification, error) {
	start := time.Now()
	notifications, err := n.next.ListByOrderID(ctx, orderID)
	n.record(ctx, "notification_list", start, err)
	return notifications, err
}
