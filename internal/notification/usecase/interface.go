// Package usecase turns delivered OrderCreated events into notifications and serves
// notification queries.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/messaging"
	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

// NotificationRepository defines the persistence operations for notifications.
type NotificationRepository interface {
	Save(ctx context.Context, notification *notificationDomain.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*notificationDomain.Notification, error)
	FindByOrderID(ctx context.Context, orderID string) ([]*notificationDomain.Notification, error)
}

// Sender dispatches a notification to its recipient.
type Sender interface {
	Send(ctx context.Context, notification *notificationDomain.Notification) error
}

// UseCase is the notification capability.
type UseCase interface {
	// Project builds, persists and dispatches the notification for one delivery of event.
	// A notification that ends FAILED is returned together with an error wrapping
	// notificationDomain.ErrNotificationDeliveryFailed.
	Project(ctx context.Context, event *messaging.OrderCreatedEvent) (*notificationDomain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*notificationDomain.Notification, error)
	ListByOrderID(ctx context.Context, orderID string) ([]*notificationDomain.Notification, error)
}
