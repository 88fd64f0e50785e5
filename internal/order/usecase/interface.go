// Package usecase implements the order workflow: validate the referenced user, persist
// the order together with its outbox record, then publish the OrderCreated event.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/messaging"
	orderClient "github.com/allisson/orders/internal/order/client"
	orderDomain "github.com/allisson/orders/internal/order/domain"
	outboxDomain "github.com/allisson/orders/internal/outbox/domain"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	Save(ctx context.Context, order *orderDomain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error)
	FindAll(ctx context.Context) ([]*orderDomain.Order, error)
	FindByStatus(ctx context.Context, status orderDomain.OrderStatus) ([]*orderDomain.Order, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// UserValidator checks that a user exists in the user directory.
type UserValidator interface {
	ValidateUserExists(ctx context.Context, userID uuid.UUID) (*orderClient.UserInfo, error)
}

// EventPublisher publishes order events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event *messaging.OrderCreatedEvent) error
}

// OutboxEventRepository records events for the outbox relay.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
	Update(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// UseCase is the order capability exposed to transports.
type UseCase interface {
	// Create validates the user, persists the order and publishes OrderCreated. When the
	// order is persisted but publication fails, both the order and an error wrapping
	// orderDomain.ErrEventPublicationFailed are returned.
	Create(ctx context.Context, input *orderDomain.CreateOrderInput) (*orderDomain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error)
	// List returns every order, or only those in status when it is not nil.
	List(ctx context.Context, status *orderDomain.OrderStatus) ([]*orderDomain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*orderDomain.Order, error)
	// Delete removes the order regardless of its status.
	Delete(ctx context.Context, id uuid.UUID) error
}
