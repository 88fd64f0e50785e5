// Package messaging carries order events over Kafka: the wire event, the keyed
// publisher, the consumer-group reader loop and the dead-letter sinks.
package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/allisson/orders/internal/errors"
)

const (
	// EventTypeOrderCreated is the eventType of OrderCreatedEvent.
	EventTypeOrderCreated = "OrderCreated"

	// OrderCreatedDescription is the description attached to every OrderCreatedEvent.
	OrderCreatedDescription = "New order created"
)

var (
	// ErrPublishFailed indicates the broker did not acknowledge the event.
	ErrPublishFailed = apperrors.Wrap(apperrors.ErrUnavailable, "event publication failed")

	// ErrInvalidEvent indicates a message that cannot be decoded into an OrderCreatedEvent.
	ErrInvalidEvent = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid event")
)

// OrderCreatedEvent is the immutable fact emitted once per successfully created order.
type OrderCreatedEvent struct {
	OrderID       string      `json:"orderId"`
	CustomerID    string      `json:"customerId"`
	CustomerEmail string      `json:"customerEmail"`
	TotalAmount   json.Number `json:"totalAmount"`
	Description   string      `json:"description"`
	CreatedAt     time.Time   `json:"createdAt"`
	EventType     string      `json:"eventType"`
}

// NewOrderCreatedEvent builds the event for a newly created order.
func NewOrderCreatedEvent(
	orderID, customerID uuid.UUID,
	customerEmail string,
	totalAmount decimal.Decimal,
	createdAt time.Time,
) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		OrderID:       orderID.String(),
		CustomerID:    customerID.String(),
		CustomerEmail: customerEmail,
		TotalAmount:   json.Number(totalAmount.StringFixed(2)),
		Description:   OrderCreatedDescription,
		CreatedAt:     createdAt.UTC(),
		EventType:     EventTypeOrderCreated,
	}
}

// Key returns the partition key. All events of one order share a partition.
func (e *OrderCreatedEvent) Key() []byte {
	return []byte(e.OrderID)
}

// Amount parses TotalAmount as a decimal.
func (e *OrderCreatedEvent) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(e.TotalAmount.String())
}

// Marshal encodes the event as JSON.
func (e *OrderCreatedEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalOrderCreatedEvent decodes a message value into an OrderCreatedEvent.
func UnmarshalOrderCreatedEvent(data []byte) (*OrderCreatedEvent, error) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, apperrors.Wrapf(ErrInvalidEvent, "decode: %v", err)
	}
	if event.OrderID == "" {
		return nil, apperrors.Wrap(ErrInvalidEvent, "missing orderId")
	}
	if event.EventType != "" && event.EventType != EventTypeOrderCreated {
		return nil, apperrors.Wrapf(ErrInvalidEvent, "unexpected eventType %q", event.EventType)
	}
	return &event, nil
}
