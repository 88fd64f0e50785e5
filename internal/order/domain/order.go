// Package domain defines the order aggregate and its state machine.
//
// An order starts in CREATED, may be paid, and may be cancelled from CREATED or
// PAID. CANCELLED is absorbing: every transition attempted on a cancelled order is
// rejected with an *InvalidStateTransitionError and leaves the order unchanged.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus converts a string into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusCreated, OrderStatusPaid, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// TransitionPolicy configures the transitions whose legality is a business decision
// rather than a property of the state machine.
type TransitionPolicy struct {
	// AllowResetFromPaid permits PAID -> CREATED. CREATED -> CREATED is always a no-op.
	AllowResetFromPaid bool
}

// AmountScale is the number of decimal places an order total may carry. Totals
// are stored, rendered and published at this scale.
const AmountScale int32 = 2

// Order is the aggregate root of the order ledger.
type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// now is replaced in tests.
var now = func() time.Time {
	return time.Now().UTC()
}

// NewOrder creates an order in CREATED with both timestamps set to the current instant.
func NewOrder(userID uuid.UUID, totalAmount decimal.Decimal) (*Order, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if !totalAmount.IsPositive() {
		return nil, ErrInvalidTotalAmount
	}
	if !totalAmount.Equal(totalAmount.Truncate(AmountScale)) {
		return nil, ErrInvalidAmountScale
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}

	ts := now()
	return &Order{
		ID:          id,
		UserID:      userID,
		TotalAmount: totalAmount,
		Status:      OrderStatusCreated,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// MarkPaid moves the order from CREATED to PAID. Paying an already paid order is accepted
// without changing it.
func (o *Order) MarkPaid() error {
	switch o.Status {
	case OrderStatusCreated:
		o.apply(OrderStatusPaid)
		return nil
	case OrderStatusPaid:
		return nil
	default:
		return o.reject(OrderStatusPaid)
	}
}

// Cancel moves the order from CREATED or PAID to CANCELLED.
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusCreated, OrderStatusPaid:
		o.apply(OrderStatusCancelled)
		return nil
	default:
		return o.reject(OrderStatusCancelled)
	}
}

// Reset re-asserts CREATED. It is a no-op on a CREATED order, rejected on a CANCELLED
// order, and allowed on a PAID order only when the policy says so.
func (o *Order) Reset(policy TransitionPolicy) error {
	switch o.Status {
	case OrderStatusCreated:
		return nil
	case OrderStatusPaid:
		if !policy.AllowResetFromPaid {
			return o.reject(OrderStatusCreated)
		}
		o.apply(OrderStatusCreated)
		return nil
	default:
		return o.reject(OrderStatusCreated)
	}
}

// TransitionTo applies the transition that leads to target.
func (o *Order) TransitionTo(target OrderStatus, policy TransitionPolicy) error {
	switch target {
	case OrderStatusPaid:
		return o.MarkPaid()
	case OrderStatusCancelled:
		return o.Cancel()
	case OrderStatusCreated:
		return o.Reset(policy)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
}

// IsCancelled reports whether the order reached its terminal state.
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

func (o *Order) apply(status OrderStatus) {
	o.Status = status
	o.UpdatedAt = now()
}

func (o *Order) reject(attempted OrderStatus) error {
	return &InvalidStateTransitionError{Current: o.Status, Attempted: attempted}
}

// CreateOrderInput carries the fields a client supplies to create an order.
type CreateOrderInput struct {
	UserID      string
	TotalAmount decimal.Decimal
}
