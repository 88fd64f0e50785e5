package domain

import (
	"fmt"

	"github.com/allisson/orders/internal/errors"
)

// Order-specific error definitions.
var (
	// ErrOrderNotFound indicates the order does not exist.
	ErrOrderNotFound = errors.Wrap(errors.ErrNotFound, "order not found")

	// ErrInvalidUserID indicates the order references no user.
	ErrInvalidUserID = errors.Wrap(errors.ErrInvalidInput, "user id is required")

	// ErrInvalidTotalAmount indicates a total amount that is zero or negative.
	ErrInvalidTotalAmount = errors.Wrap(errors.ErrInvalidInput, "total amount must be greater than zero")

	// ErrInvalidAmountScale indicates a total amount with more than AmountScale decimal places.
	ErrInvalidAmountScale = errors.Wrap(errors.ErrInvalidInput, "total amount must have at most 2 decimal places")

	// ErrInvalidStatus indicates an unknown order status.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid order status")

	// ErrUserNotFound indicates the user directory reported the referenced user as absent.
	ErrUserNotFound = errors.Wrap(errors.ErrUnprocessable, "user not found")

	// ErrValidationUnavailable indicates the user directory could not answer. Retryable.
	ErrValidationUnavailable = errors.Wrap(errors.ErrUnavailable, "user validation unavailable")

	// ErrEventPublicationFailed indicates the order was persisted but its event was not published.
	ErrEventPublicationFailed = errors.Wrap(errors.ErrPartialFailure, "order created but event publication failed")
)

// InvalidStateTransitionError is returned when a transition is not legal from the current status.
type InvalidStateTransitionError struct {
	Current   OrderStatus
	Attempted OrderStatus
}

// Error implements the error interface.
func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.Current, e.Attempted)
}

// Unwrap allows errors.Is(err, errors.ErrInvalidState).
func (e *InvalidStateTransitionError) Unwrap() error {
	return errors.ErrInvalidState
}
