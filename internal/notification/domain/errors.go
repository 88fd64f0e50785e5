package domain

import (
	"github.com/allisson/orders/internal/errors"
)

// Notification-specific error definitions.
var (
	// ErrNotificationNotFound indicates the notification does not exist.
	ErrNotificationNotFound = errors.Wrap(errors.ErrNotFound, "notification not found")

	// ErrMissingRecipient indicates the event carried no recipient address.
	ErrMissingRecipient = errors.Wrap(errors.ErrInvalidInput, "notification has no recipient")

	// ErrNotificationDeliveryFailed indicates the notification ended in FAILED.
	ErrNotificationDeliveryFailed = errors.Wrap(errors.ErrUnavailable, "notification delivery failed")
)
