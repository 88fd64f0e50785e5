// Package domain defines the notification produced for each delivered OrderCreated event.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationStatus represents the delivery state of a notification.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// OrderCreatedSubject is the subject of every order confirmation.
const OrderCreatedSubject = "Your order has been created"

// Notification is one delivery attempt record. Redelivered events produce independent
// notifications.
type Notification struct {
	ID            uuid.UUID          `json:"id"`
	OrderID       string             `json:"orderId"`
	Recipient     string             `json:"recipient"`
	Subject       string             `json:"subject"`
	Body          string             `json:"body"`
	Status        NotificationStatus `json:"status"`
	Attempts      int                `json:"attempts"`
	SentAt        *time.Time         `json:"sentAt,omitempty"`
	FailureReason *string            `json:"failureReason,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// NewOrderCreatedNotification builds a PENDING order confirmation.
func NewOrderCreatedNotification(
	orderID, recipient string,
	amount decimal.Decimal,
	description string,
	now time.Time,
) *Notification {
	return &Notification{
		ID:        uuid.Must(uuid.NewV7()),
		OrderID:   orderID,
		Recipient: recipient,
		Subject:   OrderCreatedSubject,
		Body:      OrderCreatedBody(orderID, amount, description),
		Status:    NotificationStatusPending,
		CreatedAt: now,
	}
}

// OrderCreatedBody renders the confirmation message.
func OrderCreatedBody(orderID string, amount decimal.Decimal, description string) string {
	return fmt.Sprintf(
		"Hello,\n\nYour order #%s has been processed successfully.\nAmount: $%s\nItems: %s\n\nThank you for your purchase!",
		orderID,
		amount.StringFixed(2),
		description,
	)
}

// HasRecipient reports whether the notification can be dispatched.
func (n *Notification) HasRecipient() bool {
	return n.Recipient != ""
}

// MarkSent records a successful dispatch.
func (n *Notification) MarkSent(now time.Time) {
	n.Status = NotificationStatusSent
	n.SentAt = &now
	n.FailureReason = nil
}

// MarkFailed records a failed dispatch with its reason.
func (n *Notification) MarkFailed(reason string) {
	n.Status = NotificationStatusFailed
	n.SentAt = nil
	n.FailureReason = &reason
}
