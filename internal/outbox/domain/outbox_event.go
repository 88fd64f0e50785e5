// Package domain defines the outbox event recorded alongside an order so that its
// publication can be retried after a failed eager publish.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent is a serialized event waiting to reach the broker.
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent creates a pending event for the aggregate.
func NewOutboxEvent(aggregateID uuid.UUID, eventType string, payload []byte) *OutboxEvent {
	now := time.Now().UTC()
	return &OutboxEvent{
		ID:          uuid.Must(uuid.NewV7()),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     string(payload),
		Status:      OutboxEventStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MarkProcessed records a successful publication.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.LastError = nil
	e.UpdatedAt = now
}

// MarkAttemptFailed records a failed publication. The event is given up once retries
// reach maxRetries; a non-positive maxRetries retries forever.
func (e *OutboxEvent) MarkAttemptFailed(err error, maxRetries int, now time.Time) {
	e.Retries++
	msg := err.Error()
	e.LastError = &msg
	e.UpdatedAt = now
	if maxRetries > 0 && e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}
