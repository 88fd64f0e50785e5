package usecase

import (
	"context"

	"github.com/allisson/orders/internal/messaging"
)

// EventHandler adapts a UseCase to messaging.EventHandler.
type EventHandler struct {
	useCase UseCase
}

// NewEventHandler creates the consumer-side handler.
func NewEventHandler(useCase UseCase) *EventHandler {
	return &EventHandler{useCase: useCase}
}

// HandleOrderCreated projects the event into a notification.
func (h *EventHandler) HandleOrderCreated(ctx context.Context, event *messaging.OrderCreatedEvent) error {
	_, err := h.useCase.Project(ctx, event)
	return err
}

var _ messaging.EventHandler = (*EventHandler)(nil)
