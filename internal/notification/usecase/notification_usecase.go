package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/messaging"
	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

// RetryConfig bounds dispatch attempts. When disabled every notification is dispatched
// exactly once.
type RetryConfig struct {
	Enabled     bool
	MaxAttempts int
	Backoff     time.Duration
}

func (r RetryConfig) attempts() int {
	if !r.Enabled || r.MaxAttempts < 1 {
		return 1
	}
	return r.MaxAttempts
}

type notificationUseCase struct {
	repo   NotificationRepository
	sender Sender
	retry  RetryConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewNotificationUseCase creates the notification projector.
func NewNotificationUseCase(
	repo NotificationRepository,
	sender Sender,
	retry RetryConfig,
	logger *slog.Logger,
) UseCase {
	return &notificationUseCase{
		repo:   repo,
		sender: sender,
		retry:  retry,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Project handles one delivery of an OrderCreated event.
func (n *notificationUseCase) Project(
	ctx context.Context,
	event *messaging.OrderCreatedEvent,
) (*notificationDomain.Notification, error) {
	amount, err := event.Amount()
	if err != nil {
		return nil, fmt.Errorf("%w: totalAmount %q", messaging.ErrInvalidEvent, event.TotalAmount)
	}

	notification := notificationDomain.NewOrderCreatedNotification(
		event.OrderID,
		event.CustomerEmail,
		amount,
		event.Description,
		n.now(),
	)
	if err := n.repo.Save(ctx, notification); err != nil {
		return nil, err
	}

	if !notification.HasRecipient() {
		return n.fail(ctx, notification, notificationDomain.ErrMissingRecipient)
	}

	sendErr := n.dispatch(ctx, notification)
	if sendErr != nil {
		return n.fail(ctx, notification, sendErr)
	}

	notification.MarkSent(n.now())
	if err := n.repo.Save(ctx, notification); err != nil {
		return nil, err
	}

	n.logger.Info("notification sent",
		slog.String("notification_id", notification.ID.String()),
		slog.String("order_id", notification.OrderID),
		slog.Int("attempts", notification.Attempts),
	)
	return notification, nil
}

func (n *notificationUseCase) dispatch(ctx context.Context, notification *notificationDomain.Notification) error {
	maxAttempts := n.retry.attempts()

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		notification.Attempts++
		if err = n.sender.Send(ctx, notification); err == nil {
			return nil
		}

		n.logger.Warn("notification dispatch failed",
			slog.String("notification_id", notification.ID.String()),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retry.Backoff):
		}
	}
	return err
}

func (n *notificationUseCase) fail(
	ctx context.Context,
	notification *notificationDomain.Notification,
	cause error,
) (*notificationDomain.Notification, error) {
	notification.MarkFailed(cause.Error())
	if err := n.repo.Save(ctx, notification); err != nil {
		return nil, err
	}

	n.logger.Error("notification failed",
		slog.String("notification_id", notification.ID.String()),
		slog.String("order_id", notification.OrderID),
		slog.Any("error", cause),
	)
	return notification, fmt.Errorf("%w: %w", notificationDomain.ErrNotificationDeliveryFailed, cause)
}

// GetByID retrieves a notification.
func (n *notificationUseCase) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*notificationDomain.Notification, error) {
	return n.repo.FindByID(ctx, id)
}

// ListByOrderID returns every notification recorded for the order.
func (n *notificationUseCase) ListByOrderID(
	ctx context.Context,
	orderID string,
) ([]*notificationDomain.Notification, error) {
	return n.repo.FindByOrderID(ctx, orderID)
}
