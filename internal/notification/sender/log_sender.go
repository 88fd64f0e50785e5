// Package sender delivers notifications to their recipients.
package sender

import (
	"context"
	"log/slog"

	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

// LogSender simulates e-mail delivery by writing the message to the logger.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the notification as an e-mail. It fails only when ctx is done.
func (s *LogSender) Send(ctx context.Context, notification *notificationDomain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "email sent",
		slog.String("notification_id", notification.ID.String()),
		slog.String("order_id", notification.OrderID),
		slog.String("to", notification.Recipient),
		slog.String("subject", notification.Subject),
		slog.String("body", notification.Body),
	)
	return nil
}
