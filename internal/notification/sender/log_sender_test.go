package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

func TestLogSender_Send(t *testing.T) {
	n := notificationDomain.NewOrderCreatedNotification(
		"order-1", "ada@example.com", decimal.NewFromInt(5), "New order created", time.Now().UTC(),
	)

	t.Run("Success", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, s.Send(context.Background(), n))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "email sent", entry["msg"])
		assert.Equal(t, "ada@example.com", entry["to"])
		assert.Equal(t, "order-1", entry["order_id"])
		assert.Equal(t, notificationDomain.OrderCreatedSubject, entry["subject"])
	})

	t.Run("Error_ContextCancelled", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Send(ctx, n)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, buf.String())
	})
}
