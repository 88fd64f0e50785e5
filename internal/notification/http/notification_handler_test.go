package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/orders/internal/messaging"
	notificationDomain "github.com/allisson/orders/internal/notification/domain"
	"github.com/allisson/orders/internal/notification/repository"
	notificationUseCase "github.com/allisson/orders/internal/notification/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type okSender struct{}

func (okSender) Send(context.Context, *notificationDomain.Notification) error { return nil }

func setupRouter(t *testing.T) (*gin.Engine, notificationUseCase.UseCase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := notificationUseCase.NewNotificationUseCase(
		repository.NewMemoryNotificationRepository(),
		okSender{},
		notificationUseCase.RetryConfig{},
		logger,
	)

	router := gin.New()
	NewNotificationHandler(uc, logger).RegisterRoutes(router.Group("/v1"))
	return router, uc
}

func project(t *testing.T, uc notificationUseCase.UseCase, orderID uuid.UUID) *notificationDomain.Notification {
	t.Helper()
	event := messaging.NewOrderCreatedEvent(
		orderID, uuid.Must(uuid.NewV7()), "ada@example.com", decimal.NewFromInt(20), time.Now().UTC(),
	)
	n, err := uc.Project(context.Background(), event)
	require.NoError(t, err)
	return n
}

func TestNotificationHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, uc := setupRouter(t)
		orderID := uuid.Must(uuid.NewV7())
		project(t, uc, orderID)
		project(t, uc, orderID)
		project(t, uc, uuid.Must(uuid.NewV7()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/notifications?orderId="+orderID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response ListNotificationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, orderID.String(), response.Data[0].OrderID)
		assert.Equal(t, "SENT", response.Data[0].Status)
	})

	t.Run("Error_MissingOrderID", func(t *testing.T) {
		router, _ := setupRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/notifications", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotificationHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, uc := setupRouter(t)
		n := project(t, uc, uuid.Must(uuid.NewV7()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/"+n.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response NotificationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, n.ID.String(), response.ID)
		assert.Equal(t, notificationDomain.OrderCreatedSubject, response.Subject)
		assert.NotNil(t, response.SentAt)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, _ := setupRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/"+uuid.Must(uuid.NewV7()).String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router, _ := setupRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/notifications/nope", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
