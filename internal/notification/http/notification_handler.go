// Package http exposes recorded notifications on the consumer process.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/orders/internal/httputil"
	notificationDomain "github.com/allisson/orders/internal/notification/domain"
	notificationUseCase "github.com/allisson/orders/internal/notification/usecase"
)

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"orderId"`
	Recipient     string     `json:"recipient"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
	FailureReason *string    `json:"failureReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ListNotificationsResponse wraps a list of notifications.
type ListNotificationsResponse struct {
	Data []NotificationResponse `json:"data"`
}

func mapNotificationToResponse(n *notificationDomain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID.String(),
		OrderID:       n.OrderID,
		Recipient:     n.Recipient,
		Subject:       n.Subject,
		Body:          n.Body,
		Status:        string(n.Status),
		Attempts:      n.Attempts,
		SentAt:        n.SentAt,
		FailureReason: n.FailureReason,
		CreatedAt:     n.CreatedAt,
	}
}

// NotificationHandler handles notification queries.
type NotificationHandler struct {
	useCase notificationUseCase.UseCase
	logger  *slog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(useCase notificationUseCase.UseCase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{useCase: useCase, logger: logger}
}

// RegisterRoutes mounts the notification routes on the group.
func (h *NotificationHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/notifications", h.ListHandler)
	group.GET("/notifications/:id", h.GetHandler)
}

// ListHandler lists the notifications of one order.
// GET /v1/notifications?orderId=
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	orderID := c.Query("orderId")
	if orderID == "" {
		httputil.HandleValidationErrorGin(c, errors.New("orderId query parameter is required"), h.logger)
		return
	}

	notifications, err := h.useCase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, mapNotificationToResponse(n))
	}
	c.JSON(http.StatusOK, ListNotificationsResponse{Data: data})
}

// GetHandler retrieves a notification.
// GET /v1/notifications/:id
func (h *NotificationHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid notification id: %w", err), h.logger)
		return
	}

	notification, err := h.useCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapNotificationToResponse(notification))
}
