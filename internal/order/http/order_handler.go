// Package http provides HTTP handlers for the order ledger.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/orders/internal/errors"
	"github.com/allisson/orders/internal/httputil"
	orderDomain "github.com/allisson/orders/internal/order/domain"
	"github.com/allisson/orders/internal/order/http/dto"
	orderUseCase "github.com/allisson/orders/internal/order/usecase"
	customValidation "github.com/allisson/orders/internal/validation"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderUseCase orderUseCase.UseCase
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderUseCase orderUseCase.UseCase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		logger:       logger,
	}
}

// RegisterRoutes mounts the order routes on the group.
func (h *OrderHandler) RegisterRoutes(group *gin.RouterGroup) {
	orders := group.Group("/orders")
	{
		orders.POST("", h.CreateHandler)
		orders.GET("", h.ListHandler)
		orders.GET("/:id", h.GetHandler)
		orders.PATCH("/:id/status", h.UpdateStatusHandler)
		orders.DELETE("/:id", h.DeleteHandler)
	}
}

// CreateHandler creates an order.
// POST /v1/orders
// Returns 201 Created, or 202 Accepted with eventPublished=false when the order was
// stored but its event could not be published.
func (h *OrderHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	order, err := h.orderUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		if order != nil && apperrors.Is(err, orderDomain.ErrEventPublicationFailed) {
			h.logger.Warn("order accepted without event publication",
				slog.String("order_id", order.ID.String()),
				slog.Any("error", err),
			)
			c.JSON(http.StatusAccepted, dto.MapCreatedOrderToResponse(order, false))
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreatedOrderToResponse(order, true))
}

// GetHandler retrieves an order.
// GET /v1/orders/:id
func (h *OrderHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orderUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order))
}

// ListHandler lists orders, optionally filtered by ?status=.
// GET /v1/orders
func (h *OrderHandler) ListHandler(c *gin.Context) {
	var status *orderDomain.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := orderDomain.ParseOrderStatus(raw)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
		status = &parsed
	}

	orders, err := h.orderUseCase.List(c.Request.Context(), status)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrdersToListResponse(orders))
}

// UpdateStatusHandler transitions an order to the requested status.
// PATCH /v1/orders/:id/status
func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order))
}

// DeleteHandler removes an order regardless of its status.
// DELETE /v1/orders/:id
// Returns 204 No Content.
func (h *OrderHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.orderUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *OrderHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid order id: %w", err), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
