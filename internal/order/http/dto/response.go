package dto

import (
	"encoding/json"
	"time"

	orderDomain "github.com/allisson/orders/internal/order/domain"
)

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	TotalAmount    json.Number `json:"totalAmount"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	EventPublished *bool       `json:"eventPublished,omitempty"`
}

// ListOrdersResponse wraps a list of orders.
type ListOrdersResponse struct {
	Data []OrderResponse `json:"data"`
}

// MapOrderToResponse converts a domain order to an API response.
func MapOrderToResponse(order *orderDomain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID.String(),
		UserID:      order.UserID.String(),
		TotalAmount: json.Number(order.TotalAmount.StringFixed(2)),
		Status:      order.Status.String(),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// MapCreatedOrderToResponse converts a newly created order, flagging whether its
// OrderCreated event reached the broker.
func MapCreatedOrderToResponse(order *orderDomain.Order, eventPublished bool) OrderResponse {
	response := MapOrderToResponse(order)
	response.EventPublished = &eventPublished
	return response
}

// MapOrdersToListResponse converts domain orders to a list response.
func MapOrdersToListResponse(orders []*orderDomain.Order) ListOrdersResponse {
	data := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		data = append(data, MapOrderToResponse(order))
	}
	return ListOrdersResponse{Data: data}
}
