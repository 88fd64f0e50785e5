// Package dto provides data transfer objects for order HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
	"github.com/shopspring/decimal"

	orderDomain "github.com/allisson/orders/internal/order/domain"
	customValidation "github.com/allisson/orders/internal/validation"
)

// CreateOrderRequest is the body of POST /v1/orders. totalAmount accepts a JSON number
// or a numeric string.
type CreateOrderRequest struct {
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Validate checks the request shape.
func (r *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			is.UUID,
		),
		validation.Field(&r.TotalAmount,
			customValidation.PositiveDecimal,
			customValidation.MaxScale(orderDomain.AmountScale),
		),
	)
}

// ToInput converts the request into the use case input.
func (r *CreateOrderRequest) ToInput() *orderDomain.CreateOrderInput {
	return &orderDomain.CreateOrderInput{
		UserID:      r.UserID,
		TotalAmount: r.TotalAmount,
	}
}

// UpdateOrderStatusRequest is the body of PATCH /v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that status names a known order status.
func (r *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(
				string(orderDomain.OrderStatusCreated),
				string(orderDomain.OrderStatusPaid),
				string(orderDomain.OrderStatusCancelled),
			).Error("must be one of CREATED, PAID, CANCELLED"),
		),
	)
}
