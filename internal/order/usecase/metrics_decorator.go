package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/metrics"
	orderDomain "github.com/allisson/orders/internal/order/domain"
)

// orderUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type orderUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewOrderUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewOrderUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &orderUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (o *orderUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, o.metrics, "orders", operation, start, err)
}

// Create records metrics for order creation.
func (o *orderUseCaseWithMetrics) Create(
	ctx context.Context,
	input *orderDomain.CreateOrderInput,
) (*orderDomain.Order, error) {
	start := time.Now()
	order, err := o.next.Create(ctx, input)
	o.record(ctx, "order_create", start, err)
	return order, err
}

// GetByID records metrics for order retrieval.
func (o *orderUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error) {
	start := time.Now()
	order, err := o.next.GetByID(ctx, id)
	o.record(ctx, "order_get", start, err)
	return order, err
}

// List records metrics for order listing.
func (o *orderUseCaseWithMetrics) List(
	ctx context.Context,
	status *orderDomain.OrderStatus,
) ([]*orderDomain.Order, error) {
	start := time.Now()
	orders, err := o.next.List(ctx, status)
	o.record(ctx, "order_list", start, err)
	return orders, err
}

// UpdateStatus records metrics for status transitions.
func (o *orderUseCaseWithMetrics) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (*orderDomain.Order, error) {
	start := time.Now()
	order, err := o.next.UpdateStatus(ctx, id, status)
	o.record(ctx, "order_update_status", start, err)
	return order, err
}

// Delete records metrics for order deletion.
func (o *orderUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := o.next.Delete(ctx, id)
	o.record(ctx, "order_delete", start, err)
	return err
}
