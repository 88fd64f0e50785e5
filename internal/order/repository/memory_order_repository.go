// Package repository implements order persistence for memory, PostgreSQL and MySQL.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/order/domain"
)

// MemoryOrderRepository keeps orders in a map guarded by a read/write mutex. Writes made
// inside database.NewMemoryTxManager transactions are applied on commit.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

// NewMemoryOrderRepository creates an empty MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[uuid.UUID]domain.Order),
	}
}

// Save inserts or replaces the order by id.
func (r *MemoryOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	snapshot := *order
	apply := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.orders[snapshot.ID] = snapshot
	}
	if !database.Enlist(ctx, apply) {
		apply()
	}
	return nil
}

// FindByID returns a copy of the stored order.
func (r *MemoryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

// FindAll returns every order ordered by creation time.
func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.filter(func(*domain.Order) bool { return true }), nil
}

// FindByStatus returns the orders in the given status ordered by creation time.
func (r *MemoryOrderRepository) FindByStatus(
	ctx context.Context,
	status domain.OrderStatus,
) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.Status == status }), nil
}

// ExistsByID reports whether an order with the id is stored.
func (r *MemoryOrderRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.orders[id]
	return ok, nil
}

// DeleteByID removes the order. Deleting an absent id is a no-op.
func (r *MemoryOrderRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	apply := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.orders, id)
	}
	if !database.Enlist(ctx, apply) {
		apply()
	}
	return nil
}

func (r *MemoryOrderRepository) filter(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Order, 0, len(r.orders))
	for _, stored := range r.orders {
		order := stored
		if keep(&order) {
			result = append(result, &order)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
