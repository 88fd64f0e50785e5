package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/outbox/domain"
)

// MemoryOutboxEventRepository keeps outbox events in process memory.
type MemoryOutboxEventRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]domain.OutboxEvent
}

// NewMemoryOutboxEventRepository creates an empty MemoryOutboxEventRepository.
func NewMemoryOutboxEventRepository() *MemoryOutboxEventRepository {
	return &MemoryOutboxEventRepository{events: make(map[uuid.UUID]domain.OutboxEvent)}
}

// Create stores a new outbox event.
func (r *MemoryOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	r.store(ctx, *event)
	return nil
}

// Update replaces a stored outbox event.
func (r *MemoryOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	r.store(ctx, *event)
	return nil
}

// GetPendingEvents returns up to limit pending events last touched at or before
// olderThan, oldest first.
func (r *MemoryOutboxEventRepository) GetPendingEvents(
	_ context.Context,
	olderThan time.Time,
	limit int,
) ([]*domain.OutboxEvent, error) {
	r.mu.RLock()
	var events []*domain.OutboxEvent
	for _, stored := range r.events {
		if stored.Status != domain.OutboxEventStatusPending || stored.UpdatedAt.After(olderThan) {
			continue
		}
		event := stored
		events = append(events, &event)
	}
	r.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *MemoryOutboxEventRepository) store(ctx context.Context, event domain.OutboxEvent) {
	apply := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events[event.ID] = event
	}
	if !database.Enlist(ctx, apply) {
		apply()
	}
}
