// Package repository implements notification persistence in memory and in Redis.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

// MemoryNotificationRepository keeps notifications in process memory.
type MemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]*notificationDomain.Notification
	byOrder       map[string][]uuid.UUID
}

// NewMemoryNotificationRepository creates an empty in-memory repository.
func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{
		notifications: make(map[uuid.UUID]*notificationDomain.Notification),
		byOrder:       make(map[string][]uuid.UUID),
	}
}

// Save inserts or replaces the notification.
func (m *MemoryNotificationRepository) Save(
	_ context.Context,
	notification *notificationDomain.Notification,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.notifications[notification.ID]; !exists {
		m.byOrder[notification.OrderID] = append(m.byOrder[notification.OrderID], notification.ID)
	}
	stored := *notification
	m.notifications[notification.ID] = &stored
	return nil
}

// FindByID returns a copy of the notification.
func (m *MemoryNotificationRepository) FindByID(
	_ context.Context,
	id uuid.UUID,
) (*notificationDomain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notification, ok := m.notifications[id]
	if !ok {
		return nil, notificationDomain.ErrNotificationNotFound
	}
	found := *notification
	return &found, nil
}

// FindByOrderID returns every notification for the order, oldest first.
func (m *MemoryNotificationRepository) FindByOrderID(
	_ context.Context,
	orderID string,
) ([]*notificationDomain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byOrder[orderID]
	result := make([]*notificationDomain.Notification, 0, len(ids))
	for _, id := range ids {
		found := *m.notifications[id]
		result = append(result, &found)
	}
	sortByCreatedAt(result)
	return result, nil
}

func sortByCreatedAt(notifications []*notificationDomain.Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID.String() < notifications[j].ID.String()
		}
		return notifications[i].CreatedAt.Before(notifications[j].CreatedAt)
	})
}
