package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/database"
	"github.com/allisson/orders/internal/user/domain"
)

// MemoryUserRepository keeps users in process memory. E-mail addresses are unique.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]domain.User)}
}

// Create inserts a new user. Inside a memory unit of work the uniqueness check runs
// again on commit and a late duplicate is dropped.
func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	snapshot := *user

	r.mu.RLock()
	taken := r.emailTakenLocked(snapshot.Email)
	r.mu.RUnlock()
	if taken {
		return domain.ErrUserAlreadyExists
	}

	apply := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if !r.emailTakenLocked(snapshot.Email) {
			r.users[snapshot.ID] = snapshot
		}
	}
	if database.Enlist(ctx, apply) {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTakenLocked(snapshot.Email) {
		return domain.ErrUserAlreadyExists
	}
	r.users[snapshot.ID] = snapshot
	return nil
}

// GetByID retrieves a user by ID
func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// List returns users ordered by creation time with offset pagination
func (r *MemoryUserRepository) List(_ context.Context, offset, limit int) ([]*domain.User, error) {
	r.mu.RLock()
	users := make([]*domain.User, 0, len(r.users))
	for _, stored := range r.users {
		user := stored
		users = append(users, &user)
	}
	r.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID.String() < users[j].ID.String()
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	if offset >= len(users) {
		return []*domain.User{}, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

// Delete removes a user
func (r *MemoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.RLock()
	_, ok := r.users[id]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrUserNotFound
	}

	apply := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.users, id)
	}
	if !database.Enlist(ctx, apply) {
		apply()
	}
	return nil
}

func (r *MemoryUserRepository) emailTakenLocked(email string) bool {
	for _, user := range r.users {
		if user.Email == email {
			return true
		}
	}
	return false
}
