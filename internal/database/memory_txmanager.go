package database

import (
	"context"
	"sync"
)

// memoryTxKey is a context key type for storing in-memory units of work.
type memoryTxKey struct{}

// memoryTx collects the writes staged by in-memory repositories.
type memoryTx struct {
	mu  sync.Mutex
	ops []func()
}

// memoryTxManager implements TxManager for the in-memory repositories.
type memoryTxManager struct {
	mu sync.Mutex
}

// NewMemoryTxManager creates a TxManager whose transactions stage the writes of
// in-memory repositories and apply them together on commit. Reads inside the
// transaction observe committed state only.
func NewMemoryTxManager() TxManager {
	return &memoryTxManager{}
}

// WithTx executes the function within an in-memory unit of work. Staged writes are
// discarded when fn returns an error. Nested calls join the outer unit of work.
func (m *memoryTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return fn(ctx)
	}

	tx := &memoryTx{}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx.mu.Lock()
	defer tx.mu.Unlock()
	for _, op := range tx.ops {
		op()
	}
	return nil
}

// Enlist stages op in the unit of work carried by ctx and reports whether one was
// found. Callers apply op immediately when Enlist returns false.
func Enlist(ctx context.Context, op func()) bool {
	tx, ok := ctx.Value(memoryTxKey{}).(*memoryTx)
	if !ok {
		return false
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.ops = append(tx.ops, op)
	return true
}
