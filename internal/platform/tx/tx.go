package tx

import (
	"context"
	"sync"
)

// Manager wraps a critical section around state mutations.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// MutexManager serializes every call to Within. It is not reentrant: fn must
// not call Within on the same manager.
type MutexManager struct {
	mu sync.Mutex
}

func NewMutexManager() *MutexManager {
	return &MutexManager{}
}

func (m *MutexManager) Within(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
