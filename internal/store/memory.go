package store

import (
	"context"
	"sync"
)

// MemoryBackend implements Backend with in-process storage. Used by tests and
// ephemeral setups; contents are lost when the process exits.
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		slots: make(map[string][]byte),
	}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored value in place.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}
