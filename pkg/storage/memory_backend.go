package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryBackend keeps values in a map. A positive capacity limits the total
// number of stored bytes, mimicking a browser storage quota.
type MemoryBackend struct {
	mu       sync.RWMutex
	values   map[string][]byte
	capacity int
}

func NewMemoryBackend(capacity int) *MemoryBackend {
	return &MemoryBackend{values: map[string][]byte{}, capacity: capacity}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryBackend) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.capacity > 0 {
		used := len(value)
		for k, v := range m.values {
			if k != key {
				used += len(v)
			}
		}
		if used > m.capacity {
			return fmt.Errorf("writing %d bytes to %q: %w", len(value), key, ErrCapacityExceeded)
		}
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
