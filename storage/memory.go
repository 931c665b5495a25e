package storage

import (
	"context"
	"sync"
)

// Memory keeps values for the lifetime of the process only.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *Memory) Apply(_ context.Context, batch Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range batch.Delete {
		delete(m.items, key)
	}
	for key, value := range batch.Set {
		m.items[key] = value
	}
	return nil
}

// Len is the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
