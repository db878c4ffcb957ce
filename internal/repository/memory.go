package repository

import (
	"context"
	"sync"
)

// MemoryPreferences is the preference store used when no database is configured.
type MemoryPreferences struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{data: make(map[string]map[string]string)}
}

func (m *MemoryPreferences) Get(_ context.Context, userID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[userID][key]
	return v, ok, nil
}

func (m *MemoryPreferences) Set(_ context.Context, userID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[userID] == nil {
		m.data[userID] = make(map[string]string)
	}
	m.data[userID][key] = value
	return nil
}

func (m *MemoryPreferences) Ping(context.Context) error { return nil }
