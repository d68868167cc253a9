package store

import (
    "context"
    "sync"
)

// Memory is an in-process KV implementation.  It backs the test suite
// and serves as the degraded-mode store when Redis is unreachable at
// startup, in which case state survives only for the process lifetime.
type Memory struct {
    mu     sync.RWMutex
    values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
    return &Memory{values: make(map[string]string)}
}

// Get looks up key under a read lock.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
    m.mu.RLock()
    defer m.mu.RUnlock()
    v, ok := m.values[key]
    return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.values[key] = value
    return nil
}

// Remove deletes the key if present.
func (m *Memory) Remove(_ context.Context, key string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    delete(m.values, key)
    return nil
}
