package vault

import (
	"context"
	"sync"
)

// Memory implements Vault in process memory. It models the tab-scoped
// session store: values live for the lifetime of the instance.
type Memory struct {
	mu    sync.Mutex
	slots map[string]string
}

// NewMemory creates an empty in-memory vault.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

// Get returns the stored value, or "" when the key is absent.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[key], nil
}

// Set stores value under key, replacing any prior value.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

// Delete removes key. Absent keys are a no-op.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
