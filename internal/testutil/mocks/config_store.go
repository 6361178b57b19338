package mocks

import (
	"context"
	"sync"
)

// ConfigStore is a thread-safe test double for ports.ConfigStore.
type ConfigStore struct {
	mu       sync.RWMutex
	values   map[string]string
	getErr   error
	setErr   error
	setCalls int
}

// NewConfigStore creates a new ConfigStore mock.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]string)}
}

// SetValue seeds a stored value.
func (m *ConfigStore) SetValue(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// FailGet makes every Get return the given error.
func (m *ConfigStore) FailGet(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// FailSet makes every Set return the given error.
func (m *ConfigStore) FailSet(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// SetCalls returns how many times Set was invoked.
func (m *ConfigStore) SetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setCalls
}

// Get reads a seeded value.
func (m *ConfigStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.values[key]
	return value, ok, nil
}

// Set records a value.
func (m *ConfigStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}
