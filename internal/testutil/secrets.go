// Package testutil provides deterministic test doubles shared across
// packages: an in-memory secret store and a fixed clock.
package testutil

import (
	"sync"

	"github.com/haulory/haulory/internal/keystore"
)

// MemorySecrets is an in-memory keystore.SecretStore.
//
// FailWith, when set, makes every Get and Set return that error. Used to
// simulate protected storage being unavailable.
type MemorySecrets struct {
	mu       sync.Mutex
	values   map[string]string
	FailWith error
}

// NewMemorySecrets creates an empty in-memory secret store.
func NewMemorySecrets() *MemorySecrets {
	return &MemorySecrets{values: make(map[string]string)}
}

// Get implements keystore.SecretStore.
func (m *MemorySecrets) Get(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return "", m.FailWith
	}
	v, ok := m.values[name]
	if !ok {
		return "", keystore.ErrNotFound
	}
	return v, nil
}

// Set implements keystore.SecretStore.
func (m *MemorySecrets) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.values[name] = value
	return nil
}

// Len returns the number of stored secrets.
func (m *MemorySecrets) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
