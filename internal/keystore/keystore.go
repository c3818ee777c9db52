// Package keystore resolves the single symmetric key that encrypts every
// persisted collection.
//
// The key lives under one fixed name in platform-protected storage
// (Keychain on macOS, wincred on Windows, the Secret Service on Linux). It
// is created once, on first use, and never regenerated afterwards: minting
// a replacement key would silently orphan every previously encrypted file,
// so storage unavailability is a fatal, propagated error instead.
package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service name the app registers under.
const DefaultService = "haulory"

// DefaultKeyName is the fixed name of the store key.
const DefaultKeyName = "haulory_store_key"

// keySize is the generated key length in bytes (AES-256).
const keySize = 32

// ErrNotFound is returned by SecretStore.Get when no secret exists under
// the requested name.
var ErrNotFound = errors.New("secret not found")

// ErrUnavailable wraps failures to reach protected storage. Callers must
// treat it as fatal to the operation; it is never masked by a fresh key.
var ErrUnavailable = errors.New("key storage unavailable")

// SecretStore is an opaque named get/set over protected platform storage.
type SecretStore interface {
	// Get returns the secret stored under name, or ErrNotFound.
	Get(name string) (string, error)

	// Set stores value under name, overwriting any previous value.
	Set(name, value string) error
}

// Keyring is the production SecretStore, backed by the OS keyring.
type Keyring struct {
	Service string
}

// Get implements SecretStore.
func (k Keyring) Get(name string) (string, error) {
	v, err := keyring.Get(k.service(), name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %q: %w: %w", name, ErrUnavailable, err)
	}
	return v, nil
}

// Set implements SecretStore.
func (k Keyring) Set(name, value string) error {
	if err := keyring.Set(k.service(), name, value); err != nil {
		return fmt.Errorf("keyring set %q: %w: %w", name, ErrUnavailable, err)
	}
	return nil
}

func (k Keyring) service() string {
	if k.Service == "" {
		return DefaultService
	}
	return k.Service
}

// Manager resolves and caches the store key.
//
// The first successful resolution is cached for the life of the process;
// the key is read-mostly and written exactly once.
type Manager struct {
	store SecretStore
	name  string

	mu     sync.Mutex
	cached []byte
}

// NewManager creates a Manager over the given secret store. An empty name
// selects DefaultKeyName.
func NewManager(store SecretStore, name string) *Manager {
	if name == "" {
		name = DefaultKeyName
	}
	return &Manager{store: store, name: name}
}

// Key returns the store key, creating it on first use.
//
// Contract: once a key exists in the secret store, Key never regenerates
// it. Any storage failure is returned wrapped in ErrUnavailable; the caller
// must fail the operation rather than continue with a different key.
func (m *Manager) Key() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil {
		return m.cached, nil
	}

	stored, err := m.store.Get(m.name)
	switch {
	case err == nil:
		key, err := base64.StdEncoding.DecodeString(stored)
		if err != nil {
			return nil, fmt.Errorf("stored key is not valid base64: %w: %w", ErrUnavailable, err)
		}
		if len(key) != keySize {
			return nil, fmt.Errorf("stored key is %d bytes, want %d: %w", len(key), keySize, ErrUnavailable)
		}
		m.cached = key
		return key, nil

	case errors.Is(err, ErrNotFound):
		key := make([]byte, keySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		if err := m.store.Set(m.name, base64.StdEncoding.EncodeToString(key)); err != nil {
			return nil, fmt.Errorf("persist new key: %w", err)
		}
		m.cached = key
		return key, nil

	default:
		return nil, fmt.Errorf("read key: %w", err)
	}
}
