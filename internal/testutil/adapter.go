// Package testutil provides deterministic test doubles shared across the
// engine's package tests.
package testutil

import (
	"context"
	"sort"
	"sync"
)

// Adapter is an in-memory substrate.Adapter with failure injection.
//
// Unlike the real substrate it allows scripting errors per operation, which
// is how tests exercise the "effect dropped, in-memory state advances"
// policy without a broken database.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Adapter struct {
	mu     sync.Mutex
	values map[string]string

	// Injected failures. When non-nil, the corresponding operation fails
	// with this error instead of touching values.
	GetErr  error
	SetErr  error
	KeysErr error

	// SetCalls counts Set invocations, including failed ones.
	SetCalls int
}

// NewAdapter creates an empty in-memory adapter.
func NewAdapter() *Adapter {
	return &Adapter{values: make(map[string]string)}
}

// Seed stores a value directly, bypassing failure injection.
func (a *Adapter) Seed(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[key] = value
}

// Value returns the stored value for key, bypassing failure injection.
func (a *Adapter) Value(key string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.values[key]
	return v, ok
}

// Get implements substrate.Adapter.
func (a *Adapter) Get(ctx context.Context, key string) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.GetErr != nil {
		return "", false, a.GetErr
	}
	v, ok := a.values[key]
	return v, ok, nil
}

// Set implements substrate.Adapter.
func (a *Adapter) Set(ctx context.Context, key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.SetCalls++
	if a.SetErr != nil {
		return a.SetErr
	}
	a.values[key] = value
	return nil
}

// KeysWithPrefix implements substrate.Adapter. Keys are returned sorted so
// tests get a stable order; the real substrate makes no such promise.
func (a *Adapter) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.KeysErr != nil {
		return nil, a.KeysErr
	}
	keys := make([]string, 0)
	for k := range a.values {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
