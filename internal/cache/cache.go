// Package cache holds generated content close to the process. Entries never
// expire; the durable copy lives in the store.
package cache

import (
	"context"
	"sync"
)

// Cache is a byte-value key/value cache.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Memory is a process-local Cache. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// Set stores a copy of value; callers may reuse their slice.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	cp := append([]byte(nil), value...)
	m.mu.Lock()
	m.items[key] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Tiered reads through layers in order and back-fills the faster layers on
// a hit further down. Writes go to every layer.
type Tiered struct {
	layers []Cache
}

// NewTiered returns a Tiered cache over layers, fastest first.
func NewTiered(layers ...Cache) *Tiered {
	return &Tiered{layers: layers}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	for i, l := range t.layers {
		v, ok, err := l.Get(ctx, key)
		if err != nil {
			// A broken layer is a miss; the store behind the cache is authoritative.
			continue
		}
		if !ok {
			continue
		}
		for _, faster := range t.layers[:i] {
			_ = faster.Set(ctx, key, v)
		}
		return v, true, nil
	}
	return nil, false, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte) error {
	var firstErr error
	for _, l := range t.layers {
		if err := l.Set(ctx, key, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	var firstErr error
	for _, l := range t.layers {
		if err := l.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
