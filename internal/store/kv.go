// Package store persists tracker state in a swappable key-value backend.
package store

import (
	"context"
	"maps"
	"sync"
)

// Storage keys. The values match the JSON layout the tracker has always used.
const (
	KeyCompletedTasks = "quant_completed_tasks"
	KeyBlockNotes     = "quant_block_notes"
	KeyTaskNotes      = "quant_task_notes"
	KeyAPIKey         = "gemini_api_key"
)

// KV is the minimal key-value surface every storage engine implements.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// MemoryKV is an in-process KV. Nothing survives Close.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}

// Dump returns a copy of every stored key.
func (m *MemoryKV) Dump() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
