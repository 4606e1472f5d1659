// ABOUTME: In-memory key/value port used by tests and ephemeral CLI sessions.
// ABOUTME: Copies values on the way in and out so callers cannot alias stored bytes.
package storage

import (
	"sort"
	"sync"
)

// MemoryPort keeps values in a map. Nothing survives the process.
type MemoryPort struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryPort creates an empty in-memory port.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryPort) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *MemoryPort) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Keys lists every stored key in lexical order.
func (m *MemoryPort) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases any resources held by the port.
func (m *MemoryPort) Close() error {
	return nil
}
