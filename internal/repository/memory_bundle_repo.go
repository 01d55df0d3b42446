package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBundleStore keeps encoded bundles in process memory. It round-trips
// through JSON like the durable stores so decode failures surface the same way.
type MemoryBundleStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	SaveErr error // when set, every Save fails with it
}

func NewMemoryBundleStore() *MemoryBundleStore {
	return &MemoryBundleStore{data: make(map[string][]byte)}
}

func (m *MemoryBundleStore) Load(_ context.Context, name string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[name]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("%w %q: %v", ErrCorruptBundle, name, err)
	}
	return true, nil
}

func (m *MemoryBundleStore) Save(_ context.Context, name string, v any) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode bundle %q: %w", name, err)
	}
	m.mu.Lock()
	m.data[name] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryBundleStore) Ping(context.Context) error { return nil }

// PutRaw stores an already-encoded payload, bypassing encoding.
func (m *MemoryBundleStore) PutRaw(name string, raw []byte) {
	m.mu.Lock()
	m.data[name] = raw
	m.mu.Unlock()
}

// Raw returns the stored payload for name.
func (m *MemoryBundleStore) Raw(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[name]
	return raw, ok
}
