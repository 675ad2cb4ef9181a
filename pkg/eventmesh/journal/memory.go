package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory journal for testing and single-run
// inspection. Entries are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.entries = append(m.entries, entry)
	return nil
}

// ByEvent implements Store.
func (m *MemoryStore) ByEvent(_ context.Context, eventID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var out []Entry
	for _, e := range m.entries {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every recorded entry in append order.
func (m *MemoryStore) All() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
