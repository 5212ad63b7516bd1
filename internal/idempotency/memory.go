package idempotency

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec     Record
	expires time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Claim(_ context.Context, rec Record, ttl time.Duration) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[rec.Reference]; ok && now.Before(e.expires) {
		return e.rec, nil
	}

	m.entries[rec.Reference] = memoryEntry{rec: rec, expires: now.Add(ttl)}
	return rec, nil
}

func (m *MemoryStore) Release(_ context.Context, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, reference)
	return nil
}

// Len returns the number of records held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
