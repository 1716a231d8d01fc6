package session

import "sync"

// Store persists the single session Record. Exactly one record exists at a
// time; Save fully replaces any prior value.
type Store interface {
	// Load returns the current record, or nil if absent. A malformed or
	// undecryptable stored value is treated as absent, not as an error.
	Load() *Record
	// Save writes the full record, overwriting any prior value.
	Save(record *Record) error
	// Clear removes the record entirely.
	Clear() error
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	record *Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.Clone()
}

func (s *MemoryStore) Save(record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record.Clone()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
