package storage

import (
	"context"
	"sync"

	"khata/internal/core"
)

// MemoryStore keeps history in a slice. Used by tests and the memory
// backend; the mutex only guards against accidental cross-test sharing,
// the core remains single-writer.
type MemoryStore struct {
	mu      sync.Mutex
	records []core.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *MemoryStore) All(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Last(_ context.Context) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return core.Record{}, core.ErrEmptyHistory
	}
	return s.records[len(s.records)-1], nil
}
