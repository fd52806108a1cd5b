package inmemorycontent

import (
	"context"
	"sync"

	"github.com/specialistvlad/stackagg/internal/contentstore"
	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
)

// Store implements contentstore.Store with a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	records map[recordid.ID]report.Record
}

var _ contentstore.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make(map[recordid.ID]report.Record),
	}
}

// Register stores record under id unless id is already present.
func (s *Store) Register(ctx context.Context, id recordid.ID, record report.Record) (report.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[id]; ok {
		return existing, true
	}
	s.records[id] = record
	return record, false
}

// Lookup returns the canonical record stored under id.
func (s *Store) Lookup(ctx context.Context, id recordid.ID) (report.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	return r, ok
}

// Len returns the number of stored records.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
