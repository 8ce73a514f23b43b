package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are copied on the way in and out so callers cannot alias the
// stored snapshot.
type RecordStore struct {
	mu       sync.RWMutex
	entities map[string][]domain.Record
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		entities: make(map[string][]domain.Record),
	}
}

// Replace stores records for an entity, discarding any previous set.
func (s *RecordStore) Replace(_ context.Context, entity string, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity] = cloneRecords(records)
	return nil
}

// Load returns the entity's records in insertion order.
func (s *RecordStore) Load(_ context.Context, entity string) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.entities[entity]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRecords(records), nil
}

// Entities returns the stored entity names, sorted.
func (s *RecordStore) Entities(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.entities)), nil
}

func cloneRecords(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = domain.Record{Fields: maps.Clone(r.Fields), State: r.State}
	}
	return out
}
