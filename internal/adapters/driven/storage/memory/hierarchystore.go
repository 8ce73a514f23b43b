package memory

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driven"
)

// Ensure HierarchyStore implements the interface.
var _ driven.HierarchyStore = (*HierarchyStore)(nil)

// HierarchyStore is an in-memory implementation of driven.HierarchyStore.
type HierarchyStore struct {
	mu          sync.RWMutex
	hierarchies map[string]domain.Hierarchy
}

// NewHierarchyStore creates a store pre-populated with hierarchies.
func NewHierarchyStore(hierarchies ...domain.Hierarchy) *HierarchyStore {
	s := &HierarchyStore{
		hierarchies: make(map[string]domain.Hierarchy, len(hierarchies)),
	}
	for _, h := range hierarchies {
		s.hierarchies[h.Name] = h
	}
	return s
}

// Get returns the hierarchy registered under name.
func (s *HierarchyStore) Get(name string) (domain.Hierarchy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hierarchies[name]
	if !ok {
		return domain.Hierarchy{}, domain.ErrNotFound
	}
	return h, nil
}

// List returns all hierarchies sorted by name.
func (s *HierarchyStore) List() ([]domain.Hierarchy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := slices.Sorted(maps.Keys(s.hierarchies))
	result := make([]domain.Hierarchy, 0, len(names))
	for _, name := range names {
		result = append(result, s.hierarchies[name])
	}
	return result, nil
}

// Save validates and registers a hierarchy.
func (s *HierarchyStore) Save(h domain.Hierarchy) error {
	if strings.TrimSpace(h.Name) == "" {
		return domain.ErrInvalidHierarchy
	}
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hierarchies[h.Name] = h
	return nil
}
