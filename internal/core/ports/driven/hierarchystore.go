package driven

import "github.com/custodia-labs/flattree/internal/core/domain"

// HierarchyStore resolves named hierarchy descriptors.
type HierarchyStore interface {
	// Get returns the hierarchy registered under name.
	// Returns domain.ErrNotFound if no such hierarchy exists.
	Get(name string) (domain.Hierarchy, error)

	// List returns all registered hierarchies sorted by name.
	List() ([]domain.Hierarchy, error)

	// Save registers or replaces a hierarchy.
	Save(h domain.Hierarchy) error
}
