package file

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driven"
)

// Ensure HierarchyStore implements the interface.
var _ driven.HierarchyStore = (*HierarchyStore)(nil)

// treePrefix is the table holding hierarchy descriptors, one sub-table
// per tree:
//
//	[tree.org]
//	entity = "Employees"
//	parent_field = "ManagerId"
//	key_fields = "Id"
//	key_mode = "concat"
const treePrefix = "tree."

// Descriptor attribute keys within a [tree.<name>] table.
const (
	attrEntity      = "entity"
	attrParentField = "parent_field"
	attrParentAlt   = "parent_alt_field"
	attrKeyFields   = "key_fields"
	attrKeyMode     = "key_mode"
)

// HierarchyStore reads and writes hierarchy descriptors through a
// ConfigStore.
type HierarchyStore struct {
	cfg driven.ConfigStore
}

// NewHierarchyStore creates a hierarchy store over cfg.
func NewHierarchyStore(cfg driven.ConfigStore) *HierarchyStore {
	return &HierarchyStore{cfg: cfg}
}

// Get returns the hierarchy registered under name.
func (s *HierarchyStore) Get(name string) (domain.Hierarchy, error) {
	if len(s.cfg.Keys(treePrefix+name+".")) == 0 {
		return domain.Hierarchy{}, domain.ErrNotFound
	}

	key := func(attr string) string { return treePrefix + name + "." + attr }

	fields, err := domain.ParseKeyFields(s.cfg.GetString(key(attrKeyFields)))
	if err != nil {
		return domain.Hierarchy{}, fmt.Errorf("tree %q: %w", name, err)
	}

	h := domain.Hierarchy{
		Name:           name,
		EntityName:     s.cfg.GetString(key(attrEntity)),
		ParentField:    s.cfg.GetString(key(attrParentField)),
		ParentAltField: s.cfg.GetString(key(attrParentAlt)),
		Key:            fields,
		Mode:           domain.KeyMode(s.cfg.GetString(key(attrKeyMode))),
	}
	if err := h.Validate(); err != nil {
		return domain.Hierarchy{}, fmt.Errorf("tree %q: %w", name, err)
	}
	return h, nil
}

// List returns all hierarchies sorted by name. A malformed descriptor
// fails the whole listing.
func (s *HierarchyStore) List() ([]domain.Hierarchy, error) {
	var names []string
	for _, k := range s.cfg.Keys(treePrefix) {
		name, _, ok := strings.Cut(strings.TrimPrefix(k, treePrefix), ".")
		if ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	result := make([]domain.Hierarchy, 0, len(names))
	for _, name := range names {
		h, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, nil
}

// Save validates h and writes its descriptor table, replacing any
// attributes a previous descriptor of the same name left behind.
func (s *HierarchyStore) Save(h domain.Hierarchy) error {
	name := strings.TrimSpace(h.Name)
	if name == "" || strings.Contains(name, ".") {
		return fmt.Errorf("%w: tree name %q", domain.ErrInvalidHierarchy, h.Name)
	}
	if err := h.Validate(); err != nil {
		return err
	}

	prefix := treePrefix + name + "."
	values := map[string]string{
		prefix + attrEntity:      h.EntityName,
		prefix + attrParentField: h.ParentField,
		prefix + attrKeyFields:   h.Key.String(),
		prefix + attrKeyMode:     h.KeyMode().String(),
	}
	if h.ParentAltField != "" {
		values[prefix+attrParentAlt] = h.ParentAltField
	}

	for _, k := range s.cfg.Keys(prefix) {
		if _, keep := values[k]; keep {
			continue
		}
		if err := s.cfg.Unset(k); err != nil {
			return fmt.Errorf("saving tree %q: %w", name, err)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(values)) {
		if err := s.cfg.Set(k, values[k]); err != nil {
			return fmt.Errorf("saving tree %q: %w", name, err)
		}
	}
	return nil
}
