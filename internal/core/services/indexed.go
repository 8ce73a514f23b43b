package services

import (
	"context"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
)

// Ensure IndexedMaterializer implements the interface.
var _ driving.Materializer = (*IndexedMaterializer)(nil)

// IndexedMaterializer groups records by parent key once per call and walks
// the forest by map lookup, so child expansion is O(1) per node.
//
// The grouping is built once for the whole record set rather than once per
// root; entries materialized by an earlier root are skipped at visit time.
// Parent resolution for root detection uses an own-key index that yields
// the same first-unmaterialized match as a linear scan.
type IndexedMaterializer struct {
	opts Options
}

// NewIndexedMaterializer creates a lookup-based materializer.
func NewIndexedMaterializer(opts Options) *IndexedMaterializer {
	return &IndexedMaterializer{opts: opts}
}

// Strategy names the implementation.
func (m *IndexedMaterializer) Strategy() domain.Strategy {
	return domain.StrategyIndexed
}

// Build materializes records according to the hierarchy.
func (m *IndexedMaterializer) Build(ctx context.Context, records []domain.Record, h domain.Hierarchy) (*domain.Forest, error) {
	keys, err := newKeyResolver(h)
	if err != nil {
		return nil, err
	}

	a := newArena(records, keys)
	idx := buildTokenIndex(a)
	w := newWalker(ctx, a, idx.childrenOf(a), m.opts)

	for _, i := range a.order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.done.isSet(i) {
			continue
		}
		candidate := -1
		if !a.parent[i].IsEmpty() {
			candidate = idx.firstOwner(a.parent[i], a.done)
		}
		if !a.isRootGiven(i, candidate) {
			continue
		}
		if err := w.expandRoot(i); err != nil {
			return nil, err
		}
	}

	return a.finish(w.rows), nil
}

// tokenIndex maps tokens to record positions, each list in input order.
type tokenIndex struct {
	// byParent groups positions by their parent reference.
	byParent map[domain.Token][]int
	// byOwn lists positions by their own key.
	byOwn map[domain.Token][]int
}

func buildTokenIndex(a *arena) *tokenIndex {
	idx := &tokenIndex{
		byParent: make(map[domain.Token][]int),
		byOwn:    make(map[domain.Token][]int, len(a.order)),
	}
	for _, i := range a.order {
		idx.byOwn[a.own[i]] = append(idx.byOwn[a.own[i]], i)
		if !a.parent[i].IsEmpty() {
			idx.byParent[a.parent[i]] = append(idx.byParent[a.parent[i]], i)
		}
	}
	return idx
}

func (idx *tokenIndex) childrenOf(a *arena) childrenFunc {
	return func(node int) []int {
		return idx.byParent[a.own[node]]
	}
}

// firstOwner returns the first unmaterialized position whose own key is
// key, or -1. Materialized entries never revert, so the list prefix is
// dropped as it is passed.
func (idx *tokenIndex) firstOwner(key domain.Token, done *bitmap) int {
	list, ok := idx.byOwn[key]
	if !ok {
		return -1
	}
	for len(list) > 0 && done.isSet(list[0]) {
		list = list[1:]
	}
	idx.byOwn[key] = list
	if len(list) == 0 {
		return -1
	}
	return list[0]
}
