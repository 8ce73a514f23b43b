package services

import (
	"context"

	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/core/ports/driving"
)

// Ensure NaiveMaterializer implements the interface.
var _ driving.Materializer = (*NaiveMaterializer)(nil)

// NaiveMaterializer is the reference implementation. It resolves every
// parent and every child list by scanning the whole record set, so it
// runs in roughly O(n²·depth). Correctness, not speed, is its contract.
type NaiveMaterializer struct {
	opts Options
}

// NewNaiveMaterializer creates a scan-based materializer.
func NewNaiveMaterializer(opts Options) *NaiveMaterializer {
	return &NaiveMaterializer{opts: opts}
}

// Strategy names the implementation.
func (m *NaiveMaterializer) Strategy() domain.Strategy {
	return domain.StrategyNaive
}

// Build materializes records according to the hierarchy.
func (m *NaiveMaterializer) Build(ctx context.Context, records []domain.Record, h domain.Hierarchy) (*domain.Forest, error) {
	keys, err := newKeyResolver(h)
	if err != nil {
		return nil, err
	}

	a := newArena(records, keys)
	w := newWalker(ctx, a, m.childrenOf(a), m.opts)

	for _, i := range a.order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.done.isSet(i) {
			continue
		}
		if !a.isRootGiven(i, m.findParent(a, i)) {
			continue
		}
		if err := w.expandRoot(i); err != nil {
			return nil, err
		}
	}

	return a.finish(w.rows), nil
}

// findParent scans for the first unmaterialized record whose own key
// equals i's parent reference.
func (m *NaiveMaterializer) findParent(a *arena, i int) int {
	if a.parent[i].IsEmpty() {
		return -1
	}
	for _, j := range a.order {
		if !a.done.isSet(j) && a.own[j] == a.parent[i] {
			return j
		}
	}
	return -1
}

// childrenOf probes the whole set for any referrer first, and only then
// rescans it to collect the unmaterialized children.
func (m *NaiveMaterializer) childrenOf(a *arena) childrenFunc {
	return func(node int) []int {
		key := a.own[node]
		if !m.hasReferrer(a, key) {
			return nil
		}
		var kids []int
		for _, j := range a.order {
			if !a.done.isSet(j) && a.adoptable(j, key) {
				kids = append(kids, j)
			}
		}
		return kids
	}
}

func (m *NaiveMaterializer) hasReferrer(a *arena, key domain.Token) bool {
	for _, j := range a.order {
		if a.adoptable(j, key) {
			return true
		}
	}
	return false
}
