package services

import (
	"github.com/custodia-labs/flattree/internal/core/domain"
	"github.com/custodia-labs/flattree/internal/logger"
)

const bitsPerWord = 64

// bitmap tracks materialized records by input position.
type bitmap struct {
	bits []uint64
}

func newBitmap(n int) *bitmap {
	return &bitmap{bits: make([]uint64, (n+bitsPerWord-1)/bitsPerWord)}
}

func (b *bitmap) set(i int) {
	b.bits[i/bitsPerWord] |= 1 << (uint(i) % bitsPerWord)
}

func (b *bitmap) isSet(i int) bool {
	return b.bits[i/bitsPerWord]&(1<<(uint(i)%bitsPerWord)) != 0
}

// arena is the engine-owned side table for one materialization. Records
// are addressed by input position; the caller's records are never written.
type arena struct {
	records []domain.Record
	own     []domain.Token
	parent  []domain.Token
	// order holds the eligible positions (active and field complete) in
	// input order.
	order []int
	done  *bitmap
	stats domain.BuildStats
}

func newArena(records []domain.Record, keys *keyResolver) *arena {
	a := &arena{
		records: records,
		own:     make([]domain.Token, len(records)),
		parent:  make([]domain.Token, len(records)),
		order:   make([]int, 0, len(records)),
		done:    newBitmap(len(records)),
	}
	a.stats.Records = len(records)

	for i, r := range records {
		if !r.State.IsActive() {
			a.stats.Deleted++
			continue
		}
		if err := keys.check(r); err != nil {
			a.stats.Excluded++
			logger.Debug("skipping record %d: %v", i, err)
			continue
		}
		a.own[i] = keys.own(r)
		a.parent[i] = keys.parentOf(r)
		a.order = append(a.order, i)
	}

	if a.stats.Excluded > 0 {
		logger.Warn("%d record(s) skipped for missing key or parent fields", a.stats.Excluded)
	}
	return a
}

// isSelfLoop reports whether record i references its own key.
func (a *arena) isSelfLoop(i int) bool {
	return a.own[i] == a.parent[i]
}

// isRootGiven applies the root rule to record i whose first unmaterialized
// parent candidate is candidate, or -1 when none exists.
func (a *arena) isRootGiven(i, candidate int) bool {
	if a.parent[i].IsEmpty() || candidate < 0 {
		return true
	}
	if a.parent[candidate].IsEmpty() && a.own[candidate].IsEmpty() {
		return true
	}
	return a.isSelfLoop(candidate)
}

// adoptable reports whether record j may be placed as a child of a node
// whose own token is key. Empty parent references never adopt.
func (a *arena) adoptable(j int, key domain.Token) bool {
	return !a.parent[j].IsEmpty() && a.parent[j] == key
}

// finish completes the statistics after a successful traversal.
func (a *arena) finish(rows []domain.TreeRow) *domain.Forest {
	a.stats.Materialized = len(rows)
	a.stats.Orphans = len(a.order) - len(rows)
	if a.stats.Orphans > 0 {
		logger.Warn("%d record(s) could not be placed under a root", a.stats.Orphans)
		for _, i := range a.order {
			if !a.done.isSet(i) {
				logger.Debug("orphan record %d: key %s, parent %s", i, a.own[i], a.parent[i])
			}
		}
	}
	return &domain.Forest{Rows: rows, Stats: a.stats}
}
