package services

import "github.com/custodia-labs/flattree/internal/core/domain"

// Compare diffs two forests as multisets of (key, path) pairs.
// Emission order is not part of the contract and is ignored.
func Compare(a, b *domain.Forest) domain.Equivalence {
	counts := make(map[string]int)
	pairs := make(map[string]domain.PathPair)
	var order []string

	track := func(rows []domain.TreeRow, delta int) {
		for _, row := range rows {
			enc := domain.EncodePath(row.Path)
			if _, seen := pairs[enc]; !seen {
				pairs[enc] = domain.PathPair{Key: row.Key(), Path: row.Path}
				order = append(order, enc)
			}
			counts[enc] += delta
		}
	}
	if a != nil {
		track(a.Rows, 1)
	}
	if b != nil {
		track(b.Rows, -1)
	}

	var eq domain.Equivalence
	for _, enc := range order {
		n := counts[enc]
		for ; n > 0; n-- {
			eq.OnlyInA = append(eq.OnlyInA, pairs[enc])
		}
		for ; n < 0; n++ {
			eq.OnlyInB = append(eq.OnlyInB, pairs[enc])
		}
	}
	eq.Equal = len(eq.OnlyInA) == 0 && len(eq.OnlyInB) == 0
	return eq
}
