package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

func forestOf(paths ...[]string) *domain.Forest {
	f := &domain.Forest{}
	for i, p := range paths {
		tokens := make([]domain.Token, len(p))
		for j, s := range p {
			tokens[j] = domain.TextToken(s)
		}
		f.Rows = append(f.Rows, domain.TreeRow{ParentKey: domain.PathField, Path: tokens, Index: i})
	}
	return f
}

func TestCompare_IgnoresOrder(t *testing.T) {
	a := forestOf([]string{"A"}, []string{"A", "B"}, []string{"C"})
	b := forestOf([]string{"C"}, []string{"A"}, []string{"A", "B"})

	eq := Compare(a, b)
	assert.True(t, eq.Equal)
	assert.Empty(t, eq.OnlyInA)
	assert.Empty(t, eq.OnlyInB)
}

func TestCompare_ReportsDifferences(t *testing.T) {
	a := forestOf([]string{"A"}, []string{"A", "B"})
	b := forestOf([]string{"A"}, []string{"B"})

	eq := Compare(a, b)
	require.False(t, eq.Equal)
	require.Len(t, eq.OnlyInA, 1)
	require.Len(t, eq.OnlyInB, 1)
	assert.Equal(t, "B", eq.OnlyInA[0].Key.String())
	assert.Len(t, eq.OnlyInA[0].Path, 2)
	assert.Len(t, eq.OnlyInB[0].Path, 1)
}

func TestCompare_CountsDuplicates(t *testing.T) {
	a := forestOf([]string{"A"}, []string{"A"})
	b := forestOf([]string{"A"})

	eq := Compare(a, b)
	assert.False(t, eq.Equal)
	assert.Len(t, eq.OnlyInA, 1)
	assert.Empty(t, eq.OnlyInB)
}

func TestCompare_DistinguishesValueKinds(t *testing.T) {
	a := &domain.Forest{Rows: []domain.TreeRow{{Path: []domain.Token{domain.SingleToken(domain.IntValue(1))}}}}
	b := &domain.Forest{Rows: []domain.TreeRow{{Path: []domain.Token{domain.TextToken("1")}}}}

	assert.False(t, Compare(a, b).Equal)
}

func TestCompare_NilForests(t *testing.T) {
	assert.True(t, Compare(nil, nil).Equal)
	assert.True(t, Compare(nil, &domain.Forest{}).Equal)

	eq := Compare(forestOf([]string{"A"}), nil)
	assert.False(t, eq.Equal)
	assert.Len(t, eq.OnlyInA, 1)
}

func TestMaterializers_EquivalentOnSamples(t *testing.T) {
	sizes := []int{5, 100, 500, 1500}
	seeds := []uint64{1, 2, 3}
	h := SampleHierarchy()

	for _, size := range sizes {
		for _, seed := range seeds {
			t.Run(fmt.Sprintf("n=%d/seed=%d", size, seed), func(t *testing.T) {
				records, err := GenerateSample(size, seed)
				require.NoError(t, err)

				naive, err := NewNaiveMaterializer(Options{}).Build(context.Background(), records, h)
				require.NoError(t, err)
				indexed, err := NewIndexedMaterializer(Options{}).Build(context.Background(), records, h)
				require.NoError(t, err)

				eq := Compare(naive, indexed)
				assert.True(t, eq.Equal, "only in naive: %v, only in indexed: %v", eq.OnlyInA, eq.OnlyInB)
				assert.Equal(t, naive.Stats, indexed.Stats)
				assert.Equal(t, paths(naive), paths(indexed))
			})
		}
	}
}

func TestMaterializers_EquivalentOnEdgeCases(t *testing.T) {
	sets := map[string][]domain.Record{
		"duplicates":   {node("A", ""), node("B", "A"), node("A", ""), node("B", "A"), node("C", "B")},
		"orphan cycle": {node("X", "Y"), node("Y", "X"), node("Z", "X")},
		"self loops":   {node("S", "S"), node("T", "S"), node("U", "T"), node("V", "V")},
		"mixed kinds":  {node(1, nil), node(2, 1), node("2", "1"), node(3, 2)},
		"deleted middle": {
			node("A", ""),
			nodeIn(domain.RowDeleted, "B", "A"),
			node("C", "B"),
			node("D", "C"),
		},
	}

	for name, records := range sets {
		t.Run(name, func(t *testing.T) {
			naive, err := NewNaiveMaterializer(Options{}).Build(context.Background(), records, simpleTree)
			require.NoError(t, err)
			indexed, err := NewIndexedMaterializer(Options{}).Build(context.Background(), records, simpleTree)
			require.NoError(t, err)

			assert.True(t, Compare(naive, indexed).Equal)
			assert.Equal(t, naive.Stats, indexed.Stats)
		})
	}
}
