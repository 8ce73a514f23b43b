package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func path(keys ...string) []Token {
	p := make([]Token, len(keys))
	for i, k := range keys {
		p[i] = TextToken(k)
	}
	return p
}

func TestTreeRow_Accessors(t *testing.T) {
	row := TreeRow{ParentKey: PathField, Path: path("A", "B", "C")}

	assert.Equal(t, TextToken("C"), row.Key())
	assert.Equal(t, 3, row.Depth())
	assert.False(t, row.IsRoot())
	assert.Equal(t, "A > B > C", row.PathString(" > "))

	assert.Equal(t, Token{}, TreeRow{}.Key())
	assert.True(t, TreeRow{Path: path("R")}.IsRoot())
}

func TestEncodePath(t *testing.T) {
	assert.Equal(t, EncodePath(path("A", "B")), EncodePath(path("A", "B")))
	assert.NotEqual(t, EncodePath(path("A/B")), EncodePath(path("A", "B")))
	assert.NotEqual(t,
		EncodePath([]Token{SingleToken(IntValue(1))}),
		EncodePath(path("1")))
	assert.Empty(t, EncodePath(nil))
}

func TestForest_RootsAndChildren(t *testing.T) {
	f := &Forest{Rows: []TreeRow{
		{Path: path("A")},
		{Path: path("A", "B")},
		{Path: path("A", "B", "D")},
		{Path: path("A", "C")},
		{Path: path("E")},
	}}

	roots := f.Roots()
	assert.Len(t, roots, 2)
	assert.Equal(t, "E", roots[1].Key().String())

	children := f.ChildrenOf(path("A"))
	assert.Len(t, children, 2)
	assert.Equal(t, "A/B", children[0].PathString("/"))
	assert.Equal(t, "A/C", children[1].PathString("/"))

	assert.Empty(t, f.ChildrenOf(path("E")))
	assert.Len(t, f.ChildrenOf(nil), 2)
}

func TestStrategy_IsValid(t *testing.T) {
	assert.True(t, StrategyNaive.IsValid())
	assert.True(t, StrategyIndexed.IsValid())
	assert.False(t, Strategy("").IsValid())
	assert.False(t, Strategy("fast").IsValid())
	assert.Equal(t, "indexed", StrategyIndexed.String())
}

func TestComparison_Improvement(t *testing.T) {
	c := &Comparison{
		Naive:   StrategyRun{Duration: 4 * time.Second},
		Indexed: StrategyRun{Duration: time.Second},
	}
	assert.InDelta(t, 75.0, c.Improvement(), 1e-9)

	c.Indexed.Duration = 8 * time.Second
	assert.InDelta(t, -100.0, c.Improvement(), 1e-9)

	assert.Zero(t, (&Comparison{}).Improvement())
}
