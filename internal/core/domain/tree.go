package domain

import (
	"strings"
	"time"
)

// PathField is the label every tree row carries for its hierarchical path.
const PathField = "primarykey"

// TreeRow is one materialized node: the originating record and its path
// of key tokens from the forest root down to the node itself.
type TreeRow struct {
	// ParentKey is always PathField.
	ParentKey string `json:"parentKey"`
	// Path is the ordered sequence of ancestor keys, root first,
	// ending with the node's own key.
	Path []Token `json:"path"`
	// Index is the position of the originating record in the input.
	Index int `json:"index"`
	// Record is the originating record. It shares its field map with the
	// caller's record and must be treated as read-only.
	Record Record `json:"record"`
}

// Key returns the node's own key token.
func (r TreeRow) Key() Token {
	if len(r.Path) == 0 {
		return Token{}
	}
	return r.Path[len(r.Path)-1]
}

// Depth returns the node depth; roots have depth 1.
func (r TreeRow) Depth() int { return len(r.Path) }

// IsRoot reports whether the row is a forest root.
func (r TreeRow) IsRoot() bool { return len(r.Path) == 1 }

// PathString joins the path with sep for display.
func (r TreeRow) PathString(sep string) string {
	parts := make([]string, len(r.Path))
	for i, t := range r.Path {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// EncodePath returns an unambiguous encoding of a path, suitable as a map key.
func EncodePath(path []Token) string {
	var b strings.Builder
	for i, t := range path {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(t.Encode())
	}
	return b.String()
}

// BuildStats summarises one materialization run.
type BuildStats struct {
	// Records is the number of input records.
	Records int `json:"records"`
	// Materialized is the number of rows emitted.
	Materialized int `json:"materialized"`
	// Roots is the number of root rows emitted.
	Roots int `json:"roots"`
	// Deleted is the number of records skipped for being deleted.
	Deleted int `json:"deleted"`
	// Excluded is the number of records skipped for missing fields.
	Excluded int `json:"excluded"`
	// Orphans is the number of eligible records that could not be placed.
	Orphans int `json:"orphans"`
	// MaxDepth is the deepest path emitted.
	MaxDepth int `json:"maxDepth"`
}

// Forest is the output of a materialization: tree rows plus statistics.
// The tree structure is implied by path prefixes.
type Forest struct {
	Rows  []TreeRow  `json:"rows"`
	Stats BuildStats `json:"stats"`
}

// Roots returns the root rows in emission order.
func (f *Forest) Roots() []TreeRow {
	var roots []TreeRow
	for _, row := range f.Rows {
		if row.IsRoot() {
			roots = append(roots, row)
		}
	}
	return roots
}

// ChildrenOf returns the rows whose path extends parent by exactly one key.
func (f *Forest) ChildrenOf(parent []Token) []TreeRow {
	var children []TreeRow
	for _, row := range f.Rows {
		if len(row.Path) != len(parent)+1 {
			continue
		}
		match := true
		for i := range parent {
			if row.Path[i] != parent[i] {
				match = false
				break
			}
		}
		if match {
			children = append(children, row)
		}
	}
	return children
}

// Strategy names a materializer implementation.
type Strategy string

// Available strategies.
const (
	// StrategyNaive re-scans the record set at every level.
	StrategyNaive Strategy = "naive"
	// StrategyIndexed groups records by parent key once and walks by lookup.
	StrategyIndexed Strategy = "indexed"
)

// IsValid returns true if the strategy is recognised.
func (s Strategy) IsValid() bool {
	return s == StrategyNaive || s == StrategyIndexed
}

// String returns the string representation.
func (s Strategy) String() string {
	return string(s)
}

// PathPair identifies a materialized node by key and full path.
type PathPair struct {
	Key  Token   `json:"key"`
	Path []Token `json:"path"`
}

// Equivalence is the result of comparing two forests as multisets of
// (key, path) pairs. Emission order is ignored.
type Equivalence struct {
	Equal   bool       `json:"equal"`
	OnlyInA []PathPair `json:"onlyInA,omitempty"`
	OnlyInB []PathPair `json:"onlyInB,omitempty"`
}

// StrategyRun records one timed materialization.
type StrategyRun struct {
	Strategy Strategy      `json:"strategy"`
	Duration time.Duration `json:"duration"`
	Stats    BuildStats    `json:"stats"`
}

// Comparison reports a side-by-side run of both strategies.
type Comparison struct {
	// RunID uniquely identifies the comparison run.
	RunID string `json:"runId"`
	// Tree is the hierarchy name the comparison ran against.
	Tree string `json:"tree"`
	// Records is the size of the input snapshot.
	Records int `json:"records"`
	// Naive and Indexed hold the timed runs.
	Naive   StrategyRun `json:"naive"`
	Indexed StrategyRun `json:"indexed"`
	// Equivalence is the diff of both outputs.
	Equivalence Equivalence `json:"equivalence"`
}

// Improvement returns how much faster the indexed run was, in percent of
// the naive run. Zero when the naive run took no measurable time.
func (c *Comparison) Improvement() float64 {
	if c.Naive.Duration <= 0 {
		return 0
	}
	return float64(c.Naive.Duration-c.Indexed.Duration) / float64(c.Naive.Duration) * 100
}
