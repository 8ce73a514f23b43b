package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

const (
	// DefaultMaxDepth bounds path length when Options.MaxDepth is unset.
	DefaultMaxDepth = 1 << 16

	// cancelCheckInterval is how many expansions run between context polls.
	cancelCheckInterval = 1024

	// initialStackCapacity is the pre-allocated work stack size.
	initialStackCapacity = 256
)

// Options tunes a materializer.
type Options struct {
	// MaxDepth is the longest path allowed before the run fails with
	// domain.ErrDepthExceeded. Zero means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// childrenFunc returns the candidate children of node in input order.
// Candidates already materialized are skipped by the walker.
type childrenFunc func(node int) []int

// frame is one work-stack entry. Exit frames pop a node off the ancestor
// set once its subtree is complete.
type frame struct {
	node int
	path []domain.Token
	exit bool
}

// walker expands subtrees depth-first with an explicit stack. It emits
// rows in the same pre-order a recursive expansion would.
type walker struct {
	ctx      context.Context
	a        *arena
	children childrenFunc
	maxDepth int

	stack []frame

	// onPath maps each own token on the current path to the position of
	// the record that put it there.
	onPath map[domain.Token]int
	rows   []domain.TreeRow
	steps  int
}

func newWalker(ctx context.Context, a *arena, children childrenFunc, opts Options) *walker {
	return &walker{
		ctx:      ctx,
		a:        a,
		children: children,
		maxDepth: opts.maxDepth(),
		stack:    make([]frame, 0, initialStackCapacity),
		onPath:   make(map[domain.Token]int),
		rows:     make([]domain.TreeRow, 0, len(a.order)),
	}
}

// expandRoot emits root and its whole subtree.
func (w *walker) expandRoot(root int) error {
	w.a.stats.Roots++
	w.stack = append(w.stack, frame{node: root})

	for len(w.stack) > 0 {
		f := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		if f.exit {
			w.leave(f.node)
			continue
		}
		if w.a.done.isSet(f.node) {
			continue
		}
		if err := w.poll(); err != nil {
			return err
		}

		key := w.a.own[f.node]
		if ancestor, ok := w.onPath[key]; ok {
			return fmt.Errorf("%w: key %s of record %d repeats ancestor record %d under path %s",
				domain.ErrCyclicReference, key, f.node, ancestor, pathLabel(f.path))
		}
		if len(f.path)+1 > w.maxDepth {
			return fmt.Errorf("%w: key %s at depth %d", domain.ErrDepthExceeded, key, len(f.path)+1)
		}

		path := make([]domain.Token, len(f.path)+1)
		copy(path, f.path)
		path[len(f.path)] = key
		w.emit(f.node, path)

		w.onPath[key] = f.node
		w.stack = append(w.stack, frame{node: f.node, exit: true})

		kids := w.children(f.node)
		for i := len(kids) - 1; i >= 0; i-- {
			if !w.a.done.isSet(kids[i]) {
				w.stack = append(w.stack, frame{node: kids[i], path: path})
			}
		}
	}
	return nil
}

func (w *walker) emit(node int, path []domain.Token) {
	w.a.done.set(node)
	w.rows = append(w.rows, domain.TreeRow{
		ParentKey: domain.PathField,
		Path:      path,
		Index:     node,
		Record:    w.a.records[node],
	})
	if len(path) > w.a.stats.MaxDepth {
		w.a.stats.MaxDepth = len(path)
	}
}

func (w *walker) leave(node int) {
	delete(w.onPath, w.a.own[node])
}

// poll checks for cancellation every cancelCheckInterval expansions.
func (w *walker) poll() error {
	w.steps++
	if w.steps%cancelCheckInterval != 0 {
		return nil
	}
	return w.ctx.Err()
}

func pathLabel(path []domain.Token) string {
	if len(path) == 0 {
		return "[]"
	}
	return "[" + domain.TreeRow{Path: path}.PathString(" > ") + "]"
}
