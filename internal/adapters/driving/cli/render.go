package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/flattree/internal/adapters/driving/styles"
	"github.com/custodia-labs/flattree/internal/core/domain"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// stylesFor picks coloured styles for terminals unless plain is forced.
func stylesFor(w io.Writer, plain bool) *styles.Styles {
	if plain || !isTerminal(w) {
		return styles.PlainStyles()
	}
	return styles.DefaultStyles()
}

// jsonRow is the JSON view of a tree row.
type jsonRow struct {
	Key    string                  `json:"key"`
	Path   []string                `json:"path"`
	Depth  int                     `json:"depth"`
	Index  int                     `json:"index"`
	State  string                  `json:"state"`
	Fields map[string]domain.Value `json:"fields"`
}

type jsonForest struct {
	Rows  []jsonRow         `json:"rows"`
	Stats domain.BuildStats `json:"stats"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderForestJSON(w io.Writer, forest *domain.Forest) error {
	out := jsonForest{Rows: make([]jsonRow, len(forest.Rows)), Stats: forest.Stats}
	for i, row := range forest.Rows {
		path := make([]string, len(row.Path))
		for j, t := range row.Path {
			path[j] = t.String()
		}
		out.Rows[i] = jsonRow{
			Key:    row.Key().String(),
			Path:   path,
			Depth:  row.Depth(),
			Index:  row.Index,
			State:  row.Record.State.String(),
			Fields: row.Record.Fields,
		}
	}
	return writeJSON(w, out)
}

// renderPaths writes one slash-joined path per row.
func renderPaths(w io.Writer, forest *domain.Forest) {
	for _, row := range forest.Rows {
		fmt.Fprintln(w, row.PathString("/"))
	}
}

// renderTree writes rows indented by depth. Rows arrive in depth-first
// pre-order, so indentation alone shows the structure.
func renderTree(w io.Writer, forest *domain.Forest, st *styles.Styles) {
	if len(forest.Rows) == 0 {
		fmt.Fprintln(w, st.Muted.Render("No rows materialized."))
	}
	for _, row := range forest.Rows {
		var b strings.Builder
		if row.IsRoot() {
			b.WriteString(st.Root.Render(row.Key().String()))
		} else {
			b.WriteString(st.Guide.Render(strings.Repeat("  ", row.Depth()-2) + "└─ "))
			b.WriteString(st.Node.Render(row.Key().String()))
		}
		if row.Record.State != domain.RowUnchanged {
			b.WriteString(" ")
			b.WriteString(st.State(row.Record.State).Render("(" + row.Record.State.String() + ")"))
		}
		fmt.Fprintln(w, b.String())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Title.Render(summarize(forest.Stats)))
}

func summarize(s domain.BuildStats) string {
	return fmt.Sprintf("%d of %d records materialized: %d root(s), max depth %d, %d deleted, %d excluded, %d orphan(s)",
		s.Materialized, s.Records, s.Roots, s.MaxDepth, s.Deleted, s.Excluded, s.Orphans)
}

func renderComparison(w io.Writer, c *domain.Comparison, st *styles.Styles) {
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Comparison %s (%s, %d records)", c.RunID, c.Tree, c.Records)))
	fmt.Fprintln(w)
	for _, run := range []domain.StrategyRun{c.Naive, c.Indexed} {
		fmt.Fprintf(w, "  %-8s %12s  %d nodes\n", run.Strategy, run.Duration, run.Stats.Materialized)
	}
	fmt.Fprintf(w, "  %-8s %11.2f%%\n", "faster", c.Improvement())
	fmt.Fprintln(w)

	if c.Equivalence.Equal {
		fmt.Fprintln(w, st.Success.Render("Outputs are equivalent."))
		return
	}
	fmt.Fprintln(w, st.Error.Render(fmt.Sprintf("Outputs differ: %d pair(s) only in naive, %d only in indexed.",
		len(c.Equivalence.OnlyInA), len(c.Equivalence.OnlyInB))))
	for _, p := range c.Equivalence.OnlyInA {
		fmt.Fprintf(w, "  - naive:   %s\n", domain.TreeRow{Path: p.Path}.PathString("/"))
	}
	for _, p := range c.Equivalence.OnlyInB {
		fmt.Fprintf(w, "  - indexed: %s\n", domain.TreeRow{Path: p.Path}.PathString("/"))
	}
}
