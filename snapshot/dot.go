package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"

	"github.com/hmmm42/treealign/tree"
)

// ToDOT renders b as a Graphviz DOT graph: one node per id from 0 to
// MaxSeenID (capped at capacity), and one edge from every node that is not
// its own parent to its parent, labeled with its stored score (so a
// never-attached node shows an edge to node 0 labeled -1). Attached nodes
// scoring below threshold are filled light gray to mark twilight-zone
// members at a glance.
func ToDOT(b *tree.Builder, threshold int) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white];\n\n")

	n := b.MaxSeenID() + 1
	if n > b.Capacity() {
		n = b.Capacity()
	}

	for v := 0; v < n; v++ {
		fillColor := "white"
		if b.Score(v) >= 0 && b.Score(v) < threshold {
			fillColor = "lightgray"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", node(v), fmt.Sprintf("%d", v), fillColor)
	}

	buf.WriteString("\n")
	for v := 0; v < n; v++ {
		parent := b.Parent(v)
		if parent == v {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", node(v), node(parent), fmt.Sprintf("%d", b.Score(v)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func node(v int) string {
	return fmt.Sprintf("n%d", v)
}

// WriteDOT renders b's Graphviz DOT graph through the graphviz layout engine
// and writes the xdot output (DOT annotated with concrete layout
// coordinates) to w.
func WriteDOT(ctx context.Context, w io.Writer, b *tree.Builder, threshold int) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(ToDOT(b, threshold)))
	if err != nil {
		return fmt.Errorf("snapshot: parsing dot: %w", err)
	}
	defer graph.Close()

	if err := gv.Render(ctx, graph, graphviz.XDOT, w); err != nil {
		return fmt.Errorf("snapshot: rendering dot: %w", err)
	}
	return nil
}
