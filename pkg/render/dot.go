package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/deptree/pkg/deptree"
)

// Options configures DOT generation.
type Options struct {
	// Name is the graph name emitted in the digraph header. Empty defaults
	// to "deps".
	Name string
}

// ToDOT converts a validated tree to Graphviz DOT format.
// Declared keys are emitted in declaration order, followed by implicit
// leaves in first-reference order, rendered with dashed outlines and grey
// fill to distinguish them from declared entries. The output is
// deterministic for structurally identical trees.
func ToDOT[K comparable](t *deptree.Tree[K], opts Options) string {
	name := opts.Name
	if name == "" {
		name = "deps"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	declared := make(map[K]bool, t.Len())
	for _, k := range t.Keys() {
		declared[k] = true
		fmt.Fprintf(&buf, "  %q;\n", fmt.Sprint(k))
	}

	var leaves []K
	seen := make(map[K]bool)
	for _, e := range t.Entries() {
		for _, dep := range e.Deps {
			if !declared[dep] && !seen[dep] {
				seen[dep] = true
				leaves = append(leaves, dep)
			}
		}
	}
	for _, k := range leaves {
		fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", fmt.Sprint(k))
	}

	buf.WriteString("\n")
	for _, e := range t.Entries() {
		for _, dep := range e.Deps {
			fmt.Fprintf(&buf, "  %q -> %q;\n", fmt.Sprint(e.Key), fmt.Sprint(dep))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
