// Package adjacency renders a room-adjacency diagram of a laid-out spec
// with Graphviz.
//
// Two rooms are adjacent when their facing walls are at most one layout
// gutter apart and they overlap along that wall. The diagram shows one node
// per room and one undirected edge per adjacent pair, which makes it easy
// to check circulation (is every bedroom reachable from the hallway?)
// without reading the plan drawing.
//
//	dot := adjacency.ToDOT(spec, adjacency.Options{Detailed: true})
//	svg, err := adjacency.RenderSVG(ctx, dot)
package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planforge/pkg/blueprint"
	"github.com/matzehuels/planforge/pkg/layout"
	"github.com/matzehuels/planforge/pkg/standards"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds dimensions and area to node labels.
	// When false, only the room name is shown.
	Detailed bool
}

// Edge is an unordered pair of adjacent room IDs, From before To in spec
// order.
type Edge struct {
	From, To string
}

// Edges returns every adjacent pair of rooms, each once, in spec order.
func Edges(spec *blueprint.Spec) []Edge {
	if spec == nil {
		return nil
	}
	var edges []Edge
	for i, a := range spec.Rooms {
		for _, b := range spec.Rooms[i+1:] {
			if Adjacent(a, b) {
				edges = append(edges, Edge{From: a.ID, To: b.ID})
			}
		}
	}
	return edges
}

// Adjacent reports whether a and b share a wall within the layout gutter.
// Rooms that only meet diagonally are not adjacent.
func Adjacent(a, b blueprint.Room) bool {
	gapX := math.Max(b.Position.X-a.Right(), a.Position.X-b.Right())
	gapY := math.Max(b.Position.Y-a.Bottom(), a.Position.Y-b.Bottom())
	overlapX := math.Min(a.Right(), b.Right()) - math.Max(a.Position.X, b.Position.X)
	overlapY := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Position.Y, b.Position.Y)

	sideBySide := gapX <= layout.Gap && overlapY > 0
	stacked := gapY <= layout.Gap && overlapX > 0
	return sideBySide || stacked
}

// ToDOT converts a spec to an undirected Graphviz graph.
func ToDOT(spec *blueprint.Spec, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#475569\"];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	if spec != nil {
		for _, r := range spec.Rooms {
			fmt.Fprintf(&buf, "  %q [%s];\n", r.ID, strings.Join(fmtAttrs(r, spec.Unit, opts.Detailed), ", "))
		}
	}

	buf.WriteString("\n")
	for _, e := range Edges(spec) {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(r blueprint.Room, unit blueprint.Unit, detailed bool) string {
	if !detailed {
		return r.Name
	}
	a := unit.Abbrev()
	return fmt.Sprintf("%s\n%s%s x %s%s\n%s %s",
		r.Name, num(r.Width), a, num(r.Depth), a, num(r.Area), unit.AreaAbbrev())
}

func fmtAttrs(r blueprint.Room, unit blueprint.Unit, detailed bool) []string {
	c := r.Color
	if c == "" {
		c = standards.Color(r.Type)
	}
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(r, unit, detailed)),
		fmt.Sprintf("color=%q", c),
		fmt.Sprintf("fillcolor=%q", c+"40"),
	}
}

func num(v float64) string {
	return strconv.FormatFloat(blueprint.Round(v), 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one so the diagram scales like the other SVG outputs.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
