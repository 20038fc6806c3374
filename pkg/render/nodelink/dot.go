package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse/universal"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the category and metadata below the node title.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT.
// Connections whose endpoints cannot be resolved are skipped.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	ports := make(map[string]string)
	for _, n := range g.Nodes() {
		for i, p := range n.Inputs {
			ports[p.ID] = fmt.Sprintf("i%d", i)
		}
		for i, p := range n.Outputs {
			ports[p.ID] = fmt.Sprintf("o%d", i)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		from, _, err := g.Endpoints(c)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q:%s:e -> %q:%s:w [%s];\n",
			c.FromNodeID, ports[c.FromPinID], c.ToNodeID, ports[c.ToPinID], strings.Join(edgeAttrs(from.Type), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtLabel builds a record label: {inputs} | title | {outputs}.
func fmtLabel(n *graph.Node, detailed bool) string {
	title := escape(n.Title)
	if detailed {
		parts := []string{title}
		if n.Category != "" {
			parts = append(parts, escape("category: "+n.Category))
		}
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			parts = append(parts, escape(k+": "+n.Meta[k]))
		}
		title = strings.Join(parts, `\n`)
	}
	return fmt.Sprintf("{{%s}|%s|{%s}}", pinFields(n.Inputs, "i"), title, pinFields(n.Outputs, "o"))
}

func pinFields(pins []*graph.Pin, prefix string) string {
	fields := make([]string, len(pins))
	for i, p := range pins {
		fields[i] = fmt.Sprintf("<%s%d> %s", prefix, i, escape(p.Name))
	}
	return strings.Join(fields, "|")
}

func fmtAttrs(n *graph.Node, label string) []string {
	attrs := []string{"label=" + quote(label)}
	switch universal.HeaderColor(n.Title) {
	case "red":
		attrs = append(attrs, "color=\"#cc3333\"", "penwidth=2")
	case "blue":
		attrs = append(attrs, "color=\"#3366cc\"", "penwidth=2")
	}
	return attrs
}

func edgeAttrs(t graph.PinType) []string {
	attrs := []string{fmt.Sprintf("color=%q", universal.KindColors[universal.Kind(t)])}
	if t == graph.Exec {
		attrs = append(attrs, "penwidth=2.5")
	}
	return attrs
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

// escape makes text safe inside a record label.
func escape(s string) string {
	return recordEscaper.Replace(s)
}

// quote wraps s in a DOT string. Only the double quote is escaped; record
// escapes must reach Graphviz untouched.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// normalizeViewBox rewrites the root element so the picture scales from the
// origin.
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
