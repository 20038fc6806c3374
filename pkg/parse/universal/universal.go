// Package universal picks a notation for arbitrary text and adapts graphs to
// the flat shape consumed by the web editor.
//
// Detection is a fixed priority chain; the first rule that fires wins:
//
//  1. "Begin Object" anywhere: editor clipboard dump
//  2. "├──" or "└──": ASCII tree
//  3. "[" or "(" together with "→" or "->": legacy colored arrows
//  4. anything else: arrow notation
//
// Text that satisfies several rules is read with the highest-priority
// format.
package universal

import (
	"strings"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/parse/arrow"
	"github.com/USQVE/bleprint/pkg/parse/asciitree"
	"github.com/USQVE/bleprint/pkg/parse/clipboard"
	"github.com/USQVE/bleprint/pkg/parse/legacy"
)

// Detect returns the format text should be read as.
func Detect(text string) parse.Format {
	switch {
	case strings.Contains(text, clipboard.Marker):
		return parse.FormatClipboard
	case strings.Contains(text, "├──") || strings.Contains(text, "└──"):
		return parse.FormatTree
	case strings.ContainsAny(text, "[(") && (strings.Contains(text, "→") || strings.Contains(text, "->")):
		return parse.FormatLegacy
	default:
		return parse.FormatArrow
	}
}

// Dispatcher routes text to a codec. The zero value uses the default legacy
// policies.
type Dispatcher struct {
	Legacy legacy.Parser
}

// Codec returns the codec for a format. Unknown formats get the arrow codec.
func (d Dispatcher) Codec(f parse.Format) parse.Codec {
	switch f {
	case parse.FormatClipboard:
		return clipboard.Codec{}
	case parse.FormatTree:
		return asciitree.Codec{}
	case parse.FormatLegacy:
		return legacy.Codec{Parser: d.Legacy}
	default:
		return arrow.Codec{}
	}
}

// Parse detects the format of text and parses it.
func (d Dispatcher) Parse(text string) *parse.Result {
	return d.Codec(Detect(text)).Analyze(text)
}

// Parse detects the format of text and parses it with default policies.
func Parse(text string) *parse.Result { return Dispatcher{}.Parse(text) }

// ParseUniversal parses text and returns the editor shape.
func ParseUniversal(text string) Document {
	return FromGraph(Parse(text).Graph)
}

// BuildASCIITreeExec renders the execution tree of an editor document.
func BuildASCIITreeExec(nodes []NodeData, connections []ConnectionData) string {
	return Document{Nodes: nodes, Connections: connections}.ExecTree()
}

// Generate writes g in the given format.
func Generate(g *graph.Graph, f parse.Format) string {
	return Dispatcher{}.Codec(f).Generate(g)
}
