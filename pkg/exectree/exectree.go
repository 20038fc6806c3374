// Package exectree renders the control-flow view of a node graph as an
// ASCII tree.
//
// Only Exec edges take part: an edge counts when its source pin is an Exec
// pin. Roots are vertices with no incoming Exec edge and at least one
// outgoing one. Each root is written as its own tree:
//
//	Event BeginPlay
//	├── Branch (then→execute)
//	│   ├── Print String (True→execute)
//	│   └── Delay (False→execute)
//	│       └── Branch [loop] (Completed→execute)
//	└── Set Timer (then→execute)
//
// All edges from a vertex to the same target are merged into one child line
// whose label lists every from→to pin pair. Children are ordered by title,
// then by label, so output does not depend on edge insertion order. A
// vertex already on the path from the root is marked [loop]; one already
// written under the same root is marked [seen]. Neither is expanded again.
package exectree

import (
	"cmp"
	"slices"
	"strings"

	"github.com/USQVE/bleprint/pkg/graph"
)

// NoFlow is returned when no vertex qualifies as a root.
const NoFlow = "No execution flow detected."

// Vertex is a node as seen by the builder.
type Vertex struct {
	ID    string
	Title string
}

// Edge is a connection with its pin names resolved. Exec is true when the
// source pin carries control flow.
type Edge struct {
	From, FromPin string
	To, ToPin     string
	Exec          bool
}

type child struct {
	id     string
	title  string
	labels []string
}

type builder struct {
	titles   map[string]string
	outgoing map[string][]Edge
}

// Build renders the execution tree. Root blocks are separated by a blank
// line and every line, including the last, ends in a newline.
func Build(vertices []Vertex, edges []Edge) string {
	b := &builder{
		titles:   make(map[string]string, len(vertices)),
		outgoing: make(map[string][]Edge),
	}
	incoming := map[string]int{}
	for _, v := range vertices {
		b.titles[v.ID] = v.Title
	}
	for _, e := range edges {
		if !e.Exec {
			continue
		}
		_, fromOK := b.titles[e.From]
		_, toOK := b.titles[e.To]
		if !fromOK || !toOK {
			continue
		}
		b.outgoing[e.From] = append(b.outgoing[e.From], e)
		incoming[e.To]++
	}

	var blocks []string
	for _, v := range vertices {
		if incoming[v.ID] > 0 || len(b.outgoing[v.ID]) == 0 {
			continue
		}
		var sb strings.Builder
		sb.WriteString(v.Title + "\n")
		seen := map[string]bool{}
		path := map[string]bool{v.ID: true}
		b.writeChildren(&sb, v.ID, "", path, seen)
		blocks = append(blocks, sb.String())
	}
	if len(blocks) == 0 {
		return NoFlow
	}
	return strings.Join(blocks, "\n")
}

func (b *builder) children(id string) []child {
	var kids []child
	index := map[string]int{}
	for _, e := range b.outgoing[id] {
		k, ok := index[e.To]
		if !ok {
			k = len(kids)
			index[e.To] = k
			kids = append(kids, child{id: e.To, title: b.titles[e.To]})
		}
		kids[k].labels = append(kids[k].labels, e.FromPin+"→"+e.ToPin)
	}
	for _, k := range kids {
		slices.Sort(k.labels)
	}
	slices.SortStableFunc(kids, func(a, c child) int {
		return cmp.Or(
			strings.Compare(a.title, c.title),
			strings.Compare(strings.Join(a.labels, ","), strings.Join(c.labels, ",")),
		)
	})
	return kids
}

func (b *builder) writeChildren(sb *strings.Builder, id, prefix string, path, seen map[string]bool) {
	kids := b.children(id)
	for i, k := range kids {
		last := i == len(kids)-1
		connector, ext := "├── ", "│   "
		if last {
			connector, ext = "└── ", "    "
		}
		label := " (" + strings.Join(k.labels, ", ") + ")"
		line := prefix + connector + k.title
		switch {
		case path[k.id]:
			sb.WriteString(line + " [loop]" + label + "\n")
		case seen[k.id]:
			sb.WriteString(line + " [seen]" + label + "\n")
		default:
			sb.WriteString(line + label + "\n")
			seen[k.id] = true
			path[k.id] = true
			b.writeChildren(sb, k.id, prefix+ext, path, seen)
			delete(path, k.id)
		}
	}
}

// FromGraph renders the execution tree of g. Connections whose source pin
// is not an output or whose target pin is not an input are ignored.
func FromGraph(g *graph.Graph) string {
	vertices, edges := Collect(g)
	return Build(vertices, edges)
}

// Collect converts a graph into builder input.
func Collect(g *graph.Graph) ([]Vertex, []Edge) {
	nodes := g.Nodes()
	vertices := make([]Vertex, len(nodes))
	for i, n := range nodes {
		vertices[i] = Vertex{ID: n.ID, Title: n.Title}
	}
	var edges []Edge
	for _, c := range g.Connections() {
		from, to := g.Node(c.FromNodeID), g.Node(c.ToNodeID)
		if from == nil || to == nil {
			continue
		}
		fp := findPin(from.Outputs, c.FromPinID)
		tp := findPin(to.Inputs, c.ToPinID)
		if fp == nil || tp == nil {
			continue
		}
		edges = append(edges, Edge{
			From: c.FromNodeID, FromPin: fp.Name,
			To: c.ToNodeID, ToPin: tp.Name,
			Exec: fp.Type == graph.Exec,
		})
	}
	return vertices, edges
}

func findPin(pins []*graph.Pin, id string) *graph.Pin {
	for _, p := range pins {
		if p.ID == id {
			return p
		}
	}
	return nil
}
