package universal

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	bperrors "github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/exectree"
	"github.com/USQVE/bleprint/pkg/graph"
)

// UI pin kinds. Integer and Float both map to "number".
const (
	KindExec   = "exec"
	KindBool   = "bool"
	KindNumber = "number"
	KindVector = "vector"
	KindString = "string"
	KindObject = "object"
	KindOther  = "other"
)

// KindColors maps a pin kind to its wire color.
var KindColors = map[string]string{
	KindExec:   "#ff4444",
	KindBool:   "#ffff00",
	KindNumber: "#4488ff",
	KindVector: "#ffff88",
	KindString: "#ff88ff",
	KindObject: "#ff8844",
	KindOther:  "#888888",
}

// Kind returns the UI kind of a pin type.
func Kind(t graph.PinType) string {
	switch t {
	case graph.Exec:
		return KindExec
	case graph.Boolean:
		return KindBool
	case graph.Integer, graph.Float:
		return KindNumber
	case graph.String:
		return KindString
	case graph.Object:
		return KindObject
	case graph.Vector:
		return KindVector
	default:
		return KindOther
	}
}

// PinType returns the pin type for a UI kind. "number" reads back as
// Integer.
func PinType(kind string) graph.PinType {
	switch kind {
	case KindExec:
		return graph.Exec
	case KindBool:
		return graph.Boolean
	case KindNumber:
		return graph.Integer
	case KindString:
		return graph.String
	case KindObject:
		return graph.Object
	case KindVector:
		return graph.Vector
	default:
		return graph.Wildcard
	}
}

// HeaderColor picks a node header color from its title.
func HeaderColor(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "event") || strings.Contains(t, "begin") || strings.Contains(t, "end"):
		return "red"
	case strings.Contains(t, "set") || strings.Contains(t, "get") || strings.Contains(t, "location"):
		return "blue"
	default:
		return "gray"
	}
}

// PinData is a pin as drawn by the editor.
type PinData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	IsOutput bool   `json:"isOutput"`
}

// NodeData is a node as drawn by the editor.
type NodeData struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Color   string    `json:"color"`
	Inputs  []PinData `json:"inputs"`
	Outputs []PinData `json:"outputs"`
}

// ConnectionData is a wire as drawn by the editor.
type ConnectionData struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromPin  string `json:"fromPin"`
	ToNode   string `json:"toNode"`
	ToPin    string `json:"toPin"`
	Color    string `json:"color"`
}

// Document is the flat editor representation of a graph.
type Document struct {
	Nodes       []NodeData       `json:"nodes"`
	Connections []ConnectionData `json:"connections"`
}

func pinData(p *graph.Pin) PinData {
	kind := Kind(p.Type)
	return PinData{
		ID:       p.ID,
		Name:     p.Name,
		Type:     kind,
		Color:    KindColors[kind],
		IsOutput: p.Direction == graph.Output,
	}
}

// FromGraph converts g to the editor shape, keeping every id.
func FromGraph(g *graph.Graph) Document {
	doc := Document{Nodes: []NodeData{}, Connections: []ConnectionData{}}
	for _, n := range g.Nodes() {
		nd := NodeData{
			ID: n.ID, Title: n.Title,
			X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
			Color:   HeaderColor(n.Title),
			Inputs:  make([]PinData, 0, len(n.Inputs)),
			Outputs: make([]PinData, 0, len(n.Outputs)),
		}
		for _, p := range n.Inputs {
			nd.Inputs = append(nd.Inputs, pinData(p))
		}
		for _, p := range n.Outputs {
			nd.Outputs = append(nd.Outputs, pinData(p))
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, c := range g.Connections() {
		color := KindColors[KindOther]
		if from, _, err := g.Endpoints(c); err == nil {
			color = KindColors[Kind(from.Type)]
		}
		doc.Connections = append(doc.Connections, ConnectionData{
			ID: c.ID, FromNode: c.FromNodeID, FromPin: c.FromPinID,
			ToNode: c.ToNodeID, ToPin: c.ToPinID, Color: color,
		})
	}
	return doc
}

// Validate checks that node, pin and connection ids are present and
// unique. Pin ids are unique across the whole document.
func (d Document) Validate() error {
	nodes, pins, conns := map[string]bool{}, map[string]bool{}, map[string]bool{}
	for _, nd := range d.Nodes {
		switch {
		case nd.ID == "":
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "node %q has no id", nd.Title)
		case nodes[nd.ID]:
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "duplicate node id %s", nd.ID)
		}
		nodes[nd.ID] = true
		for _, p := range append(slices.Clone(nd.Inputs), nd.Outputs...) {
			switch {
			case p.ID == "":
				return bperrors.New(bperrors.ErrCodeInvalidGraph, "node %s: pin %q has no id", nd.ID, p.Name)
			case pins[p.ID]:
				return bperrors.New(bperrors.ErrCodeInvalidGraph, "node %s: duplicate pin id %s", nd.ID, p.ID)
			}
			pins[p.ID] = true
		}
	}
	for _, cd := range d.Connections {
		switch {
		case cd.ID == "":
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "connection %s->%s has no id", cd.FromNode, cd.ToNode)
		case conns[cd.ID]:
			return bperrors.New(bperrors.ErrCodeInvalidGraph, "duplicate connection id %s", cd.ID)
		}
		conns[cd.ID] = true
	}
	return nil
}

// Graph converts the document back into a graph, keeping every id. A
// document failing [Document.Validate] returns a nil graph and that
// INVALID_GRAPH error. Otherwise the graph is always returned; connections
// the graph rejects are left out and reported in the joined error.
func (d Document) Graph() (*graph.Graph, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	g := graph.New()
	for _, nd := range d.Nodes {
		n := &graph.Node{
			ID: nd.ID, Title: nd.Title, Category: "UI",
			X: nd.X, Y: nd.Y, Width: nd.Width, Height: nd.Height,
		}
		for _, p := range nd.Inputs {
			n.Inputs = append(n.Inputs, &graph.Pin{ID: p.ID, Name: p.Name, Type: PinType(p.Type), Direction: graph.Input})
		}
		for _, p := range nd.Outputs {
			n.Outputs = append(n.Outputs, &graph.Pin{ID: p.ID, Name: p.Name, Type: PinType(p.Type), Direction: graph.Output})
		}
		g.AddNode(n)
	}
	var errs []error
	for _, cd := range d.Connections {
		c := &graph.Connection{ID: cd.ID, FromNodeID: cd.FromNode, FromPinID: cd.FromPin, ToNodeID: cd.ToNode, ToPinID: cd.ToPin}
		if err := g.AddConnection(c); err != nil {
			errs = append(errs, fmt.Errorf("connection %s: %w", cd.ID, err))
		}
	}
	return g, errors.Join(errs...)
}

// ExecTree renders the execution tree. An edge is Exec when its source pin,
// looked up among the source node's outputs, has kind "exec".
func (d Document) ExecTree() string {
	byID := make(map[string]*NodeData, len(d.Nodes))
	vertices := make([]exectree.Vertex, len(d.Nodes))
	for i := range d.Nodes {
		byID[d.Nodes[i].ID] = &d.Nodes[i]
		vertices[i] = exectree.Vertex{ID: d.Nodes[i].ID, Title: d.Nodes[i].Title}
	}
	var edges []exectree.Edge
	for _, c := range d.Connections {
		from, to := byID[c.FromNode], byID[c.ToNode]
		if from == nil || to == nil {
			continue
		}
		fp, tp := findPin(from.Outputs, c.FromPin), findPin(to.Inputs, c.ToPin)
		if fp == nil || tp == nil {
			continue
		}
		edges = append(edges, exectree.Edge{
			From: c.FromNode, FromPin: fp.Name,
			To: c.ToNode, ToPin: tp.Name,
			Exec: fp.Type == KindExec,
		})
	}
	return exectree.Build(vertices, edges)
}

func findPin(pins []PinData, id string) *PinData {
	for i := range pins {
		if pins[i].ID == id {
			return &pins[i]
		}
	}
	return nil
}
