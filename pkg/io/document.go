package io

import (
	"fmt"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
)

// Document is the serialized form of a graph.
type Document struct {
	Nodes       []Node       `json:"nodes" bson:"nodes"`
	Connections []Connection `json:"connections" bson:"connections"`
}

// Node is a serialized node.
type Node struct {
	ID       string            `json:"id" bson:"id"`
	Title    string            `json:"title" bson:"title"`
	Category string            `json:"category,omitempty" bson:"category,omitempty"`
	X        float64           `json:"x" bson:"x"`
	Y        float64           `json:"y" bson:"y"`
	Width    float64           `json:"width" bson:"width"`
	Height   float64           `json:"height" bson:"height"`
	Inputs   []Pin             `json:"inputs" bson:"inputs"`
	Outputs  []Pin             `json:"outputs" bson:"outputs"`
	Meta     map[string]string `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Pin is a serialized pin.
type Pin struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Type      string `json:"type" bson:"type"`
	Direction string `json:"direction,omitempty" bson:"direction,omitempty"`
	Connected bool   `json:"isConnected,omitempty" bson:"isConnected,omitempty"`
}

// Connection is a serialized connection.
type Connection struct {
	ID         string `json:"id" bson:"id"`
	FromNodeID string `json:"fromNodeId" bson:"fromNodeId"`
	FromPinID  string `json:"fromPinId" bson:"fromPinId"`
	ToNodeID   string `json:"toNodeId" bson:"toNodeId"`
	ToPinID    string `json:"toPinId" bson:"toPinId"`
}

// FromGraph converts g into a Document.
func FromGraph(g *graph.Graph) Document {
	doc := Document{
		Nodes:       make([]Node, 0, g.NodeCount()),
		Connections: make([]Connection, 0, len(g.Connections())),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, Node{
			ID: n.ID, Title: n.Title, Category: n.Category,
			X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
			Inputs:  pins(n.Inputs),
			Outputs: pins(n.Outputs),
			Meta:    n.Meta,
		})
	}
	for _, c := range g.Connections() {
		doc.Connections = append(doc.Connections, Connection{
			ID: c.ID, FromNodeID: c.FromNodeID, FromPinID: c.FromPinID,
			ToNodeID: c.ToNodeID, ToPinID: c.ToPinID,
		})
	}
	return doc
}

func pins(ps []*graph.Pin) []Pin {
	out := make([]Pin, len(ps))
	for i, p := range ps {
		out[i] = Pin{ID: p.ID, Name: p.Name, Type: string(p.Type), Direction: string(p.Direction), Connected: p.Connected}
	}
	return out
}

// ToGraph rebuilds a graph from d. Every id must be unique within its kind,
// pin types must be known, and every connection must be accepted by
// [graph.Graph.AddConnection].
func ToGraph(d Document) (*graph.Graph, error) {
	g := graph.New()
	pinIDs := map[string]bool{}

	convert := func(nodeID string, ps []Pin, dir graph.Direction) ([]*graph.Pin, error) {
		out := make([]*graph.Pin, 0, len(ps))
		for _, p := range ps {
			if p.ID == "" {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "node %s: pin %q has no id", nodeID, p.Name)
			}
			if pinIDs[p.ID] {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "node %s: duplicate pin id %s", nodeID, p.ID)
			}
			t := graph.PinType(p.Type)
			if !t.Valid() {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "node %s: pin %s: unknown type %q", nodeID, p.ID, p.Type)
			}
			pinIDs[p.ID] = true
			out = append(out, &graph.Pin{ID: p.ID, Name: p.Name, Type: t, Direction: dir})
		}
		return out, nil
	}

	for _, n := range d.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %q has no id", n.Title)
		}
		if g.Node(n.ID) != nil {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %s", n.ID)
		}
		inputs, err := convert(n.ID, n.Inputs, graph.Input)
		if err != nil {
			return nil, err
		}
		outputs, err := convert(n.ID, n.Outputs, graph.Output)
		if err != nil {
			return nil, err
		}
		g.AddNode(&graph.Node{
			ID: n.ID, Title: n.Title, Category: n.Category,
			X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
			Inputs: inputs, Outputs: outputs, Meta: n.Meta,
		})
	}

	for _, c := range d.Connections {
		if c.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "connection %s->%s has no id", c.FromNodeID, c.ToNodeID)
		}
		if g.Connection(c.ID) != nil {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate connection id %s", c.ID)
		}
		conn := &graph.Connection{
			ID: c.ID, FromNodeID: c.FromNodeID, FromPinID: c.FromPinID,
			ToNodeID: c.ToNodeID, ToPinID: c.ToPinID,
		}
		if err := g.AddConnection(conn); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "connection %s", c.ID)
		}
	}
	return g, nil
}

// Summary is a one-line description used in logs.
func (d Document) Summary() string {
	return fmt.Sprintf("%d nodes, %d connections", len(d.Nodes), len(d.Connections))
}
