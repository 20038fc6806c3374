package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when a connection endpoint names a node
	// that is not in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownPin is returned when a connection endpoint names a pin that
	// the referenced node does not own.
	ErrUnknownPin = errors.New("unknown pin")

	// ErrIncompatiblePins is returned by [Graph.AddConnection] and
	// [Graph.ReconnectPin] when neither pin is Wildcard and their types differ.
	ErrIncompatiblePins = errors.New("incompatible pin types")

	// ErrUnknownConnection is returned by [Graph.ReconnectPin] when the
	// connection id is not in the graph.
	ErrUnknownConnection = errors.New("unknown connection")

	// ErrConnectedFlag is returned by [Graph.Validate] when a pin's Connected
	// flag disagrees with the connection set.
	ErrConnectedFlag = errors.New("pin connected flag out of sync")
)

// Graph owns nodes and connections. Iteration order is insertion order.
//
// The zero value is not usable; call New.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	conns     map[string]*Connection
	connOrder []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		conns: make(map[string]*Connection),
	}
}

// AddNode inserts n keyed by its id. A node with the same id is replaced in
// place; connections that referenced pins the replacement no longer owns are
// dropped and connected flags are recomputed for the node.
func (g *Graph) AddNode(n *Node) {
	if _, exists := g.nodes[n.ID]; !exists {
		g.nodeOrder = append(g.nodeOrder, n.ID)
		g.nodes[n.ID] = n
		for _, p := range n.Pins() {
			p.Connected = false
		}
		return
	}
	g.nodes[n.ID] = n
	for _, id := range slices.Clone(g.connOrder) {
		c := g.conns[id]
		if c.FromNodeID == n.ID && n.Pin(c.FromPinID) == nil ||
			c.ToNodeID == n.ID && n.Pin(c.ToPinID) == nil {
			g.RemoveConnection(id)
		}
	}
	for _, p := range n.Pins() {
		p.Connected = g.pinInUse(n.ID, p.ID)
	}
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodeOrder) }

// NodesByCategory returns nodes whose category equals cat.
func (g *Graph) NodesByCategory(cat string) []*Node {
	var out []*Node
	for _, n := range g.Nodes() {
		if n.Category == cat {
			out = append(out, n)
		}
	}
	return out
}

// RemoveNode removes the node and every connection touching it. It reports
// whether the node existed.
func (g *Graph) RemoveNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	for _, c := range g.ConnectionsForNode(id) {
		g.RemoveConnection(c.ID)
	}
	delete(g.nodes, id)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(s string) bool { return s == id })
	return true
}

// Rename sets the node title. It reports whether the node existed.
func (g *Graph) Rename(id, title string) bool {
	n := g.nodes[id]
	if n == nil {
		return false
	}
	n.Title = title
	return true
}

// Move sets the node position. It reports whether the node existed.
func (g *Graph) Move(id string, x, y float64) bool {
	n := g.nodes[id]
	if n == nil {
		return false
	}
	n.SetPosition(x, y)
	return true
}

// RemovePin deletes a pin from a node along with every connection using it.
// It reports whether the pin existed.
func (g *Graph) RemovePin(nodeID, pinID string) bool {
	n := g.nodes[nodeID]
	if n == nil || n.Pin(pinID) == nil {
		return false
	}
	for _, c := range g.ConnectionsForNode(nodeID) {
		if c.FromNodeID == nodeID && c.FromPinID == pinID || c.ToNodeID == nodeID && c.ToPinID == pinID {
			g.RemoveConnection(c.ID)
		}
	}
	match := func(p *Pin) bool { return p.ID == pinID }
	n.Inputs = slices.DeleteFunc(n.Inputs, match)
	n.Outputs = slices.DeleteFunc(n.Outputs, match)
	return true
}

// AddConnection validates and stores c. Both endpoint nodes and pins must
// exist and the pin types must be [Compatible]; otherwise the graph is left
// unchanged and one of ErrUnknownNode, ErrUnknownPin or ErrIncompatiblePins
// is returned (wrapped with endpoint context).
func (g *Graph) AddConnection(c *Connection) error {
	from, err := g.resolve(c.FromNodeID, c.FromPinID)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	to, err := g.resolve(c.ToNodeID, c.ToPinID)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if !Compatible(from.Type, to.Type) {
		return fmt.Errorf("%w: %s -> %s", ErrIncompatiblePins, from.Type, to.Type)
	}
	if _, exists := g.conns[c.ID]; exists {
		g.RemoveConnection(c.ID)
	}
	g.conns[c.ID] = c
	g.connOrder = append(g.connOrder, c.ID)
	from.Connected = true
	to.Connected = true
	return nil
}

// Connect creates and adds a connection between two pins.
func (g *Graph) Connect(fromNode, fromPin, toNode, toPin string) (*Connection, error) {
	c := NewConnection(fromNode, fromPin, toNode, toPin)
	if err := g.AddConnection(c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveConnection deletes a connection and re-derives the connected flag
// of both endpoint pins. It reports whether the connection existed.
func (g *Graph) RemoveConnection(id string) bool {
	c, ok := g.conns[id]
	if !ok {
		return false
	}
	g.dropConnection(id)
	g.refreshPin(c.FromNodeID, c.FromPinID)
	g.refreshPin(c.ToNodeID, c.ToPinID)
	return true
}

// ReconnectPin re-targets the destination of an existing connection. The new
// target is checked against the unchanged source pin; on failure the
// connection is untouched.
func (g *Graph) ReconnectPin(connID, newToNodeID, newToPinID string) error {
	c, ok := g.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	from, err := g.resolve(c.FromNodeID, c.FromPinID)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	to, err := g.resolve(newToNodeID, newToPinID)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if !Compatible(from.Type, to.Type) {
		return fmt.Errorf("%w: %s -> %s", ErrIncompatiblePins, from.Type, to.Type)
	}
	oldNode, oldPin := c.ToNodeID, c.ToPinID
	c.ToNodeID, c.ToPinID = newToNodeID, newToPinID
	g.refreshPin(oldNode, oldPin)
	to.Connected = true
	return nil
}

// Connection returns the connection with the given id, or nil.
func (g *Graph) Connection(id string) *Connection { return g.conns[id] }

// Connections returns all connections in insertion order.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, 0, len(g.connOrder))
	for _, id := range g.connOrder {
		out = append(out, g.conns[id])
	}
	return out
}

// ConnectionsForNode returns connections with the node at either end.
func (g *Graph) ConnectionsForNode(id string) []*Connection {
	var out []*Connection
	for _, c := range g.Connections() {
		if c.FromNodeID == id || c.ToNodeID == id {
			out = append(out, c)
		}
	}
	return out
}

// Clear removes every node and connection.
func (g *Graph) Clear() {
	clear(g.nodes)
	clear(g.conns)
	g.nodeOrder = nil
	g.connOrder = nil
}

// Statistics returns node and connection counts and the distinct categories.
func (g *Graph) Statistics() Statistics {
	st := Statistics{NodeCount: len(g.nodeOrder), ConnectionCount: len(g.connOrder)}
	for _, n := range g.Nodes() {
		if !slices.Contains(st.Categories, n.Category) {
			st.Categories = append(st.Categories, n.Category)
		}
	}
	return st
}

// Endpoints resolves the source and target pins of a connection.
func (g *Graph) Endpoints(c *Connection) (from, to *Pin, err error) {
	if from, err = g.resolve(c.FromNodeID, c.FromPinID); err != nil {
		return nil, nil, err
	}
	if to, err = g.resolve(c.ToNodeID, c.ToPinID); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// Validate checks that every connection resolves to compatible live pins and
// that every connected flag matches the connection set.
func (g *Graph) Validate() error {
	for _, c := range g.Connections() {
		from, to, err := g.Endpoints(c)
		if err != nil {
			return fmt.Errorf("connection %s: %w", c.ID, err)
		}
		if !Compatible(from.Type, to.Type) {
			return fmt.Errorf("connection %s: %w", c.ID, ErrIncompatiblePins)
		}
	}
	for _, n := range g.Nodes() {
		for _, p := range n.Pins() {
			if p.Connected != g.pinInUse(n.ID, p.ID) {
				return fmt.Errorf("node %s pin %s: %w", n.ID, p.ID, ErrConnectedFlag)
			}
		}
	}
	return nil
}

func (g *Graph) resolve(nodeID, pinID string) (*Pin, error) {
	n := g.nodes[nodeID]
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	p := n.Pin(pinID)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPin, pinID)
	}
	return p, nil
}

func (g *Graph) dropConnection(id string) {
	delete(g.conns, id)
	g.connOrder = slices.DeleteFunc(g.connOrder, func(s string) bool { return s == id })
}

func (g *Graph) refreshPin(nodeID, pinID string) {
	n := g.nodes[nodeID]
	if n == nil {
		return
	}
	if p := n.Pin(pinID); p != nil {
		p.Connected = g.pinInUse(nodeID, pinID)
	}
}

func (g *Graph) pinInUse(nodeID, pinID string) bool {
	for _, c := range g.conns {
		if c.FromNodeID == nodeID && c.FromPinID == pinID || c.ToNodeID == nodeID && c.ToPinID == pinID {
			return true
		}
	}
	return false
}
