package graph

import (
	"strings"

	"github.com/google/uuid"
)

// Default node dimensions assigned by [NewNode].
const (
	DefaultWidth  = 200
	DefaultHeight = 100
)

// Node categories used by the parsers. Categories are free-form; these are
// the values produced by the bundled notations.
const (
	CategoryArrow     = "Arrow"
	CategoryTree      = "Tree"
	CategoryLegacy    = "Legacy"
	CategoryClipboard = "Clipboard"
)

// PinType is the data kind carried by a pin.
type PinType string

const (
	Exec     PinType = "Exec"
	Boolean  PinType = "Boolean"
	Integer  PinType = "Integer"
	Float    PinType = "Float"
	String   PinType = "String"
	Object   PinType = "Object"
	Vector   PinType = "Vector"
	Wildcard PinType = "Wildcard"
)

// PinTypes lists every pin type in declaration order.
var PinTypes = []PinType{Exec, Boolean, Integer, Float, String, Object, Vector, Wildcard}

var pinKeywords = map[string]PinType{
	"EXEC":     Exec,
	"BOOL":     Boolean,
	"BOOLEAN":  Boolean,
	"INT":      Integer,
	"INTEGER":  Integer,
	"FLOAT":    Float,
	"STRING":   String,
	"OBJECT":   Object,
	"VECTOR":   Vector,
	"WILDCARD": Wildcard,
}

// ParsePinType maps a case-insensitive type keyword to a PinType.
// Unknown keywords map to [Wildcard].
func ParsePinType(keyword string) PinType {
	if t, ok := pinKeywords[strings.ToUpper(strings.TrimSpace(keyword))]; ok {
		return t
	}
	return Wildcard
}

// Valid reports whether t is one of the declared pin types.
func (t PinType) Valid() bool {
	for _, v := range PinTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Compatible reports whether a connection between pins of types a and b is
// allowed: the types are equal or either one is Wildcard.
func Compatible(a, b PinType) bool {
	return a == b || a == Wildcard || b == Wildcard
}

// Direction tells whether a pin receives or emits.
type Direction string

const (
	Input  Direction = "input"
	Output Direction = "output"
)

// Pin is a typed port on a node.
type Pin struct {
	ID        string    // Stable UUID, never changes after creation
	Name      string    // Display name, not unique
	Type      PinType   // Data kind
	Direction Direction // Input or Output
	Connected bool      // Derived: true iff a live connection references the pin
}

// NewPin creates a pin with a fresh identifier.
func NewPin(name string, t PinType, dir Direction) *Pin {
	return &Pin{ID: uuid.NewString(), Name: name, Type: t, Direction: dir}
}

// Node is a vertex in the graph. It exclusively owns its pins.
type Node struct {
	ID       string
	Title    string // Display title, not unique
	Category string
	X, Y     float64
	Width    float64
	Height   float64
	Inputs   []*Pin
	Outputs  []*Pin
	Meta     map[string]string // Importer-specific attributes, may be nil
}

// NewNode creates a node with a fresh identifier and the default size.
func NewNode(title, category string) *Node {
	return &Node{
		ID:       uuid.NewString(),
		Title:    title,
		Category: category,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

// AddInput appends a new input pin and returns it.
func (n *Node) AddInput(name string, t PinType) *Pin {
	p := NewPin(name, t, Input)
	n.Inputs = append(n.Inputs, p)
	return p
}

// AddOutput appends a new output pin and returns it.
func (n *Node) AddOutput(name string, t PinType) *Pin {
	p := NewPin(name, t, Output)
	n.Outputs = append(n.Outputs, p)
	return p
}

// Pin looks up a pin of either direction by id.
func (n *Node) Pin(id string) *Pin {
	for _, p := range n.Inputs {
		if p.ID == id {
			return p
		}
	}
	for _, p := range n.Outputs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// InputByName returns the first input pin with the given name.
func (n *Node) InputByName(name string) *Pin { return byName(n.Inputs, name) }

// OutputByName returns the first output pin with the given name.
func (n *Node) OutputByName(name string) *Pin { return byName(n.Outputs, name) }

func byName(pins []*Pin, name string) *Pin {
	for _, p := range pins {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Pins returns inputs followed by outputs.
func (n *Node) Pins() []*Pin {
	all := make([]*Pin, 0, len(n.Inputs)+len(n.Outputs))
	all = append(all, n.Inputs...)
	return append(all, n.Outputs...)
}

// SetPosition moves the node.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
}

// Connection wires FromPinID on FromNodeID to ToPinID on ToNodeID.
type Connection struct {
	ID         string
	FromNodeID string
	FromPinID  string
	ToNodeID   string
	ToPinID    string
}

// NewConnection creates a connection with a fresh identifier.
func NewConnection(fromNode, fromPin, toNode, toPin string) *Connection {
	return &Connection{
		ID:         uuid.NewString(),
		FromNodeID: fromNode,
		FromPinID:  fromPin,
		ToNodeID:   toNode,
		ToPinID:    toPin,
	}
}

// Statistics summarizes a graph.
type Statistics struct {
	NodeCount       int
	ConnectionCount int
	Categories      []string // Distinct categories in first-seen order
}
