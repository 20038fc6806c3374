package graph

import (
	"errors"
	"testing"
)

// pair builds a graph with two nodes, each with one output and one input of
// the given types.
func pair(t *testing.T, out, in PinType) (*Graph, *Node, *Node) {
	t.Helper()
	g := New()
	a := NewNode("A", CategoryArrow)
	a.AddOutput("out", out)
	b := NewNode("B", CategoryArrow)
	b.AddInput("in", in)
	g.AddNode(a)
	g.AddNode(b)
	return g, a, b
}

func TestParsePinType(t *testing.T) {
	tests := []struct {
		in   string
		want PinType
	}{
		{"exec", Exec},
		{"BOOL", Boolean},
		{"Boolean", Boolean},
		{"int", Integer},
		{"INTEGER", Integer},
		{"float", Float},
		{"String", String},
		{"object", Object},
		{"VECTOR", Vector},
		{"wildcard", Wildcard},
		{" int ", Integer},
		{"rotator", Wildcard},
		{"", Wildcard},
	}
	for _, tt := range tests {
		if got := ParsePinType(tt.in); got != tt.want {
			t.Errorf("ParsePinType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("Print", CategoryArrow)
	if n.ID == "" {
		t.Fatal("ID is empty")
	}
	if n.Width != DefaultWidth || n.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want %vx%v", n.Width, n.Height, DefaultWidth, DefaultHeight)
	}
	if other := NewNode("Print", CategoryArrow); other.ID == n.ID {
		t.Error("two nodes share an ID")
	}
}

func TestAddConnectionCompatibility(t *testing.T) {
	for _, from := range PinTypes {
		for _, to := range PinTypes {
			g, a, b := pair(t, from, to)
			err := g.AddConnection(NewConnection(a.ID, a.Outputs[0].ID, b.ID, b.Inputs[0].ID))
			want := from == to || from == Wildcard || to == Wildcard
			if (err == nil) != want {
				t.Errorf("%s -> %s: err = %v, want success %v", from, to, err, want)
			}
			if !want {
				if !errors.Is(err, ErrIncompatiblePins) {
					t.Errorf("%s -> %s: err = %v, want ErrIncompatiblePins", from, to, err)
				}
				if len(g.Connections()) != 0 {
					t.Errorf("%s -> %s: connection stored after failure", from, to)
				}
				if a.Outputs[0].Connected || b.Inputs[0].Connected {
					t.Errorf("%s -> %s: pin flagged connected after failure", from, to)
				}
			}
			if err := g.Validate(); err != nil {
				t.Errorf("%s -> %s: Validate() = %v", from, to, err)
			}
		}
	}
}

func TestAddConnectionUnknownEndpoints(t *testing.T) {
	g, a, b := pair(t, Exec, Exec)
	tests := []struct {
		name string
		conn *Connection
		want error
	}{
		{"missing source node", NewConnection("nope", a.Outputs[0].ID, b.ID, b.Inputs[0].ID), ErrUnknownNode},
		{"missing target node", NewConnection(a.ID, a.Outputs[0].ID, "nope", b.Inputs[0].ID), ErrUnknownNode},
		{"missing source pin", NewConnection(a.ID, "nope", b.ID, b.Inputs[0].ID), ErrUnknownPin},
		{"missing target pin", NewConnection(a.ID, a.Outputs[0].ID, b.ID, "nope"), ErrUnknownPin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddConnection(tt.conn); !errors.Is(err, tt.want) {
				t.Errorf("AddConnection() = %v, want %v", err, tt.want)
			}
			if len(g.Connections()) != 0 {
				t.Error("connection stored after failure")
			}
			if a.Outputs[0].Connected || b.Inputs[0].Connected {
				t.Error("pin flagged connected after failure")
			}
		})
	}
}

func TestFanIn(t *testing.T) {
	g := New()
	a := NewNode("A", CategoryArrow)
	ao := a.AddOutput("out", Integer)
	b := NewNode("B", CategoryArrow)
	bo := b.AddOutput("out", Integer)
	c := NewNode("C", CategoryArrow)
	ci := c.AddInput("in", Integer)
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(c)

	c1, err := g.Connect(a.ID, ao.ID, c.ID, ci.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Connect(b.ID, bo.ID, c.ID, ci.ID); err != nil {
		t.Fatal(err)
	}
	if !g.RemoveConnection(c1.ID) {
		t.Fatal("RemoveConnection() = false, want true")
	}
	if !ci.Connected {
		t.Error("shared input lost its connected flag while still in use")
	}
	if ao.Connected {
		t.Error("source pin still connected after removal")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := New()
	nodes := make([]*Node, 3)
	for i, title := range []string{"A", "B", "C"} {
		n := NewNode(title, CategoryArrow)
		n.AddInput("in", Exec)
		n.AddOutput("out", Exec)
		g.AddNode(n)
		nodes[i] = n
	}
	a, b, c := nodes[0], nodes[1], nodes[2]
	mustConnect(t, g, a, b)
	mustConnect(t, g, b, c)
	mustConnect(t, g, a, c)

	if !g.RemoveNode(b.ID) {
		t.Fatal("RemoveNode() = false, want true")
	}
	if g.RemoveNode(b.ID) {
		t.Error("second RemoveNode() = true, want false")
	}
	for _, conn := range g.Connections() {
		if conn.FromNodeID == b.ID || conn.ToNodeID == b.ID {
			t.Errorf("connection %s still references removed node", conn.ID)
		}
	}
	if got := len(g.Connections()); got != 1 {
		t.Errorf("connections = %d, want 1", got)
	}
	if !a.Outputs[0].Connected || !c.Inputs[0].Connected {
		t.Error("A->C endpoints should stay connected")
	}
	if c.Outputs[0].Connected {
		t.Error("C output should not be connected")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func mustConnect(t *testing.T, g *Graph, from, to *Node) *Connection {
	t.Helper()
	c, err := g.Connect(from.ID, from.Outputs[0].ID, to.ID, to.Inputs[0].ID)
	if err != nil {
		t.Fatalf("Connect(%s, %s) = %v", from.Title, to.Title, err)
	}
	return c
}

func TestReconnectPin(t *testing.T) {
	g := New()
	src := NewNode("Src", CategoryArrow)
	out := src.AddOutput("out", Float)
	dst := NewNode("Dst", CategoryArrow)
	in1 := dst.AddInput("a", Float)
	in2 := dst.AddInput("b", Wildcard)
	bad := dst.AddInput("c", Boolean)
	g.AddNode(src)
	g.AddNode(dst)

	c, err := g.Connect(src.ID, out.ID, dst.ID, in1.ID)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("incompatible leaves connection untouched", func(t *testing.T) {
		if err := g.ReconnectPin(c.ID, dst.ID, bad.ID); !errors.Is(err, ErrIncompatiblePins) {
			t.Fatalf("ReconnectPin() = %v, want ErrIncompatiblePins", err)
		}
		if c.ToPinID != in1.ID || !in1.Connected || bad.Connected {
			t.Error("connection mutated after failed reconnect")
		}
	})

	t.Run("unknown pin", func(t *testing.T) {
		if err := g.ReconnectPin(c.ID, dst.ID, "missing"); !errors.Is(err, ErrUnknownPin) {
			t.Fatalf("ReconnectPin() = %v, want ErrUnknownPin", err)
		}
	})

	t.Run("unknown connection", func(t *testing.T) {
		if err := g.ReconnectPin("missing", dst.ID, in2.ID); !errors.Is(err, ErrUnknownConnection) {
			t.Fatalf("ReconnectPin() = %v, want ErrUnknownConnection", err)
		}
	})

	t.Run("success moves flags", func(t *testing.T) {
		if err := g.ReconnectPin(c.ID, dst.ID, in2.ID); err != nil {
			t.Fatalf("ReconnectPin() = %v", err)
		}
		if in1.Connected {
			t.Error("old target still connected")
		}
		if !in2.Connected {
			t.Error("new target not connected")
		}
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestRemovePin(t *testing.T) {
	g, a, b := pair(t, Exec, Exec)
	mustConnect(t, g, a, b)
	if !g.RemovePin(b.ID, b.Inputs[0].ID) {
		t.Fatal("RemovePin() = false, want true")
	}
	if len(b.Inputs) != 0 {
		t.Errorf("inputs = %d, want 0", len(b.Inputs))
	}
	if len(g.Connections()) != 0 || a.Outputs[0].Connected {
		t.Error("connection survived pin removal")
	}
	if g.RemovePin(b.ID, "missing") {
		t.Error("RemovePin(missing) = true, want false")
	}
}

func TestAddNodeReplace(t *testing.T) {
	g, a, b := pair(t, Exec, Exec)
	mustConnect(t, g, a, b)

	repl := &Node{ID: b.ID, Title: "B2"}
	repl.AddInput("other", Exec)
	g.AddNode(repl)

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.Nodes()[1].Title != "B2" {
		t.Errorf("replacement lost its position in order")
	}
	if len(g.Connections()) != 0 {
		t.Error("connection to dropped pin survived replacement")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestStatisticsAndClear(t *testing.T) {
	g := New()
	g.AddNode(NewNode("A", CategoryArrow))
	g.AddNode(NewNode("B", CategoryTree))
	g.AddNode(NewNode("C", CategoryArrow))

	st := g.Statistics()
	if st.NodeCount != 3 || st.ConnectionCount != 0 {
		t.Errorf("Statistics() = %+v", st)
	}
	if len(st.Categories) != 2 || st.Categories[0] != CategoryArrow || st.Categories[1] != CategoryTree {
		t.Errorf("Categories = %v, want [Arrow Tree]", st.Categories)
	}
	if got := len(g.NodesByCategory(CategoryArrow)); got != 2 {
		t.Errorf("NodesByCategory(Arrow) = %d, want 2", got)
	}

	g.Clear()
	if st := g.Statistics(); st.NodeCount != 0 || len(st.Categories) != 0 {
		t.Errorf("after Clear Statistics() = %+v", st)
	}
}

func TestRenameMove(t *testing.T) {
	g := New()
	n := NewNode("A", CategoryArrow)
	g.AddNode(n)
	if !g.Rename(n.ID, "Z") || n.Title != "Z" {
		t.Errorf("Rename failed, title = %q", n.Title)
	}
	if !g.Move(n.ID, 10, 20) || n.X != 10 || n.Y != 20 {
		t.Errorf("Move failed, pos = (%v, %v)", n.X, n.Y)
	}
	if g.Rename("missing", "x") || g.Move("missing", 0, 0) {
		t.Error("edits on missing node reported success")
	}
}

func TestValidateDetectsDrift(t *testing.T) {
	g, a, _ := pair(t, Exec, Exec)
	a.Outputs[0].Connected = true
	if err := g.Validate(); !errors.Is(err, ErrConnectedFlag) {
		t.Errorf("Validate() = %v, want ErrConnectedFlag", err)
	}
}
