package universal

import (
	"strings"
	"testing"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/exectree"
	"github.com/USQVE/bleprint/pkg/parse"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want parse.Format
	}{
		{"clipboard", "Begin Object Name=\"X\"\nEnd Object", parse.FormatClipboard},
		{"clipboard wins over tree", "Begin Object\n├── A\nEnd Object", parse.FormatClipboard},
		{"tree branch", "Root\n├── A", parse.FormatTree},
		{"tree last", "└── A", parse.FormatTree},
		{"tree wins over legacy", "└── [A] (x - red) -> [B] (y - red)", parse.FormatTree},
		{"legacy unicode arrow", "[A] (x - red) → [B] (y - red)", parse.FormatLegacy},
		{"legacy ascii arrow", "[A] (x - red) -> [B] (y - red)", parse.FormatLegacy},
		{"brackets without arrow", "[A]", parse.FormatArrow},
		{"typed arrow is legacy by priority", "A[in:exec] -> B", parse.FormatLegacy},
		{"plain arrow", "A -> B", parse.FormatArrow},
		{"empty", "", parse.FormatArrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRoutes(t *testing.T) {
	res := Parse("[X] (p - Белый) → [Y] (q - Белый)")
	if res.Format != parse.FormatLegacy {
		t.Fatalf("Format = %v, want legacy", res.Format)
	}
	if res.Graph.NodeCount() != 2 || len(res.Graph.Connections()) != 1 {
		t.Errorf("graph = %d nodes %d connections", res.Graph.NodeCount(), len(res.Graph.Connections()))
	}
}

func TestParseUniversal(t *testing.T) {
	doc := ParseUniversal("Event BeginPlay\n└── Set Location")
	if len(doc.Nodes) != 2 || len(doc.Connections) != 1 {
		t.Fatalf("doc = %d nodes %d connections", len(doc.Nodes), len(doc.Connections))
	}
	if doc.Nodes[0].Color != "red" || doc.Nodes[1].Color != "blue" {
		t.Errorf("header colors = %s/%s, want red/blue", doc.Nodes[0].Color, doc.Nodes[1].Color)
	}
	in := doc.Nodes[1].Inputs[0]
	if in.Type != KindExec || in.Color != KindColors[KindExec] || in.IsOutput {
		t.Errorf("input pin = %+v", in)
	}
	if doc.Connections[0].Color != KindColors[KindExec] {
		t.Errorf("connection color = %s", doc.Connections[0].Color)
	}
}

func TestDocumentGraphKeepsIDs(t *testing.T) {
	doc := ParseUniversal("A -> B")
	g, err := doc.Graph()
	if err != nil {
		t.Fatalf("Graph() = %v", err)
	}
	if g.Node(doc.Nodes[0].ID) == nil {
		t.Error("node id not preserved")
	}
	c := g.Connection(doc.Connections[0].ID)
	if c == nil || c.FromPinID != doc.Connections[0].FromPin {
		t.Error("connection id or pin id not preserved")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDocumentGraphRejects(t *testing.T) {
	doc := ParseUniversal("A -> B")
	doc.Connections[0].ToPin = "missing"
	g, err := doc.Graph()
	if err == nil {
		t.Fatal("Graph() error = nil, want rejection")
	}
	if g.NodeCount() != 2 || len(g.Connections()) != 0 {
		t.Errorf("partial graph = %d nodes %d connections", g.NodeCount(), len(g.Connections()))
	}
}

func TestDocumentGraphRejectsDuplicateIDs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"duplicate node", func(d *Document) { d.Nodes[1].ID = d.Nodes[0].ID }},
		{"duplicate pin across nodes", func(d *Document) { d.Nodes[1].Inputs[0].ID = d.Nodes[0].Outputs[0].ID }},
		{"duplicate pin within node", func(d *Document) { d.Nodes[0].Inputs[0].ID = d.Nodes[0].Outputs[0].ID }},
		{"missing pin id", func(d *Document) { d.Nodes[0].Inputs[0].ID = "" }},
		{"duplicate connection", func(d *Document) { d.Connections = append(d.Connections, d.Connections[0]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseUniversal("A -> B")
			tt.mutate(&doc)
			g, err := doc.Graph()
			if !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Fatalf("Graph() error = %v, want INVALID_GRAPH", err)
			}
			if g != nil {
				t.Error("Graph() should not return a graph for an invalid document")
			}
		})
	}

	if err := ParseUniversal("A -> B -> C").Validate(); err != nil {
		t.Errorf("Validate() on a parsed document = %v", err)
	}
}

func TestBuildASCIITreeExec(t *testing.T) {
	doc := ParseUniversal("Start -> A\nA -> B\nB -> A")
	got := BuildASCIITreeExec(doc.Nodes, doc.Connections)
	want := "Start\n" +
		"└── A (out_0→in_0)\n" +
		"    └── B (out_0→in_0)\n" +
		"        └── A [loop] (out_0→in_0)\n"
	if got != want {
		t.Errorf("BuildASCIITreeExec() =\n%s\nwant\n%s", got, want)
	}

	data := ParseUniversal("A[out:int] -> B[in:int]")
	if got := BuildASCIITreeExec(data.Nodes, data.Connections); got != exectree.NoFlow {
		t.Errorf("data-only graph = %q, want %q", got, exectree.NoFlow)
	}
}

func TestGenerate(t *testing.T) {
	g := Parse("A -> B").Graph
	if got := Generate(g, parse.FormatTree); !strings.Contains(got, "└── B") {
		t.Errorf("tree output = %q", got)
	}
}
