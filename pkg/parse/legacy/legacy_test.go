package legacy

import (
	"testing"

	"github.com/USQVE/bleprint/pkg/graph"
)

func TestColorType(t *testing.T) {
	tests := []struct {
		word string
		want graph.PinType
	}{
		{"Белый", graph.Exec},
		{"белый", graph.Exec},
		{"Зеленый", graph.Integer},
		{"Зелёный", graph.Integer},
		{"Желтый", graph.Float},
		{"жёлтый", graph.Float},
		{"Красный", graph.Boolean},
		{"Синий", graph.Vector},
		{"WHITE", graph.Exec},
		{"green", graph.Integer},
		{"light yellow", graph.Float},
		{"red", graph.Boolean},
		{"Blue", graph.Vector},
		{"purple", graph.Wildcard},
		{"", graph.Wildcard},
	}
	for _, tt := range tests {
		if got := ColorType(tt.word); got != tt.want {
			t.Errorf("ColorType(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestParseSingleConnection(t *testing.T) {
	g := Parse("[X] (p - Белый) → [Y] (q - Белый)")

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if got := len(g.Connections()); got != 1 {
		t.Fatalf("connections = %d, want 1", got)
	}
	from, to, err := g.Endpoints(g.Connections()[0])
	if err != nil {
		t.Fatal(err)
	}
	if from.Type != graph.Exec || to.Type != graph.Exec {
		t.Errorf("pin types = %v/%v, want Exec/Exec", from.Type, to.Type)
	}
	if from.Name != "p" || to.Name != "q" {
		t.Errorf("pin names = %q/%q, want p/q", from.Name, to.Name)
	}
	x, y := g.Nodes()[0], g.Nodes()[1]
	if x.X != OriginX || y.X != OriginX+Spacing || x.Y != OriginY {
		t.Errorf("positions = (%v,%v) (%v,%v)", x.X, x.Y, y.X, y.Y)
	}
	if x.Category != graph.CategoryLegacy {
		t.Errorf("Category = %q", x.Category)
	}
}

func TestTypeBucketedPins(t *testing.T) {
	input := `[A] (Out - red) → [Branch] (Condition - red)
[B] (Result - Красный) -> [Branch] (Other - красный)
[C] (Value - green) -> [Branch] (Index - green)`

	g := Parse(input)
	var branch *graph.Node
	for _, n := range g.Nodes() {
		if n.Title == "Branch" {
			branch = n
		}
	}
	if branch == nil {
		t.Fatal("Branch not found")
	}
	if len(branch.Inputs) != 2 {
		t.Fatalf("Branch inputs = %d, want 2 (one per type)", len(branch.Inputs))
	}
	if branch.Inputs[0].Name != "Condition" || branch.Inputs[0].Type != graph.Boolean {
		t.Errorf("shared pin = %+v, want Condition/Boolean", branch.Inputs[0])
	}
	if got := len(g.Connections()); got != 3 {
		t.Errorf("connections = %d, want 3", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestReuseByName(t *testing.T) {
	input := `[A] (Out - red) → [Branch] (Condition - red)
[B] (Out - red) → [Branch] (Other - red)`
	g := Parser{Pins: ReuseByName{}}.Analyze(input).Graph
	branch := g.Nodes()[1]
	if len(branch.Inputs) != 2 {
		t.Errorf("Branch inputs = %d, want 2", len(branch.Inputs))
	}
}

func TestLiteralIdentityReusesNodes(t *testing.T) {
	input := `[Print] (then - white) → [Delay] (exec - white)
[Delay] (done - white) → [ Print ] (exec - white)`
	g := Parse(input)
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestWindowedIdentity(t *testing.T) {
	resolve := WindowedIdentity{}.NewResolver()

	steps := []struct {
		raw  string
		typ  graph.PinType
		line int
		want string
	}{
		{"Get Value", graph.Float, 0, "Get Value#1"},
		{"Get Value", graph.Float, 2, "Get Value#1"},
		{"Get Value", graph.Float, 6, "Get Value#2"},
		{"Get Value", graph.Exec, 7, "Get Value#main"},
		{"Get Value#custom", graph.Float, 8, "Get Value#custom"},
		{"Get Value", graph.Float, 9, "Get Value#custom"},
	}
	for _, s := range steps {
		key, title := resolve(s.raw, s.typ, s.line)
		if key != s.want {
			t.Errorf("resolve(%q, line %d) = %q, want %q", s.raw, s.line, key, s.want)
		}
		if title != "Get Value" {
			t.Errorf("title = %q, want Get Value", title)
		}
	}
}

func TestWindowedIdentityParse(t *testing.T) {
	input := `[Get] (v - green) → [Add] (a - green)
[Get] (v - green) → [Add] (b - green)
[X] (x - white) → [Y] (y - white)
[X] (x - white) → [Y] (y - white)
[X] (x - white) → [Y] (y - white)
[Get] (v - green) → [Add] (a - green)`
	g := Parser{Identity: WindowedIdentity{Window: 3}}.Analyze(input).Graph

	count := map[string]int{}
	for _, n := range g.Nodes() {
		count[n.Title]++
	}
	if count["Get"] != 2 || count["Add"] != 2 {
		t.Errorf("instances = %v, want Get=2 Add=2", count)
	}
	if count["X"] != 1 || count["Y"] != 1 {
		t.Errorf("exec nodes = %v, want one main instance each", count)
	}
}

func TestDeclarationsAndSkips(t *testing.T) {
	input := `// comment
[Lonely]

[Source] (Value - yellow)
garbage here
[A] (x - white) → [B] (y - red)`
	res := Analyze(input)
	g := res.Graph

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	src := g.Nodes()[1]
	if len(src.Outputs) != 1 || src.Outputs[0].Type != graph.Float {
		t.Errorf("Source outputs = %v", src.Outputs)
	}
	if res.Skipped() != 2 {
		t.Fatalf("Skipped() = %d, want 2: %v", res.Skipped(), res.Diagnostics)
	}
	if res.Diagnostics[0].Line != 5 {
		t.Errorf("first diagnostic line = %d, want 5", res.Diagnostics[0].Line)
	}
	if len(g.Connections()) != 0 {
		t.Error("incompatible connection stored")
	}
}

func TestGenerate(t *testing.T) {
	input := "[Lonely]\n[X] (p - white) → [Y] (q - white)\n[Y] (v - green) -> [Z] (w - Purple)"
	got := Generate(Parse(input))
	want := "[Lonely]\n[X] (p - white) → [Y] (q - white)\n[Y] (v - green) → [Z] (w - gray)"
	if got != want {
		t.Errorf("Generate() =\n%s\nwant\n%s", got, want)
	}

	again := Parse(got)
	if again.NodeCount() != 4 || len(again.Connections()) != 2 {
		t.Errorf("reparse = %d nodes %d connections", again.NodeCount(), len(again.Connections()))
	}
}
