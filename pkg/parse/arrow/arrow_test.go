package arrow

import (
	"slices"
	"strings"
	"testing"

	"github.com/USQVE/bleprint/pkg/graph"
)

func titles(g *graph.Graph) []string {
	var out []string
	for _, n := range g.Nodes() {
		out = append(out, n.Title)
	}
	return out
}

func edges(g *graph.Graph) []string {
	var out []string
	for _, c := range g.Connections() {
		out = append(out, g.Node(c.FromNodeID).Title+">"+g.Node(c.ToNodeID).Title)
	}
	slices.Sort(out)
	return out
}

func TestParseSimpleChain(t *testing.T) {
	g := Parse("A -> B\nB -> C")

	if got := titles(g); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("titles = %v, want [A B C]", got)
	}
	if got := len(g.Connections()); got != 2 {
		t.Errorf("connections = %d, want 2", got)
	}
	for i, n := range g.Nodes() {
		if n.X != float64(i*Spacing) {
			t.Errorf("%s.X = %v, want %v", n.Title, n.X, i*Spacing)
		}
		if n.Category != graph.CategoryArrow {
			t.Errorf("%s.Category = %q", n.Title, n.Category)
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParseTypedPins(t *testing.T) {
	res := Analyze("Start[out:exec] -> Branch[in:EXEC,bool|out:Exec,Exec]\nBranch[in:float] -> End[in:exec]")
	g := res.Graph

	branch := g.Nodes()[1]
	if len(branch.Inputs) != 2 || len(branch.Outputs) != 2 {
		t.Fatalf("Branch pins = %d/%d, want 2/2", len(branch.Inputs), len(branch.Outputs))
	}
	if branch.Inputs[1].Type != graph.Boolean || branch.Inputs[1].Name != "in_1" {
		t.Errorf("Branch.in_1 = %+v", branch.Inputs[1])
	}
	start := g.Nodes()[0]
	if len(start.Inputs) != 0 {
		t.Errorf("Start inputs = %d, want 0", len(start.Inputs))
	}
	if got := len(g.Connections()); got != 2 {
		t.Errorf("connections = %d, want 2", got)
	}
	if res.Skipped() != 0 {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
}

func TestParseChainOnOneLine(t *testing.T) {
	g := Parse("A -> B -> C")
	if got := edges(g); !slices.Equal(got, []string{"A>B", "B>C"}) {
		t.Errorf("edges = %v", got)
	}
}

func TestParseSkips(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantConns int
		wantSkips int
	}{
		{"garbage line", "A -> B\n%% nonsense", 1, 1},
		{"dangling arrow", "A ->", 0, 1},
		{"comment and blank", "// header\n\nA -> B", 1, 0},
		{"no input pin", "A -> B[out:exec]", 0, 1},
		{"incompatible types", "A[out:int] -> B[in:bool]", 0, 1},
		{"wildcard accepts anything", "A[out:int] -> B[in:mystery]", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Analyze(tt.input)
			if got := len(res.Graph.Connections()); got != tt.wantConns {
				t.Errorf("connections = %d, want %d", got, tt.wantConns)
			}
			if res.Skipped() != tt.wantSkips {
				t.Errorf("Skipped() = %d, want %d (%v)", res.Skipped(), tt.wantSkips, res.Diagnostics)
			}
			if (res.Strict() != nil) != (tt.wantSkips > 0) {
				t.Errorf("Strict() = %v", res.Strict())
			}
		})
	}
}

func TestParseFindsPairsInsideLines(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes []string
		wantEdges []string
	}{
		{"trailing comment", "A -> B // first hop\nB -> C", []string{"A", "B", "C"}, []string{"A>B", "B>C"}},
		{"trailing semicolon", "A -> B;", []string{"A", "B"}, []string{"A>B"}},
		{"multi-word titles", "Start -> Print String", []string{"Start", "Print String"}, []string{"Start>Print String"}},
		{"leading text", "then: Begin -> End", []string{"Begin", "End"}, []string{"Begin>End"}},
		{"two chains", "A -> B, C -> D", []string{"A", "B", "C", "D"}, []string{"A>B", "C>D"}},
		{"typed multi-word", "Event Begin[out:exec] -> Print String[in:exec] (x)", []string{"Event Begin", "Print String"}, []string{"Event Begin>Print String"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Analyze(tt.input)
			if got := titles(res.Graph); !slices.Equal(got, tt.wantNodes) {
				t.Errorf("titles = %q, want %q", got, tt.wantNodes)
			}
			if got := edges(res.Graph); !slices.Equal(got, tt.wantEdges) {
				t.Errorf("edges = %q, want %q", got, tt.wantEdges)
			}
			if res.Skipped() != 0 {
				t.Errorf("diagnostics = %v", res.Diagnostics)
			}
		})
	}
}

func TestRoundTripMultiWordTitles(t *testing.T) {
	g := graph.New()
	begin := graph.NewNode("Event BeginPlay", graph.CategoryTree)
	then := begin.AddOutput("then", graph.Exec)
	printNode := graph.NewNode("Print String", graph.CategoryTree)
	in := printNode.AddInput("execute", graph.Exec)
	g.AddNode(begin)
	g.AddNode(printNode)
	if _, err := g.Connect(begin.ID, then.ID, printNode.ID, in.ID); err != nil {
		t.Fatal(err)
	}

	res := Analyze(Generate(g))
	if res.Skipped() != 0 {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}
	if got := edges(res.Graph); !slices.Equal(got, []string{"Event BeginPlay>Print String"}) {
		t.Errorf("edges = %q", got)
	}
}

func TestFirstSpecWins(t *testing.T) {
	g := Parse("A[out:int] -> B[in:int]\nA[out:bool,bool] -> C")
	a := g.Nodes()[0]
	if len(a.Outputs) != 1 || a.Outputs[0].Type != graph.Integer {
		t.Errorf("A outputs = %v", a.Outputs)
	}
}

func TestGenerate(t *testing.T) {
	g := Parse("Start[out:exec] -> Print[in:exec,string]\nLoose")
	got := Generate(g)
	want := strings.Join([]string{
		"Start[out:Exec]",
		"Print[in:Exec,String]",
		"Loose[in:Exec|out:Exec]",
		"Start -> Print",
	}, "\n")
	if got != want {
		t.Errorf("Generate() =\n%s\nwant\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"A -> B\nB -> C",
		"A -> B -> C\nA -> C",
		"X[in:int|out:float] -> Y[in:float|out:bool]\nY -> Z[in:bool]",
		"Solo",
	}
	for _, in := range inputs {
		first := Parse(in)
		second := Parse(Generate(first))
		if a, b := titles(first), titles(second); !slices.Equal(a, b) {
			t.Errorf("%q: titles %v != %v", in, a, b)
		}
		if a, b := edges(first), edges(second); !slices.Equal(a, b) {
			t.Errorf("%q: edges %v != %v", in, a, b)
		}
	}
}
