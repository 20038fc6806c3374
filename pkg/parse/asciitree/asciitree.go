// Package asciitree reads and writes box-drawing trees:
//
//	Event BeginPlay
//	├── Branch
//	│   ├── Print String (True→execute)
//	│   └── Delay (False→execute, then→execute)
//	└── Set Timer
//
// A line's depth is the rune length of its guide prefix divided by four,
// plus one; unguided lines are depth 0. The nearest shallower line above is
// the parent. Every node has an Exec input "execute" and an Exec output
// "then"; a trailing "(Out→In, ...)" label wires named pins instead of the
// default then→execute.
package asciitree

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse"
)

// Default pin names.
const (
	InputPin  = "execute"
	OutputPin = "then"
)

// Layout constants.
const (
	ColumnWidth = 200
	RowHeight   = 120
)

var (
	guideRe = regexp.MustCompile(`^([\s│]*)[├└]──\s*(.*?)$`)
	titleRe = regexp.MustCompile(`^(.*?)(?:\s*\((.*?)\))?$`)
	arrowRe = regexp.MustCompile(`→|->`)
)

// Codec implements [parse.Codec] for ASCII trees.
type Codec struct{}

func (Codec) Format() parse.Format { return parse.FormatTree }

func (Codec) Analyze(text string) *parse.Result { return Analyze(text) }

func (Codec) Generate(g *graph.Graph) string { return Generate(g) }

// Parse returns the graph described by text, dropping diagnostics.
func Parse(text string) *graph.Graph { return Analyze(text).Graph }

type frame struct {
	node  *graph.Node
	depth int
}

// Mapping is one Out→In pin pairing from a label.
type Mapping struct {
	Out, In string
}

// ParseLabel splits "a→b, c->d" into mappings. An empty label yields the
// default then→execute mapping.
func ParseLabel(label string) []Mapping {
	var out []Mapping
	for _, part := range strings.Split(label, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pieces := arrowRe.Split(part, 2)
		m := Mapping{Out: "out", In: "in"}
		if s := strings.TrimSpace(pieces[0]); s != "" {
			m.Out = s
		}
		if len(pieces) > 1 {
			if s := strings.TrimSpace(pieces[1]); s != "" {
				m.In = s
			}
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		out = append(out, Mapping{Out: OutputPin, In: InputPin})
	}
	return out
}

// Analyze parses text and records lines that carry no title.
func Analyze(text string) *parse.Result {
	res := parse.NewResult(parse.FormatTree)
	var stack []frame

	for i, raw := range parse.Lines(text) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		depth, content := 0, strings.TrimSpace(raw)
		if m := guideRe.FindStringSubmatch(raw); m != nil {
			depth = utf8.RuneCountInString(m[1])/4 + 1
			content = strings.TrimSpace(m[2])
		}
		tm := titleRe.FindStringSubmatch(content)
		title, label := strings.TrimSpace(tm[1]), tm[2]
		if title == "" {
			res.Skip(i+1, raw, "missing node title")
			continue
		}

		n := graph.NewNode(title, graph.CategoryTree)
		n.SetPosition(float64(depth*ColumnWidth), float64(res.Graph.NodeCount()*RowHeight))
		n.AddInput(InputPin, graph.Exec)
		n.AddOutput(OutputPin, graph.Exec)
		res.Graph.AddNode(n)

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1].node
			for _, m := range ParseLabel(label) {
				from := parent.OutputByName(m.Out)
				if from == nil {
					from = parent.AddOutput(m.Out, graph.Exec)
				}
				to := n.InputByName(m.In)
				if to == nil {
					to = n.AddInput(m.In, graph.Exec)
				}
				if _, err := res.Graph.Connect(parent.ID, from.ID, n.ID, to.ID); err != nil {
					res.Skip(i+1, raw, err.Error())
				}
			}
		}
		stack = append(stack, frame{node: n, depth: depth})
	}
	return res
}

type subtree struct {
	title    string
	label    string
	children []*subtree
}

// Generate rebuilds a forest from nodes without incoming connections. Each
// root is walked depth first with its own visited set, so a node reachable
// along several paths is written once per root. Children carry a label
// unless their only mapping is then→execute.
func Generate(g *graph.Graph) string {
	incoming := map[string]int{}
	for _, c := range g.Connections() {
		incoming[c.ToNodeID]++
	}

	var build func(id, label string, visited map[string]bool) *subtree
	build = func(id, label string, visited map[string]bool) *subtree {
		visited[id] = true
		t := &subtree{title: g.Node(id).Title, label: label}

		var targets []string
		labels := map[string][]string{}
		for _, c := range g.Connections() {
			if c.FromNodeID != id {
				continue
			}
			from, to, err := g.Endpoints(c)
			if err != nil {
				continue
			}
			if _, seen := labels[c.ToNodeID]; !seen {
				targets = append(targets, c.ToNodeID)
			}
			labels[c.ToNodeID] = append(labels[c.ToNodeID], from.Name+"→"+to.Name)
		}
		for _, target := range targets {
			if !visited[target] {
				t.children = append(t.children, build(target, childLabel(labels[target]), visited))
			}
		}
		return t
	}

	var lines []string
	var render func(t *subtree, prefix string, last bool)
	render = func(t *subtree, prefix string, last bool) {
		connector, ext := "├── ", "│   "
		if last {
			connector, ext = "└── ", "    "
		}
		line := prefix + connector + t.title
		if t.label != "" {
			line += " (" + t.label + ")"
		}
		lines = append(lines, line)
		for i, c := range t.children {
			render(c, prefix+ext, i == len(t.children)-1)
		}
	}

	var roots []*subtree
	for _, n := range g.Nodes() {
		if incoming[n.ID] == 0 {
			roots = append(roots, build(n.ID, "", map[string]bool{}))
		}
	}
	for i, r := range roots {
		render(r, "", i == len(roots)-1)
	}
	return strings.Join(lines, "\n")
}

func childLabel(labels []string) string {
	if len(labels) == 1 && labels[0] == OutputPin+"→"+InputPin {
		return ""
	}
	return strings.Join(labels, ", ")
}
