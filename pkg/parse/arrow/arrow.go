// Package arrow reads and writes the arrow notation:
//
//	BeginPlay[out:Exec] -> Branch[in:Exec,Bool|out:Exec,Exec]
//	Branch -> PrintString
//
// Every identifier becomes exactly one node. A bracket spec lists the
// node's input and output pin types; pins are named in_<i> and out_<i>. The
// first spec seen for an identifier wins. Identifiers that never carry a
// spec get one Exec pin in each direction. Each arrow connects the first
// output of its source to the first input of its target.
//
// Arrow chains are found anywhere in a line, so trailing text such as
// "A -> B // note" is ignored. Identifiers may hold several words
// ("Print String"). A line is reported only when it yields no chain and
// is not a bare declaration.
package arrow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse"
)

// Spacing is the horizontal distance between consecutive nodes.
const Spacing = 250

// An identifier is one or more words; words inside it are separated by
// spaces or tabs only.
const identPattern = `[\p{L}\p{N}_]+(?:[ \t]+[\p{L}\p{N}_]+)*`

var (
	segmentRe = regexp.MustCompile(`^\s*(` + identPattern + `)\s*(?:\[([^\]]*)\])?\s*$`)
	endpoint  = identPattern + `\s*(?:\[[^\]]*\])?`
	chainRe   = regexp.MustCompile(endpoint + `(?:\s*->\s*` + endpoint + `)+`)
)

// Codec implements [parse.Codec] for the arrow notation.
type Codec struct{}

func (Codec) Format() parse.Format { return parse.FormatArrow }

func (Codec) Analyze(text string) *parse.Result { return Analyze(text) }

func (Codec) Generate(g *graph.Graph) string { return Generate(g) }

// Parse returns the graph described by text, dropping diagnostics.
func Parse(text string) *graph.Graph { return Analyze(text).Graph }

type definition struct {
	name    string
	hasSpec bool
	inputs  []graph.PinType
	outputs []graph.PinType
}

type pair struct {
	line     int
	text     string
	from, to string
}

// Analyze parses text and reports every line it could not use.
func Analyze(text string) *parse.Result {
	res := parse.NewResult(parse.FormatArrow)

	defs := map[string]*definition{}
	var order []string
	var pairs []pair

	declare := func(name, spec string, hasBracket bool) {
		d, ok := defs[name]
		if !ok {
			d = &definition{name: name}
			defs[name] = d
			order = append(order, name)
		}
		if hasBracket && !d.hasSpec {
			if in, out, ok := parseSpec(spec); ok {
				d.hasSpec, d.inputs, d.outputs = true, in, out
			}
		}
	}

	for i, raw := range parse.Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		chains := chainRe.FindAllString(line, -1)
		if len(chains) == 0 {
			if m := segmentRe.FindStringSubmatch(line); m != nil && !strings.Contains(line, "->") {
				declare(m[1], m[2], strings.Contains(line, "["))
			} else {
				res.Skip(i+1, raw, "no arrow pair or node declaration")
			}
			continue
		}
		for _, chain := range chains {
			var names []string
			for _, seg := range strings.Split(chain, "->") {
				m := segmentRe.FindStringSubmatch(seg)
				names = append(names, m[1])
				declare(m[1], m[2], strings.Contains(seg, "["))
			}
			for j := 0; j+1 < len(names); j++ {
				pairs = append(pairs, pair{line: i + 1, text: raw, from: names[j], to: names[j+1]})
			}
		}
	}

	nodes := make(map[string]*graph.Node, len(order))
	for i, name := range order {
		d := defs[name]
		n := graph.NewNode(name, graph.CategoryArrow)
		n.SetPosition(float64(i*Spacing), 0)
		if !d.hasSpec {
			n.AddInput("in_0", graph.Exec)
			n.AddOutput("out_0", graph.Exec)
		}
		for j, t := range d.inputs {
			n.AddInput(fmt.Sprintf("in_%d", j), t)
		}
		for j, t := range d.outputs {
			n.AddOutput(fmt.Sprintf("out_%d", j), t)
		}
		res.Graph.AddNode(n)
		nodes[name] = n
	}

	for _, p := range pairs {
		from, to := nodes[p.from], nodes[p.to]
		if len(from.Outputs) == 0 {
			res.Skip(p.line, p.text, fmt.Sprintf("%s has no output pin", p.from))
			continue
		}
		if len(to.Inputs) == 0 {
			res.Skip(p.line, p.text, fmt.Sprintf("%s has no input pin", p.to))
			continue
		}
		if _, err := res.Graph.Connect(from.ID, from.Outputs[0].ID, to.ID, to.Inputs[0].ID); err != nil {
			res.Skip(p.line, p.text, fmt.Sprintf("%s -> %s: %v", p.from, p.to, err))
		}
	}
	return res
}

// parseSpec reads "in:T1,T2|out:T3". Brackets without an in: or out: part
// are labels and carry no pins.
func parseSpec(spec string) (inputs, outputs []graph.PinType, ok bool) {
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "in:"):
			inputs, ok = append(inputs, types(part[len("in:"):])...), true
		case strings.HasPrefix(part, "out:"):
			outputs, ok = append(outputs, types(part[len("out:"):])...), true
		}
	}
	return inputs, outputs, ok
}

func types(list string) []graph.PinType {
	var out []graph.PinType
	for _, kw := range strings.Split(list, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, graph.ParsePinType(kw))
		}
	}
	return out
}

// Generate writes one declaration line per node followed by one
// "Source -> Target" line per connection. Pin pairings and duplicate titles
// do not survive the trip.
func Generate(g *graph.Graph) string {
	var lines []string
	for _, n := range g.Nodes() {
		line := n.Title
		var parts []string
		if len(n.Inputs) > 0 {
			parts = append(parts, "in:"+joinTypes(n.Inputs))
		}
		if len(n.Outputs) > 0 {
			parts = append(parts, "out:"+joinTypes(n.Outputs))
		}
		if len(parts) > 0 {
			line += "[" + strings.Join(parts, "|") + "]"
		}
		lines = append(lines, line)
	}
	for _, c := range g.Connections() {
		from, to := g.Node(c.FromNodeID), g.Node(c.ToNodeID)
		if from != nil && to != nil {
			lines = append(lines, from.Title+" -> "+to.Title)
		}
	}
	return strings.Join(lines, "\n")
}

func joinTypes(pins []*graph.Pin) string {
	names := make([]string, len(pins))
	for i, p := range pins {
		names[i] = string(p.Type)
	}
	return strings.Join(names, ",")
}
