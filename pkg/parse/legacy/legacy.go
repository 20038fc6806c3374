// Package legacy reads and writes the colored arrow notation exported by
// older tooling:
//
//	[Event BeginPlay] (Exec - Белый) → [Branch] (Exec - Белый)
//	[Is Valid] (Return - red) -> [Branch] (Condition - red)
//	[Print String]
//
// The pin type is inferred from the color word (see [ColorRules]). Which
// references denote the same node is decided by an [IdentityPolicy] and which
// references share a pin by a [PinPolicy].
package legacy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse"
)

// Layout constants for encounter-order placement.
const (
	OriginX = 100
	OriginY = 100
	Spacing = 300
)

var (
	connRe = regexp.MustCompile(`\[([^\]]+)\]\s*\(([^)]+?)\s*-\s*([^)]+?)\)\s*(?:→|->)\s*\[([^\]]+)\]\s*\(([^)]+?)\s*-\s*([^)]+?)\)`)
	declRe = regexp.MustCompile(`^\[([^\]]+)\](?:\s*\(([^)]+?)\s*-\s*([^)]+?)\))?$`)
)

// Parser holds the node identity and pin reuse policies. The zero value uses
// LiteralIdentity and ReuseByType.
type Parser struct {
	Identity IdentityPolicy
	Pins     PinPolicy
}

// Codec implements [parse.Codec] using the embedded Parser.
type Codec struct {
	Parser
}

func (Codec) Format() parse.Format { return parse.FormatLegacy }

func (c Codec) Analyze(text string) *parse.Result { return c.Parser.Analyze(text) }

func (Codec) Generate(g *graph.Graph) string { return Generate(g) }

// Parse parses text with the default policies.
func Parse(text string) *graph.Graph { return Parser{}.Analyze(text).Graph }

// Analyze parses text with the default policies and keeps diagnostics.
func Analyze(text string) *parse.Result { return Parser{}.Analyze(text) }

type entry struct {
	node *graph.Node
	pins map[string]*graph.Pin // direction + PinKey
}

type builder struct {
	res     *parse.Result
	resolve Resolver
	pins    PinPolicy
	entries map[string]*entry
}

func (b *builder) node(raw string, t graph.PinType, line int) *entry {
	key, title := b.resolve(raw, t, line)
	if e, ok := b.entries[key]; ok {
		return e
	}
	n := graph.NewNode(title, graph.CategoryLegacy)
	n.SetPosition(float64(OriginX+Spacing*len(b.entries)), OriginY)
	b.res.Graph.AddNode(n)
	e := &entry{node: n, pins: map[string]*graph.Pin{}}
	b.entries[key] = e
	return e
}

func (b *builder) pin(e *entry, dir graph.Direction, name string, t graph.PinType) *graph.Pin {
	key := string(dir) + "/" + b.pins.PinKey(name, t)
	if p, ok := e.pins[key]; ok {
		return p
	}
	var p *graph.Pin
	if dir == graph.Input {
		p = e.node.AddInput(name, t)
	} else {
		p = e.node.AddOutput(name, t)
	}
	e.pins[key] = p
	return p
}

// Analyze parses text in a single pass. Blank lines and // comments are
// ignored; any other line that is neither a connection nor a declaration is
// recorded as a diagnostic.
func (p Parser) Analyze(text string) *parse.Result {
	identity, pins := p.Identity, p.Pins
	if identity == nil {
		identity = LiteralIdentity{}
	}
	if pins == nil {
		pins = ReuseByType{}
	}
	b := &builder{
		res:     parse.NewResult(parse.FormatLegacy),
		resolve: identity.NewResolver(),
		pins:    pins,
		entries: map[string]*entry{},
	}

	idx := 0
	for i, raw := range parse.Lines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if m := connRe.FindStringSubmatch(line); m != nil {
			b.connect(i+1, raw, idx, m)
		} else if d := declRe.FindStringSubmatch(line); d != nil {
			b.declare(idx, d)
		} else {
			b.res.Skip(i+1, raw, "not a colored connection or node declaration")
		}
		idx++
	}
	return b.res
}

func (b *builder) connect(lineNo int, raw string, idx int, m []string) {
	srcPin, srcType := strings.TrimSpace(m[2]), ColorType(m[3])
	dstPin, dstType := strings.TrimSpace(m[5]), ColorType(m[6])

	src := b.node(m[1], srcType, idx)
	dst := b.node(m[4], dstType, idx)
	from := b.pin(src, graph.Output, srcPin, srcType)
	to := b.pin(dst, graph.Input, dstPin, dstType)

	if _, err := b.res.Graph.Connect(src.node.ID, from.ID, dst.node.ID, to.ID); err != nil {
		b.res.Skip(lineNo, raw, err.Error())
	}
}

func (b *builder) declare(idx int, d []string) {
	if d[2] == "" {
		b.node(d[1], graph.Wildcard, idx)
		return
	}
	t := ColorType(d[3])
	e := b.node(d[1], t, idx)
	b.pin(e, graph.Output, strings.TrimSpace(d[2]), t)
}

// Generate writes a declaration for every node without connections, then one
// colored line per connection. Pin types without a color family are written
// as gray and read back as Wildcard.
func Generate(g *graph.Graph) string {
	var lines []string
	for _, n := range g.Nodes() {
		if len(g.ConnectionsForNode(n.ID)) == 0 {
			lines = append(lines, "["+n.Title+"]")
		}
	}
	for _, c := range g.Connections() {
		fromNode, toNode := g.Node(c.FromNodeID), g.Node(c.ToNodeID)
		from, to, err := g.Endpoints(c)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] (%s - %s) → [%s] (%s - %s)",
			fromNode.Title, from.Name, ColorWord(from.Type),
			toNode.Title, to.Name, ColorWord(to.Type)))
	}
	return strings.Join(lines, "\n")
}
