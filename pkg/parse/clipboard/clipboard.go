// Package clipboard imports node graphs copied out of the Unreal editor.
//
// The editor serializes each selected node as a "Begin Object ... End
// Object" block with its position, class, and one "CustomProperties Pin
// (...)" line per pin. Output pins list their links in LinkedTo=(...). The
// importer is best effort: titles come from a handful of well-known
// properties and unrecognized pin categories become Wildcard.
package clipboard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/parse/arrow"
)

// Marker is the text that identifies a clipboard dump.
const Marker = "Begin Object"

var (
	nameRe      = regexp.MustCompile(`Begin Object[^\n]*?\bName="([^"]*)"`)
	posXRe      = regexp.MustCompile(`NodePosX=(-?\d+)`)
	posYRe      = regexp.MustCompile(`NodePosY=(-?\d+)`)
	classRe     = regexp.MustCompile(`Class=\S*?\.(\w+)`)
	exprRe      = regexp.MustCompile(`MaterialExpression=\S*?MaterialExpression(\w+)`)
	paramRe     = regexp.MustCompile(`ParameterName="([^"]*)"`)
	eventRe     = regexp.MustCompile(`EventReference=\([^)]*?MemberName="([^"]*)"`)
	customRe    = regexp.MustCompile(`CustomFunctionName="([^"]*)"`)
	timelineRe  = regexp.MustCompile(`TimelineName="([^"]*)"`)
	macroRe     = regexp.MustCompile(`MacroGraph=[^:,)]*:(\w+)`)
	functionRe  = regexp.MustCompile(`FunctionReference=\([^)]*?MemberName="([^"]*)"`)
	pinIDRe     = regexp.MustCompile(`PinId=([0-9A-Fa-f-]+)`)
	pinNameRe   = regexp.MustCompile(`PinName="([^"]*)"`)
	directionRe = regexp.MustCompile(`Direction="([^"]*)"`)
	categoryRe  = regexp.MustCompile(`PinType\.PinCategory="([^"]*)"`)
	subObjRe    = regexp.MustCompile(`PinType\.PinSubCategoryObject=(\S+?)[,)]`)
	linkedRe    = regexp.MustCompile(`LinkedTo=\(([^)]*)\)`)
)

// Codec implements [parse.Codec]. Clipboard dumps are import only, so
// Generate writes the arrow notation.
type Codec struct{}

func (Codec) Format() parse.Format { return parse.FormatClipboard }

func (Codec) Analyze(text string) *parse.Result { return Analyze(text) }

func (Codec) Generate(g *graph.Graph) string { return arrow.Generate(g) }

// Parse returns the imported graph, dropping diagnostics.
func Parse(text string) *graph.Graph { return Analyze(text).Graph }

type block struct {
	line int // 1-based line of Begin Object
	body string
}

type link struct {
	line             int
	fromNode, fromID string
	toNode, toID     string
}

// PinType maps an editor pin category to a pin type.
func PinType(category, subCategoryObject string) graph.PinType {
	switch strings.ToLower(category) {
	case "exec":
		return graph.Exec
	case "bool":
		return graph.Boolean
	case "int", "int64", "byte":
		return graph.Integer
	case "real", "float", "double":
		return graph.Float
	case "string", "name", "text":
		return graph.String
	case "object", "class", "interface", "softobject", "softclass":
		return graph.Object
	case "struct":
		obj := strings.ToLower(subCategoryObject)
		if strings.Contains(obj, "vector") || strings.Contains(obj, "rotator") || strings.Contains(obj, "transform") {
			return graph.Vector
		}
	}
	return graph.Wildcard
}

func split(text string, res *parse.Result) []block {
	var blocks []block
	var cur strings.Builder
	depth, start := 0, 0
	for i, line := range parse.Lines(text) {
		switch {
		case strings.Contains(line, "Begin Object"):
			if depth == 0 {
				cur.Reset()
				start = i + 1
			}
			depth++
			cur.WriteString(line + "\n")
		case strings.Contains(line, "End Object"):
			if depth == 0 {
				res.Skip(i+1, line, "End Object without Begin Object")
				continue
			}
			depth--
			cur.WriteString(line + "\n")
			if depth == 0 {
				blocks = append(blocks, block{line: start, body: cur.String()})
			}
		case depth > 0:
			cur.WriteString(line + "\n")
		case strings.TrimSpace(line) != "":
			res.Skip(i+1, line, "text outside an object block")
		}
	}
	if depth > 0 {
		res.Skip(start, "Begin Object", "unterminated object block")
	}
	return blocks
}

// Analyze imports every complete object block in text.
func Analyze(text string) *parse.Result {
	res := parse.NewResult(parse.FormatClipboard)
	nodes := map[string]*graph.Node{}
	pins := map[string]*graph.Pin{} // node name + "/" + pin id
	var links []link

	for idx, b := range split(text, res) {
		name := fmt.Sprintf("Node_%d", idx)
		if m := nameRe.FindStringSubmatch(b.body); m != nil {
			name = m[1]
		}
		n := graph.NewNode(title(name, b.body), graph.CategoryClipboard)
		n.Meta = map[string]string{"name": name}
		if m := classRe.FindStringSubmatch(b.body); m != nil {
			n.Meta["class"] = m[1]
		}
		n.SetPosition(coord(posXRe, b.body), coord(posYRe, b.body))

		for _, props := range pinProps(b.body) {
			id := "pin"
			if m := pinIDRe.FindStringSubmatch(props); m != nil {
				id = m[1]
			}
			pinName := id
			if m := pinNameRe.FindStringSubmatch(props); m != nil {
				pinName = m[1]
			}
			var category, subObj string
			if m := categoryRe.FindStringSubmatch(props); m != nil {
				category = m[1]
			}
			if m := subObjRe.FindStringSubmatch(props); m != nil {
				subObj = m[1]
			}
			t := PinType(category, subObj)

			output := false
			if m := directionRe.FindStringSubmatch(props); m != nil {
				output = m[1] == "EGPD_Output"
			}
			var p *graph.Pin
			if output {
				p = n.AddOutput(pinName, t)
			} else {
				p = n.AddInput(pinName, t)
			}
			pins[name+"/"+id] = p

			if m := linkedRe.FindStringSubmatch(props); m != nil && output {
				for _, target := range strings.Split(m[1], ",") {
					fields := strings.Fields(target)
					if len(fields) < 2 {
						continue
					}
					links = append(links, link{
						line: b.line, fromNode: name, fromID: id,
						toNode: fields[0], toID: strings.Trim(fields[1], `"`),
					})
				}
			}
		}
		res.Graph.AddNode(n)
		nodes[name] = n
	}

	for _, l := range links {
		from, to := nodes[l.fromNode], nodes[l.toNode]
		fp, tp := pins[l.fromNode+"/"+l.fromID], pins[l.toNode+"/"+l.toID]
		desc := fmt.Sprintf("%s.%s -> %s.%s", l.fromNode, l.fromID, l.toNode, l.toID)
		if from == nil || to == nil || fp == nil || tp == nil {
			res.Skip(l.line, desc, "link target not in clipboard")
			continue
		}
		if tp.Direction != graph.Input {
			res.Skip(l.line, desc, "link target is not an input pin")
			continue
		}
		if _, err := res.Graph.Connect(from.ID, fp.ID, to.ID, tp.ID); err != nil {
			res.Skip(l.line, desc, err.Error())
		}
	}
	return res
}

// pinProps returns the parenthesized body of every pin line.
func pinProps(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		i := strings.Index(line, "CustomProperties Pin (")
		if i < 0 {
			continue
		}
		rest := line[i+len("CustomProperties Pin ("):]
		if j := strings.LastIndex(rest, ")"); j >= 0 {
			rest = rest[:j]
		}
		out = append(out, rest)
	}
	return out
}

func coord(re *regexp.Regexp, body string) float64 {
	if m := re.FindStringSubmatch(body); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return float64(v)
		}
	}
	return 0
}

func title(name, body string) string {
	if strings.HasPrefix(name, "MaterialGraphNode") {
		m := exprRe.FindStringSubmatch(body)
		if m == nil {
			return name
		}
		if p := paramRe.FindStringSubmatch(body); p != nil {
			return fmt.Sprintf("%s (%s)", m[1], p[1])
		}
		return m[1]
	}
	if m := customRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := eventRe.FindStringSubmatch(body); m != nil {
		return "Event " + splitCamel(strings.TrimPrefix(m[1], "Receive"))
	}
	if strings.Contains(body, "TimelineName") {
		if m := timelineRe.FindStringSubmatch(body); m != nil {
			return "Timeline (" + m[1] + ")"
		}
		return "Timeline"
	}
	if strings.Contains(body, "MacroGraphReference") {
		if m := macroRe.FindStringSubmatch(body); m != nil {
			return m[1]
		}
		return "Macro"
	}
	if m := functionRe.FindStringSubmatch(body); m != nil {
		return splitCamel(strings.TrimPrefix(m[1], "K2_"))
	}
	if m := classRe.FindStringSubmatch(body); m != nil {
		return strings.TrimPrefix(m[1], "K2Node_")
	}
	return name
}

// splitCamel inserts spaces at lower-to-upper case boundaries.
func splitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
