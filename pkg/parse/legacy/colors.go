package legacy

import (
	"strings"

	"github.com/USQVE/bleprint/pkg/graph"
)

// ColorRule maps a color word containing Stem to a pin type.
type ColorRule struct {
	Stem string
	Type graph.PinType
}

// ColorRules is evaluated in order; the first rule whose stem occurs in the
// lowercased color word wins. Russian stems precede English ones.
var ColorRules = []ColorRule{
	{"белый", graph.Exec},
	{"зелен", graph.Integer},
	{"зелён", graph.Integer},
	{"желт", graph.Float},
	{"жёлт", graph.Float},
	{"красн", graph.Boolean},
	{"синий", graph.Vector},
	{"white", graph.Exec},
	{"green", graph.Integer},
	{"yellow", graph.Float},
	{"red", graph.Boolean},
	{"blue", graph.Vector},
}

// ColorType resolves a color word. Words matching no rule are Wildcard.
func ColorType(word string) graph.PinType {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, r := range ColorRules {
		if strings.Contains(w, r.Stem) {
			return r.Type
		}
	}
	return graph.Wildcard
}

// ColorWord is the English word Generate writes for a pin type. Types with
// no color family come out as "gray", which reads back as Wildcard.
func ColorWord(t graph.PinType) string {
	switch t {
	case graph.Exec:
		return "white"
	case graph.Integer:
		return "green"
	case graph.Float:
		return "yellow"
	case graph.Boolean:
		return "red"
	case graph.Vector:
		return "blue"
	default:
		return "gray"
	}
}
