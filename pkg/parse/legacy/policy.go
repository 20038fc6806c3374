package legacy

import (
	"fmt"
	"strings"

	"github.com/USQVE/bleprint/pkg/graph"
)

// Resolver maps a bracketed node reference to a node key and display title.
// line counts meaningful lines (blank and comment lines excluded) from 0 and
// t is the resolved type of the pin mentioned alongside the reference.
type Resolver func(raw string, t graph.PinType, line int) (key, title string)

// IdentityPolicy decides when two bracketed references denote the same node.
// NewResolver is called once per parse so resolvers may keep state.
type IdentityPolicy interface {
	NewResolver() Resolver
}

// LiteralIdentity treats every distinct trimmed name as one node.
type LiteralIdentity struct{}

func (LiteralIdentity) NewResolver() Resolver {
	return func(raw string, _ graph.PinType, _ int) (string, string) {
		name := strings.TrimSpace(raw)
		return name, name
	}
}

// DefaultWindow is the look-back used by WindowedIdentity when Window is 0.
const DefaultWindow = 3

// WindowedIdentity reproduces the heuristics of editor exports where one
// title may denote several nodes:
//
//   - "Title#id" names an explicit instance
//   - a reference through an Exec pin is the single "Title#main" instance
//   - otherwise the last instance of Title is reused if it was mentioned
//     within Window lines, else a new numbered instance is minted
type WindowedIdentity struct {
	Window int
}

func (w WindowedIdentity) NewResolver() Resolver {
	window := w.Window
	if window <= 0 {
		window = DefaultWindow
	}
	type use struct {
		key  string
		line int
	}
	last := map[string]use{}
	counters := map[string]int{}

	return func(raw string, t graph.PinType, line int) (string, string) {
		title, explicit, hasID := strings.Cut(raw, "#")
		title = strings.TrimSpace(title)
		explicit = strings.TrimSpace(explicit)

		var key string
		switch {
		case hasID && explicit != "":
			key = title + "#" + explicit
		case t == graph.Exec:
			key = title + "#main"
		default:
			if u, ok := last[title]; ok && line-u.line <= window {
				key = u.key
			} else {
				counters[title]++
				key = fmt.Sprintf("%s#%d", title, counters[title])
			}
		}
		last[title] = use{key: key, line: line}
		return key, title
	}
}

// PinPolicy decides which references on one node share a pin. PinKey
// returns the bucket a reference falls into; references with equal keys in
// the same direction share a pin.
type PinPolicy interface {
	PinKey(name string, t graph.PinType) string
}

// ReuseByType keeps at most one input and one output pin per resolved type.
// The pin is named after the first reference that created it.
type ReuseByType struct{}

func (ReuseByType) PinKey(_ string, t graph.PinType) string { return string(t) }

// ReuseByName keeps one pin per distinct pin name.
type ReuseByName struct{}

func (ReuseByName) PinKey(name string, _ graph.PinType) string { return name }
