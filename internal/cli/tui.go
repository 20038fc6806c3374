package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse/universal"
)

// List styles
var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	detailTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing the nodes of a graph.
// The table shows one row per node; the panel below it lists the pins and
// connections of the node under the cursor.
type NodeListModel struct {
	Graph  *graph.Graph
	Nodes  []*graph.Node
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a browser over g in insertion order.
func NewNodeListModel(g *graph.Graph) NodeListModel {
	return NodeListModel{
		Graph:  g,
		Nodes:  g.Nodes(),
		Height: 10,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Nodes); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		// Table chrome plus the detail panel take about half the screen.
		m.Height = max(msg.Height/2-4, 3)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		links := len(m.Graph.ConnectionsForNode(n.ID))
		rows = append(rows, []string{
			cursor, n.Title, n.Category,
			fmt.Sprint(len(n.Inputs)), fmt.Sprint(len(n.Outputs)), fmt.Sprint(links),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Title", "Category", "In", "Out", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col >= 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))
	b.WriteString("\n\n")
	b.WriteString(m.detail(m.Nodes[m.Cursor]))

	return b.String()
}

// detail renders the pins, connections and metadata of n.
func (m NodeListModel) detail(n *graph.Node) string {
	var b strings.Builder

	title := detailTitleStyle
	switch universal.HeaderColor(n.Title) {
	case "red":
		title = title.Foreground(colorRed)
	case "blue":
		title = title.Foreground(colorBlue)
	}
	b.WriteString(title.Render(n.Title))
	b.WriteString(listDimStyle.Render("  " + n.Category))
	b.WriteString("\n")

	writePins := func(label string, pins []*graph.Pin) {
		for _, p := range pins {
			mark := "○"
			if p.Connected {
				mark = "●"
			}
			pin := lipgloss.NewStyle().Foreground(lipgloss.Color(universal.KindColors[universal.Kind(p.Type)]))
			fmt.Fprintf(&b, "  %s %s %s %s\n", listDimStyle.Render(label), pin.Render(mark), p.Name, listDimStyle.Render(string(p.Type)))
		}
	}
	writePins("in ", n.Inputs)
	writePins("out", n.Outputs)

	for _, c := range m.Graph.ConnectionsForNode(n.ID) {
		from, to := m.Graph.Node(c.FromNodeID), m.Graph.Node(c.ToNodeID)
		if from == nil || to == nil {
			continue
		}
		fp, tp := from.Pin(c.FromPinID), to.Pin(c.ToPinID)
		if fp == nil || tp == nil {
			continue
		}
		fmt.Fprintf(&b, "  %s %s.%s %s %s.%s\n", listDimStyle.Render("link"),
			from.Title, fp.Name, StyleDim.Render("→"), to.Title, tp.Name)
	}

	if len(n.Meta) > 0 {
		keys := make([]string, 0, len(n.Meta))
		for k := range n.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s %s=%s\n", listDimStyle.Render("meta"), k, n.Meta[k])
		}
	}
	return b.String()
}
