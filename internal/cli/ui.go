package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/USQVE/bleprint/pkg/parse"
)

// statusOut receives human-facing status lines. Command results go to the
// command's stdout, so status never mixes into piped output.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// mark is the leading glyph of a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarn = mark{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	markInfo = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func status(m mark, text string) {
	fmt.Fprintln(statusOut, m.style.Render(m.glyph)+" "+text)
}

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) { status(markOK, fmt.Sprintf(format, args...)) }

func printError(format string, args ...any) { status(markFail, fmt.Sprintf(format, args...)) }

func printInfo(format string, args ...any) { status(markInfo, fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status(markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printGraphSummary prints "3 nodes · 2 connections · cached" under a
// success line. Zero counts are left out.
func printGraphSummary(nodes, connections int, cached bool) {
	var parts []string
	if nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", nodes))
	}
	if connections > 0 {
		parts = append(parts, fmt.Sprintf("%d connections", connections))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGreen).Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printDiagnostics lists skipped lines, at most limit of them.
func printDiagnostics(diags []parse.Diagnostic, limit int) {
	if len(diags) == 0 {
		return
	}
	printWarning("%d line(s) skipped", len(diags))
	for i, d := range diags {
		if i == limit {
			printDetail("... and %d more", len(diags)-limit)
			return
		}
		printDetail("line %d: %s", d.Line, d.Reason)
	}
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
