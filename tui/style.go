package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleCanvas = lipgloss.NewStyle().
			Background(lipgloss.Color("#505266"))

	styleHotspot = lipgloss.NewStyle().
			Background(lipgloss.Color("#646982")).
			Foreground(lipgloss.Color("250"))

	styleHotspotLabel = lipgloss.NewStyle().
				Background(lipgloss.Color("#646982")).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	styleHover = lipgloss.NewStyle().
			Background(lipgloss.Color("#646982")).
			Foreground(lipgloss.Color("#A9B1D9")).
			Bold(true)

	styleFeedback = lipgloss.NewStyle().
			Background(lipgloss.Color("#505266")).
			Bold(true)

	styleSlot = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("250"))

	styleSlotSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("#A9B1D9")).
				Foreground(lipgloss.Color("234")).
				Bold(true)

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleNarrativeOld = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	stylePuzzleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A9B1D9")).
			Padding(0, 2)

	stylePuzzleTitle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("228")).
				Bold(true)

	styleKeypadDisplay = lipgloss.NewStyle().
				Background(lipgloss.Color("22")).
				Foreground(lipgloss.Color("46")).
				Padding(0, 1)

	styleKey = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// paintKind identifies what occupies a canvas cell, for styling.
type paintKind int

const (
	paintEmpty paintKind = iota
	paintHotspot
	paintLabel
	paintHover
	paintFeedback
)

// paint is a cell's style key. It is comparable so runs of equal cells can
// be rendered together.
type paint struct {
	kind  paintKind
	alpha int // feedback opacity, 0-255
}

func (p paint) style() lipgloss.Style {
	switch p.kind {
	case paintHotspot:
		return styleHotspot
	case paintLabel:
		return styleHotspotLabel
	case paintHover:
		return styleHover
	case paintFeedback:
		return styleFeedback.Foreground(fadeColor(p.alpha))
	default:
		return styleCanvas
	}
}

// fadeColor maps an opacity onto the 256-colour grey ramp (232-255).
func fadeColor(alpha int) lipgloss.Color {
	alpha = min(max(alpha, 0), 255)
	return lipgloss.Color(strconv.Itoa(232 + alpha*23/255))
}
