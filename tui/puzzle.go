package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/clickcore/engine/puzzle"
)

// puzzleInput translates a key press into input for a puzzle of the given
// kind. The keypad takes digits, enter and backspace; every other puzzle
// takes 1-9 to pick a cell, lever or dial.
func puzzleInput(kind string, msg tea.KeyMsg) (puzzle.Input, bool) {
	s := msg.String()
	if kind == puzzle.KindKeypad {
		switch s {
		case "enter":
			return puzzle.Input{Key: puzzle.KeyEnter}, true
		case "backspace", "delete", "c":
			return puzzle.Input{Key: puzzle.KeyClear}, true
		}
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			return puzzle.Input{Key: s}, true
		}
		return puzzle.Input{}, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 9 {
		return puzzle.Input{}, false
	}
	return puzzle.Input{Index: n - 1}, true
}

// renderPuzzle draws the puzzle overlay centred in a width x height area.
func renderPuzzle(v puzzle.View, prompt string, width, height int) string {
	var body string
	switch v.Kind {
	case puzzle.KindKeypad:
		body = renderKeypad(v)
	case puzzle.KindTile:
		body = renderTiles(v)
	default:
		cells := make([]string, len(v.Cells))
		for i, c := range v.Cells {
			cells[i] = styleKey.Render(fmt.Sprintf("%d:%s", i+1, c))
		}
		body = strings.Join(cells, " ")
	}

	wrap := max(min(width-8, 50), 10)
	box := stylePuzzleBox.Render(lipgloss.JoinVertical(lipgloss.Center,
		stylePuzzleTitle.Render(v.Kind),
		"",
		body,
		"",
		wordwrap.String(prompt, wrap),
		styleHelp.Render(puzzleHelp(v.Kind)),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderKeypad(v puzzle.View) string {
	rows := []string{styleKeypadDisplay.Width(14).Render(v.Display)}
	for i := 0; i+3 <= len(v.Cells); i += 3 {
		keys := make([]string, 3)
		for j, k := range v.Cells[i : i+3] {
			keys[j] = styleKey.Width(5).Align(lipgloss.Center).Render(k)
		}
		rows = append(rows, strings.Join(keys, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func renderTiles(v puzzle.View) string {
	var rows []string
	for i := 0; i+3 <= len(v.Cells); i += 3 {
		tiles := make([]string, 3)
		for j, c := range v.Cells[i : i+3] {
			if c == "" {
				tiles[j] = strings.Repeat(" ", 4)
				continue
			}
			tiles[j] = styleKey.Width(4).Align(lipgloss.Center).Render(c)
		}
		rows = append(rows, strings.Join(tiles, " "))
	}
	return strings.Join(rows, "\n")
}

func puzzleHelp(kind string) string {
	switch kind {
	case puzzle.KindKeypad:
		return "0-9 type • enter submit • backspace clear • esc back away"
	case puzzle.KindTile:
		return "1-9 slide tile • esc back away"
	case puzzle.KindLever:
		return "1-9 pull lever • esc back away"
	default:
		return "1-9 turn dial • esc back away"
	}
}
