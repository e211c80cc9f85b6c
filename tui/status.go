package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// sceneDisplayName returns the scene title, or one derived from its ID.
// "attic_interior" -> "Attic Interior".
func sceneDisplayName(s *world.Scene) string {
	if s.Title != "" {
		return s.Title
	}
	return cases.Title(language.English).String(strings.ReplaceAll(s.ID, "_", " "))
}

// renderStatusBar produces a full-width inverted status line showing the
// current scene, what is happening there, and the interaction count.
func (m Model) renderStatusBar() string {
	left := " ClickCore"
	if s := m.engine.Scene(); s != nil {
		left = " " + sceneDisplayName(s)
	}
	if m.engine.Mode() == types.ModePuzzle {
		if v, ok := m.engine.Puzzle(); ok {
			left += " | " + v.Kind
		}
	} else if sel := m.engine.Inventory().Selected(); sel != nil {
		left += " | Using: " + sel.Name
	}

	right := fmt.Sprintf("Interactions: %d ", m.engine.InteractionCount())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderInventory draws one slot per unit of capacity, numbered for the
// keyboard.
func (m Model) renderInventory() string {
	inv := m.engine.Inventory()
	slotW := m.slotWidth()
	items := inv.Items()
	sel := inv.Selected()

	slots := make([]string, inv.Capacity())
	for i := range slots {
		label := fmt.Sprintf(" %d", i+1)
		style := styleSlot
		if i < len(items) {
			label += " " + items[i].Name
			if items[i] == sel {
				style = styleSlotSelected
			}
		}
		slots[i] = style.Width(slotW).Render(truncate(label, slotW-1))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, slots...)
}

func (m Model) slotWidth() int {
	n := max(m.engine.Inventory().Capacity(), 1)
	return max(m.width/n, 4)
}
