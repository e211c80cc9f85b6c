package tui

import (
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// Scene coordinates span SceneWidth x SceneHeight regardless of the
// terminal size; the canvas scales them onto cells.
const (
	SceneWidth  = 800
	SceneHeight = 600
)

// Feedback bubble geometry, in scene units.
const (
	feedbackWrap = 200 // wrap width
	feedbackLift = 10  // gap above the anchor
	feedbackRise = 30  // drift over the bubble's lifetime
)

// fadeStart is the fraction of a bubble's lifetime spent fully opaque.
const fadeStart = 0.75

// canvas maps between scene coordinates and a cols x rows cell area.
type canvas struct {
	cols, rows int
}

// toScene returns the scene point at the centre of a cell.
func (c canvas) toScene(col, row int) types.Point {
	return types.Point{
		X: (2*col + 1) * SceneWidth / (2 * c.cols),
		Y: (2*row + 1) * SceneHeight / (2 * c.rows),
	}
}

// toCell returns the cell containing p, clamped to the canvas.
func (c canvas) toCell(p types.Point) (col, row int) {
	col = min(max(p.X*c.cols/SceneWidth, 0), c.cols-1)
	row = min(max(p.Y*c.rows/SceneHeight, 0), c.rows-1)
	return col, row
}

// rectCells returns the inclusive cell span covered by r.
func (c canvas) rectCells(r types.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = c.toCell(types.Point{X: r.X, Y: r.Y})
	c1, r1 = c.toCell(types.Point{X: r.X + max(r.W-1, 0), Y: r.Y + max(r.H-1, 0)})
	return c0, r0, c1, r1
}

// grid is a frame of runes with a paint per cell.
type grid struct {
	cols, rows int
	runes      [][]rune
	paints     [][]paint
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows}
	g.runes = make([][]rune, rows)
	g.paints = make([][]paint, rows)
	for r := range rows {
		g.runes[r] = []rune(strings.Repeat(" ", cols))
		g.paints[r] = make([]paint, cols)
	}
	return g
}

func (g *grid) set(col, row int, r rune, p paint) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	g.runes[row][col] = r
	g.paints[row][col] = p
}

func (g *grid) text(col, row int, s string, p paint) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, p)
	}
}

// render styles each run of equally painted cells once.
func (g *grid) render() string {
	lines := make([]string, g.rows)
	for row := range g.rows {
		var b strings.Builder
		start := 0
		for col := 1; col <= g.cols; col++ {
			if col < g.cols && g.paints[row][col] == g.paints[row][start] {
				continue
			}
			b.WriteString(g.paints[row][start].style().Render(string(g.runes[row][start:col])))
			start = col
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// drawHotspot outlines a hotspot and writes its name inside.
func drawHotspot(g *grid, c canvas, h *world.Hotspot, hovered bool) {
	c0, r0, c1, r1 := c.rectCells(h.Bounds)
	body, label := paint{kind: paintHotspot}, paint{kind: paintLabel}
	if hovered {
		body, label = paint{kind: paintHover}, paint{kind: paintHover}
	}

	thin := c1-c0 < 1 || r1-r0 < 1
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if thin {
				g.set(col, row, '▒', body)
				continue
			}
			g.set(col, row, boxRune(col, row, c0, r0, c1, r1), body)
		}
	}

	width := c1 - c0 - 1
	if width <= 0 {
		return
	}
	row := r0
	if r1-r0 >= 2 {
		row = r0 + 1
	}
	g.text(c0+1, row, truncate(h.Name, width), label)
}

func boxRune(col, row, c0, r0, c1, r1 int) rune {
	top, bottom, left, right := row == r0, row == r1, col == c0, col == c1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return ' '
}

// bubble is a feedback message on screen since born.
type bubble struct {
	fb   types.Feedback
	born time.Time
}

func (b bubble) expired(now time.Time) bool {
	return now.Sub(b.born) > b.fb.Duration
}

// fade returns a bubble's opacity (0-255) and upward drift in scene units
// at elapsed into its lifetime.
func fade(elapsed, lifetime time.Duration) (alpha, rise int) {
	if lifetime <= 0 {
		return 0, 0
	}
	p := float64(elapsed) / float64(lifetime)
	if p >= 1 {
		return 0, feedbackRise
	}
	alpha = 255
	if p > fadeStart {
		alpha = int(255 * (1 - p) * 4)
	}
	return min(max(alpha, 0), 255), int(p * feedbackRise)
}

// drawBubble writes wrapped feedback text centred above its anchor.
func drawBubble(g *grid, c canvas, b bubble, now time.Time) {
	alpha, rise := fade(now.Sub(b.born), b.fb.Duration)
	if alpha <= 0 {
		return
	}
	width := max(c.cols*feedbackWrap/SceneWidth, 10)
	lines := strings.Split(wordwrap.String(b.fb.Text, width), "\n")

	col, row := c.toCell(types.Point{X: b.fb.At.X, Y: b.fb.At.Y - feedbackLift - rise})
	row -= len(lines) / 2
	p := paint{kind: paintFeedback, alpha: alpha}
	for i, line := range lines {
		n := len([]rune(line))
		g.text(col-n/2, row+i, line, p)
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	if n == 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
