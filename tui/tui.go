package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/clickcore/engine"
	"github.com/nathoo/clickcore/types"
)

const (
	narrativeRows = 3
	chromeRows    = 2 + narrativeRows // rows outside the canvas

	frameInterval = 50 * time.Millisecond
)

// Model is the Bubble Tea model for the ClickCore TUI.
type Model struct {
	engine *engine.Engine
	keys   keyMap

	viewport viewport.Model
	history  *History
	bubbles  []bubble
	hover    string // hotspot under the mouse

	width     int
	height    int
	ready     bool
	animating bool // a frame tick is pending
	quitting  bool

	now func() time.Time
}

// timerMsg delivers a delayed engine continuation.
type timerMsg struct {
	timer types.Timer
}

// frameMsg advances feedback animation.
type frameMsg time.Time

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	h := NewHistory(100)
	h.Push(eng.Narrative())
	return Model{
		engine:  eng,
		keys:    defaultKeyMap(),
		history: h,
		now:     time.Now,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	m := New(eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages (input, window resize, timers, animation frames).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(m.width, narrativeRows)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = narrativeRows
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case timerMsg:
		return m.apply(m.engine.Resume(msg.timer))

	case frameMsg:
		now := time.Time(msg)
		var live []bubble
		for _, b := range m.bubbles {
			if !b.expired(now) {
				live = append(live, b)
			}
		}
		m.bubbles = live
		if len(m.bubbles) == 0 {
			m.animating = false
			return m, nil
		}
		return m, frameTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Scroll) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.engine.Mode() == types.ModePuzzle {
		if key.Matches(msg, m.keys.Back) {
			return m.apply(m.engine.StopPuzzle())
		}
		v, ok := m.engine.Puzzle()
		if !ok {
			return m, nil
		}
		if in, ok := puzzleInput(v.Kind, msg); ok {
			return m.apply(m.engine.PuzzleInput(in))
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Slot) {
		n := int(msg.String()[0] - '1')
		return m.apply(m.engine.SelectIndex(n))
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := m.canvas()
	row := msg.Y - 1
	invRow := 1 + c.rows

	switch {
	case row >= 0 && row < c.rows:
		p := c.toScene(msg.X, row)
		switch {
		case msg.Action == tea.MouseActionMotion:
			m.hover = ""
			if h := m.engine.Hover(p); h != nil {
				m.hover = h.ID
			}
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			return m.apply(m.engine.HandleClick(p))
		}

	case msg.Y == invRow:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.apply(m.engine.SelectIndex(msg.X / m.slotWidth()))
		}

	case msg.Y > invRow:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply folds an engine result into the model: feedback starts animating,
// narrative is logged, and timers are scheduled on the UI loop.
func (m Model) apply(r types.Result) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	now := m.now()
	for _, fb := range r.Feedback {
		m.bubbles = append(m.bubbles, bubble{fb: fb, born: now})
	}
	if len(m.bubbles) > 0 && !m.animating {
		m.animating = true
		cmds = append(cmds, frameTick())
	}

	for _, e := range r.Events {
		if e.Type == engine.EventNarrative {
			m.history.Push(m.engine.Narrative())
			m.refreshViewport()
			break
		}
	}
	if m.engine.Mode() != types.ModeIdle {
		m.hover = ""
	}

	for _, tm := range r.Timers {
		cmds = append(cmds, timerTick(tm))
	}
	return m, tea.Batch(cmds...)
}

func timerTick(tm types.Timer) tea.Cmd {
	return tea.Tick(tm.Delay, func(time.Time) tea.Msg {
		return timerMsg{timer: tm}
	})
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// canvas returns the scene area: everything between the status bar and
// the inventory.
func (m Model) canvas() canvas {
	return canvas{
		cols: max(m.width, 1),
		rows: max(m.height-chromeRows, 1),
	}
}

// refreshViewport re-wraps the narrative log at the current width. The
// newest entry is highlighted.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)
	entries := m.history.Entries()
	styled := make([]string, len(entries))
	for i, text := range entries {
		wrapped := wordwrap.String(text, width)
		if i == len(entries)-1 {
			styled[i] = styleNarrative.Render(wrapped)
		} else {
			styled[i] = styleNarrativeOld.Render(wrapped)
		}
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: status bar, scene or puzzle,
// inventory, narrative.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	c := m.canvas()
	var scene string
	if v, ok := m.engine.Puzzle(); ok {
		scene = renderPuzzle(v, m.engine.PuzzlePrompt(), c.cols, c.rows)
	} else {
		scene = m.renderScene(c)
	}

	return m.renderStatusBar() + "\n" + scene + "\n" + m.renderInventory() + "\n" + m.viewport.View()
}

func (m Model) renderScene(c canvas) string {
	g := newGrid(c.cols, c.rows)
	if s := m.engine.Scene(); s != nil {
		for _, h := range s.Hotspots() {
			drawHotspot(g, c, h, h.ID == m.hover)
		}
	}
	now := m.now()
	for _, b := range m.bubbles {
		drawBubble(g, c, b, now)
	}
	return g.render()
}

type keyMap struct {
	Quit   key.Binding
	Back   key.Binding
	Slot   key.Binding
	Scroll key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back: key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "back away")),
		Slot: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "select item"),
		),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
	}
}

// viewportKeyMap returns a viewport keymap limited to paging; digits and
// letters belong to the game.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithDisabled()),
		HalfPageUp:   key.NewBinding(key.WithDisabled()),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
