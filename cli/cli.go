// Package cli provides a line-oriented front end for the ClickCore engine:
// clicks are typed as scene coordinates or hotspot IDs, which makes games
// scriptable and testable without a terminal canvas.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/clickcore/engine"
	"github.com/nathoo/clickcore/engine/puzzle"
	"github.com/nathoo/clickcore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It describes the starting scene, then loops:
// prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.cmdLook()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.dispatch(input)
	}
}

// dispatch runs one game command.
func (c *CLI) dispatch(input string) {
	parts := strings.Fields(input)
	verb := strings.ToLower(parts[0])
	args := parts[1:]

	switch verb {
	case "click", "c":
		p, ok := c.point(args)
		if !ok {
			c.printSystem("Usage: click <x> <y> | click <hotspot>")
			return
		}
		c.play(c.Engine.HandleClick(p))

	case "hover", "h":
		p, ok := c.point(args)
		if !ok {
			c.printSystem("Usage: hover <x> <y>")
			return
		}
		if h := c.Engine.Hover(p); h != nil {
			c.printLine(h.Name)
		} else {
			c.printLine("(nothing)")
		}

	case "select", "s":
		if len(args) == 0 {
			c.printSystem("Usage: select <item|slot>")
			return
		}
		if n, err := strconv.Atoi(args[0]); err == nil {
			c.play(c.Engine.SelectIndex(n - 1))
		} else {
			c.play(c.Engine.SelectItem(args[0]))
		}

	case "press", "p":
		c.cmdPress(args)

	case "stop", "back":
		c.play(c.Engine.StopPuzzle())

	case "look", "l":
		c.cmdLook()

	case "inventory", "inv", "i":
		c.cmdInventory()

	case "puzzle":
		c.printPuzzle()

	default:
		c.printLine(fmt.Sprintf("I don't know how to %q. Type /help for commands.", verb))
	}
}

// point reads either "<x> <y>" or a hotspot ID, which resolves to the
// centre of that hotspot in the current scene.
func (c *CLI) point(args []string) (types.Point, bool) {
	switch len(args) {
	case 1:
		scene := c.Engine.Scene()
		if scene == nil {
			return types.Point{}, false
		}
		h, ok := scene.Hotspot(args[0])
		if !ok {
			return types.Point{}, false
		}
		b := h.Bounds
		return types.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}, true
	case 2:
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if errX != nil || errY != nil {
			return types.Point{}, false
		}
		return types.Point{X: x, Y: y}, true
	}
	return types.Point{}, false
}

// cmdPress sends puzzle input. The keypad takes key labels; the other
// puzzles take 1-based cell, lever or dial numbers.
func (c *CLI) cmdPress(args []string) {
	v, ok := c.Engine.Puzzle()
	if !ok {
		c.printSystem("No puzzle is active.")
		return
	}
	for _, arg := range args {
		var in puzzle.Input
		if v.Kind == puzzle.KindKeypad {
			in.Key = strings.ToUpper(arg)
		} else {
			n, err := strconv.Atoi(arg)
			if err != nil {
				c.printSystem(fmt.Sprintf("Not a number: %s", arg))
				return
			}
			in.Index = n - 1
		}
		r := c.Engine.PuzzleInput(in)
		c.show(r)
		// Before the timers run, so SUCCESS and ERROR are visible.
		c.printPuzzle()
		c.settle(r)
	}
}

// play prints a result, then fires its timers in order.
func (c *CLI) play(r types.Result) {
	c.show(r)
	c.settle(r)
}

func (c *CLI) show(r types.Result) {
	c.printResult(r)
	if c.Trace {
		c.printTrace(r)
	}
}

// settle runs delayed continuations. There is no clock here: they fire as
// soon as the input that scheduled them has been shown.
func (c *CLI) settle(r types.Result) {
	for _, tm := range r.Timers {
		c.play(c.Engine.Resume(tm))
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Game commands:",
		"  click <x> <y> (c)        Click a point in the scene",
		"  click <hotspot>          Click the middle of a hotspot",
		"  hover <x> <y> (h)        Name what is under a point",
		"  select <item|slot> (s)   Select or deselect an inventory item",
		"  press <key|n>... (p)     Operate the open puzzle",
		"  stop                     Back away from the puzzle",
		"  look (l)                 Describe the scene and its hotspots",
		"  inventory (i)            Check what you're carrying",
		"  puzzle                   Show the open puzzle",
		"  again (g)                Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdLook() {
	title, desc := c.Engine.Location()
	if title == "" && desc == "" {
		c.printSystem("You are nowhere.")
		return
	}
	c.printLine(fmt.Sprintf("== %s ==", title))
	c.printLine(desc)
	for _, h := range c.Engine.Scene().Hotspots() {
		b := h.Bounds
		c.printLine(fmt.Sprintf("  %-24s %s (%d,%d %dx%d)", h.ID, h.Name, b.X, b.Y, b.W, b.H))
	}
}

func (c *CLI) cmdInventory() {
	inv := c.Engine.Inventory()
	if inv.Len() == 0 {
		c.printLine("You are carrying nothing.")
		return
	}
	sel := inv.Selected()
	for i, it := range inv.Items() {
		mark := " "
		if it == sel {
			mark = "*"
		}
		c.printLine(fmt.Sprintf("%s%d. %s", mark, i+1, it.Name))
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	c.printSystem(fmt.Sprintf("Mode: %s", e.Mode()))
	if s := e.Scene(); s != nil {
		c.printSystem(fmt.Sprintf("Scene: %s", s.ID))
	}
	c.printSystem(fmt.Sprintf("Interactions: %d", e.InteractionCount()))
	ids := make([]string, 0, e.Inventory().Len())
	for _, it := range e.Inventory().Items() {
		ids = append(ids, it.ID)
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", ids))
	if sel := e.Inventory().Selected(); sel != nil {
		c.printSystem(fmt.Sprintf("Selected: %s", sel.ID))
	}
	c.printSystem(fmt.Sprintf("RNG: seed %d, position %d", e.RNG().Seed(), e.RNG().Position()))
}

func (c *CLI) printPuzzle() {
	v, ok := c.Engine.Puzzle()
	if !ok {
		c.printSystem("No puzzle is active.")
		return
	}
	switch v.Kind {
	case puzzle.KindKeypad:
		c.printLine(fmt.Sprintf("  [%-8s]", v.Display))
	case puzzle.KindTile:
		for row := 0; row < 3; row++ {
			cells := make([]string, 3)
			for col := range cells {
				cell := v.Cells[row*3+col]
				if cell == "" {
					cell = "."
				}
				cells[col] = cell
			}
			c.printLine("  " + strings.Join(cells, " "))
		}
	default:
		c.printLine("  " + strings.Join(v.Cells, " "))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	for _, tm := range result.Timers {
		c.printSystem(fmt.Sprintf("[trace] Timer: %s after %s", tm.Kind, tm.Delay))
	}
}

// printResult shows feedback popups, then the narrative as it stands once
// the input has been handled.
func (c *CLI) printResult(result types.Result) {
	for _, fb := range result.Feedback {
		c.printSystem(fb.Text)
	}
	for _, e := range result.Events {
		if e.Type == engine.EventNarrative {
			c.printLine(c.Engine.Narrative())
			return
		}
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
