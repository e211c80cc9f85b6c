// Package puzzle implements the puzzle mini-games. A puzzle is a small state
// machine driven by Input values; it knows nothing about scenes or items.
// The engine owns the session around it (attempt IDs, delayed
// continuations, solve/exit callbacks).
package puzzle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nathoo/clickcore/types"
)

// Puzzle kinds as they appear in START_PUZZLE commands.
const (
	KindKeypad = "Keypad"
	KindTile   = "TilePuzzle"
	KindLever  = "LeverPuzzle"
	KindDial   = "DialPuzzle"
)

// ErrUnknownPuzzle is returned by New for an unrecognized kind.
var ErrUnknownPuzzle = errors.New("unknown puzzle")

// Shuffler is the randomness a puzzle may need during Init.
type Shuffler interface {
	Intn(n int) int
}

// Puzzle is one mini-game instance. Init may be called again to restart.
type Puzzle interface {
	Kind() string
	Init(solution string, rng Shuffler)
	HandleInput(in Input) Outcome
	Solved() bool
	Prompt() string
	View() View
}

// Input is a player action inside a puzzle. Index addresses a lever, dial or
// tile; Key is a keypad key ("0"-"9", "CLR", "ENT").
type Input struct {
	Index int
	Key   string
}

// Status classifies the effect of an input.
type Status int

const (
	Ignored  Status = iota // input had no effect
	Changed                // state changed, not solved
	Solved                 // input completed the puzzle
	Rejected               // a wrong answer was submitted
)

func (s Status) String() string {
	switch s {
	case Ignored:
		return "ignored"
	case Changed:
		return "changed"
	case Solved:
		return "solved"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the result of one input. Message, when set, replaces the
// narrative. Feedback, when set, is a transient message anchored at At.
type Outcome struct {
	Status   Status
	Message  string
	Feedback string
	At       types.Point
}

// View is a render-ready snapshot of a puzzle.
type View struct {
	Kind    string
	Display string   // keypad display, empty for other kinds
	Cells   []string // keys, tiles, levers or dials in input-index order
	Solved  bool
}

// EventKind distinguishes how an attempt ended.
type EventKind string

const (
	EventSolved EventKind = "solved"
	EventExited EventKind = "exited"
)

// Event reports the end of a puzzle attempt.
type Event struct {
	Kind    EventKind
	Attempt uuid.UUID
}

// New creates an uninitialized puzzle of the given kind.
func New(kind string) (Puzzle, error) {
	switch kind {
	case KindKeypad:
		return &Keypad{}, nil
	case KindTile:
		return &Tile{}, nil
	case KindLever:
		return &Lever{}, nil
	case KindDial:
		return &Dial{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPuzzle, kind)
}
