package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/nathoo/clickcore/engine/puzzle"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// puzzleDelay separates a solved (or rejected) input from its continuation,
// long enough for the player to see SUCCESS or ERROR.
const puzzleDelay = 500 * time.Millisecond

// session is one puzzle attempt. A new attempt ID is minted on every start,
// so timers scheduled by an earlier attempt can never fire into this one.
type session struct {
	attempt uuid.UUID
	req     world.PuzzleRequest
	puzzle  puzzle.Puzzle
	ended   bool
}

// finish marks the attempt over and returns its terminal event. The second
// and later calls report false.
func (s *session) finish(kind puzzle.EventKind) (puzzle.Event, bool) {
	if s.ended {
		return puzzle.Event{}, false
	}
	s.ended = true
	return puzzle.Event{Kind: kind, Attempt: s.attempt}, true
}

type clearer interface {
	ClearRejection()
}

// StartPuzzle enters PUZZLE mode with a fresh attempt. Unknown kinds leave
// the engine IDLE.
func (e *Engine) StartPuzzle(req world.PuzzleRequest) types.Result {
	t := e.begin()
	e.startPuzzle(t, req)
	return t.result()
}

func (e *Engine) startPuzzle(t *turn, req world.PuzzleRequest) {
	if e.mode == types.ModePuzzle {
		e.log.Warn("puzzle already active", "requested", req.Kind, "active", e.session.req.Kind)
		return
	}
	p, err := puzzle.New(req.Kind)
	if err != nil {
		e.log.Warn("cannot start puzzle", "error", err)
		t.Describe("Unknown puzzle: " + req.Kind)
		return
	}

	t.Describe("Starting " + req.Kind + "...")
	p.Init(req.Solution, e.rng)
	e.session = &session{attempt: uuid.New(), req: req, puzzle: p}
	e.setMode(t, types.ModePuzzle)
	e.log.Info("puzzle started", "kind", req.Kind, "attempt", e.session.attempt)
	t.Emit(types.Event{
		Type: EventPuzzle,
		Data: map[string]any{"kind": req.Kind, "state": "started", "attempt": e.session.attempt.String()},
	})
	t.Describe(p.Prompt())
}

// PuzzleInput forwards an input to the active puzzle. A solving input
// schedules the solve continuation; a rejected keypad entry schedules its
// reset. Input after the puzzle is solved is ignored.
func (e *Engine) PuzzleInput(in puzzle.Input) types.Result {
	t := e.begin()
	s := e.session
	if e.mode != types.ModePuzzle || s == nil || s.puzzle.Solved() {
		return t.result()
	}

	out := s.puzzle.HandleInput(in)
	if out.Feedback != "" {
		t.Feedback(out.Feedback, out.At)
	}
	if out.Message != "" {
		t.Describe(out.Message)
	}
	switch out.Status {
	case puzzle.Solved:
		t.schedule(types.TimerSolve, s.attempt)
	case puzzle.Rejected:
		t.schedule(types.TimerClear, s.attempt)
	}
	return t.result()
}

// Resume runs a delayed continuation. Timers from an attempt that is no
// longer live are discarded.
func (e *Engine) Resume(timer types.Timer) types.Result {
	t := e.begin()
	s := e.session
	if s == nil || s.attempt != timer.Attempt {
		e.log.Debug("stale timer discarded", "kind", timer.Kind, "attempt", timer.Attempt)
		return t.result()
	}

	switch timer.Kind {
	case types.TimerClear:
		if c, ok := s.puzzle.(clearer); ok {
			c.ClearRejection()
		}

	case types.TimerSolve:
		if !s.puzzle.Solved() {
			return t.result()
		}
		ev, ok := s.finish(puzzle.EventSolved)
		if !ok {
			return t.result()
		}
		e.endPuzzle(t, ev)
		if s.req.OnSolve != nil {
			s.req.OnSolve(t)
		}
	}
	return t.result()
}

// StopPuzzle backs out of the active puzzle and runs its exit continuation.
func (e *Engine) StopPuzzle() types.Result {
	t := e.begin()
	s := e.session
	if s == nil {
		return t.result()
	}
	ev, ok := s.finish(puzzle.EventExited)
	if !ok {
		return t.result()
	}
	e.endPuzzle(t, ev)
	if s.req.OnExit != nil {
		s.req.OnExit(t)
	}
	return t.result()
}

// EndPuzzle returns to IDLE without running any continuation and restores
// the scene description.
func (e *Engine) EndPuzzle() types.Result {
	t := e.begin()
	if s := e.session; s != nil {
		ev, _ := s.finish(puzzle.EventExited)
		e.endPuzzle(t, ev)
	}
	return t.result()
}

// endPuzzle runs before the attempt's continuation, so narrative written by
// OnSolve or OnExit survives the description restore.
func (e *Engine) endPuzzle(t *turn, ev puzzle.Event) {
	kind := e.session.req.Kind
	e.session = nil
	e.setMode(t, types.ModeIdle)
	e.log.Info("puzzle ended", "kind", kind, "outcome", ev.Kind, "attempt", ev.Attempt)
	t.Emit(types.Event{
		Type: EventPuzzle,
		Data: map[string]any{"kind": kind, "state": string(ev.Kind), "attempt": ev.Attempt.String()},
	})
	if e.scene != nil {
		t.Describe(e.scene.Description)
	}
}

func (e *Engine) setMode(t *turn, m types.Mode) {
	e.mode = m
	t.Emit(types.Event{Type: EventMode, Data: map[string]any{"mode": string(m)}})
}

// Puzzle returns a view of the active puzzle.
func (e *Engine) Puzzle() (puzzle.View, bool) {
	if e.session == nil {
		return puzzle.View{}, false
	}
	return e.session.puzzle.View(), true
}

// PuzzlePrompt returns the active puzzle's instructions, or "".
func (e *Engine) PuzzlePrompt() string {
	if e.session == nil {
		return ""
	}
	return e.session.puzzle.Prompt()
}
