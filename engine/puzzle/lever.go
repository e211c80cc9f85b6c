package puzzle

import (
	"fmt"
	"strings"

	"github.com/nathoo/clickcore/types"
)

const (
	leverUp   = "UP"
	leverDown = "DOWN"

	// DefaultLeverTarget is used when START_PUZZLE carries no usable
	// solution.
	DefaultLeverTarget = "DOWN_UP_DOWN"
)

// LeverFeedbackAt anchors lever movement feedback.
var LeverFeedbackAt = types.Point{X: 300, Y: 300}

// Lever is a bank of two-position levers that must match a target
// sequence. All levers start DOWN.
type Lever struct {
	target []string
	up     []bool
	solved bool
}

func (l *Lever) Kind() string { return KindLever }

// Init reads the target as UP/DOWN tokens joined by '_'. The lever count is
// the token count. A solution with any other token falls back to
// DefaultLeverTarget.
func (l *Lever) Init(solution string, _ Shuffler) {
	target, ok := parseLeverTarget(solution)
	if !ok {
		target, _ = parseLeverTarget(DefaultLeverTarget)
	}
	l.target = target
	l.up = make([]bool, len(l.target))
	l.solved = false
}

// ValidLeverTarget reports whether solution is a usable lever sequence.
func ValidLeverTarget(solution string) bool {
	_, ok := parseLeverTarget(solution)
	return ok
}

func parseLeverTarget(solution string) ([]string, bool) {
	tokens := strings.Split(strings.ToUpper(solution), "_")
	for _, tok := range tokens {
		if tok != leverUp && tok != leverDown {
			return nil, false
		}
	}
	return tokens, true
}

func (l *Lever) HandleInput(in Input) Outcome {
	if l.solved || in.Index < 0 || in.Index >= len(l.up) {
		return Outcome{Status: Ignored}
	}
	l.up[in.Index] = !l.up[in.Index]
	fb := fmt.Sprintf("Lever %d moved %s", in.Index+1, position(l.up[in.Index]))

	if l.matches() {
		l.solved = true
		return Outcome{
			Status:   Solved,
			Message:  "Sequence Correct! A hidden passage opens.",
			Feedback: fb,
			At:       LeverFeedbackAt,
		}
	}
	return Outcome{
		Status:   Changed,
		Message:  "Lever position changed. The mechanism is still locked. Keep adjusting.",
		Feedback: fb,
		At:       LeverFeedbackAt,
	}
}

func (l *Lever) matches() bool {
	for i, up := range l.up {
		if position(up) != l.target[i] {
			return false
		}
	}
	return true
}

func (l *Lever) Solved() bool { return l.solved }

func (l *Lever) Prompt() string {
	return "Pull the levers in the correct sequence (U or D). (Check your Journal Note for the clue!)"
}

func (l *Lever) View() View {
	cells := make([]string, len(l.up))
	for i, up := range l.up {
		cells[i] = position(up)
	}
	return View{Kind: KindLever, Cells: cells, Solved: l.solved}
}

func position(up bool) string {
	if up {
		return leverUp
	}
	return leverDown
}
