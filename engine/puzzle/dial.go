package puzzle

import "strings"

// DialLetters is the dial alphabet, in turning order.
const DialLetters = "ABCD"

// DefaultDialTarget is used when START_PUZZLE carries no usable solution.
const DefaultDialTarget = "C_A_D"

// Dial is a rotary letter lock. Each turn advances one dial a letter,
// wrapping D back to A.
type Dial struct {
	target []string
	pos    []int
	solved bool
}

func (d *Dial) Kind() string { return KindDial }

// Init reads the target as letters joined by '_'. The dial count is the
// token count. Dials start at A. A solution with a token that is not a
// single dial letter falls back to DefaultDialTarget.
func (d *Dial) Init(solution string, _ Shuffler) {
	target, ok := parseDialTarget(solution)
	if !ok {
		target, _ = parseDialTarget(DefaultDialTarget)
	}
	d.target = target
	d.pos = make([]int, len(d.target))
	d.solved = false
}

// ValidDialTarget reports whether solution is a usable dial sequence.
func ValidDialTarget(solution string) bool {
	_, ok := parseDialTarget(solution)
	return ok
}

func parseDialTarget(solution string) ([]string, bool) {
	tokens := strings.Split(strings.ToUpper(solution), "_")
	for _, tok := range tokens {
		if len(tok) != 1 || !strings.Contains(DialLetters, tok) {
			return nil, false
		}
	}
	return tokens, true
}

func (d *Dial) HandleInput(in Input) Outcome {
	if d.solved || in.Index < 0 || in.Index >= len(d.pos) {
		return Outcome{Status: Ignored}
	}
	d.pos[in.Index] = (d.pos[in.Index] + 1) % len(DialLetters)
	if d.matches() {
		d.solved = true
		return Outcome{Status: Solved, Message: "The lock clicks open!"}
	}
	return Outcome{Status: Changed}
}

func (d *Dial) matches() bool {
	for i, p := range d.pos {
		if DialLetters[p:p+1] != d.target[i] {
			return false
		}
	}
	return true
}

func (d *Dial) Solved() bool { return d.solved }

func (d *Dial) Prompt() string {
	return "Turn the dials to match the discovered sequence (A-D)."
}

func (d *Dial) View() View {
	cells := make([]string, len(d.pos))
	for i, p := range d.pos {
		cells[i] = DialLetters[p : p+1]
	}
	return View{Kind: KindDial, Cells: cells, Solved: d.solved}
}
