package puzzle

// Keypad function keys.
const (
	KeyClear = "CLR"
	KeyEnter = "ENT"
)

const (
	keypadMaxDigits = 8

	displaySuccess = "SUCCESS"
	displayError   = "ERROR"
)

// KeypadKeys lists the keypad's keys in layout order.
var KeypadKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", KeyClear, "0", KeyEnter}

// Keypad is a digit-entry lock. A wrong entry shows ERROR until
// ClearRejection is called.
type Keypad struct {
	code     string
	buf      string
	display  string
	solved   bool
	rejected bool
}

func (k *Keypad) Kind() string { return KindKeypad }

func (k *Keypad) Init(solution string, _ Shuffler) {
	*k = Keypad{code: solution}
}

func (k *Keypad) HandleInput(in Input) Outcome {
	if k.solved {
		return Outcome{Status: Ignored}
	}
	switch in.Key {
	case KeyClear:
		k.buf, k.display, k.rejected = "", "", false
		return Outcome{Status: Changed}
	case KeyEnter:
		if k.buf == k.code {
			k.solved = true
			k.display = displaySuccess
			return Outcome{Status: Solved}
		}
		k.rejected = true
		k.display = displayError
		return Outcome{Status: Rejected}
	}
	if !isDigit(in.Key) || len(k.buf) >= keypadMaxDigits {
		return Outcome{Status: Ignored}
	}
	if k.rejected {
		// Typing over an ERROR starts a fresh entry.
		k.buf, k.rejected = "", false
	}
	k.buf += in.Key
	k.display = k.buf
	return Outcome{Status: Changed}
}

// ClearRejection resets the entry after a rejected attempt. It does nothing
// if the last submission was not rejected.
func (k *Keypad) ClearRejection() {
	if !k.rejected {
		return
	}
	k.buf, k.display, k.rejected = "", "", false
}

// Rejected reports whether ERROR is showing.
func (k *Keypad) Rejected() bool { return k.rejected }

func (k *Keypad) Solved() bool { return k.solved }

func (k *Keypad) Prompt() string { return "Enter the 4-digit code..." }

func (k *Keypad) View() View {
	cells := make([]string, len(KeypadKeys))
	copy(cells, KeypadKeys)
	return View{Kind: KindKeypad, Display: k.display, Cells: cells, Solved: k.solved}
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
