// Package tui provides a Bubble Tea point-and-click front end for the
// ClickCore engine.
package tui

// History is a bounded log of narrative text, oldest first.
type History struct {
	entries []string
	max     int
}

// NewHistory creates a log holding at most max entries.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
	}
}

// Push appends text. Empty text and repeats of the latest entry are skipped.
func (h *History) Push(text string) {
	if text == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == text {
		return
	}
	h.entries = append(h.entries, text)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Entries returns a copy of the log.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns the newest entry, or "".
func (h *History) Last() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1]
}

func (h *History) Len() int { return len(h.entries) }
