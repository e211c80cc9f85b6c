// Package command parses the colon-delimited command strings embedded in
// content data into a tagged union. Parsing happens once at load time;
// execution lives in the effects package.
package command

import (
	"fmt"
	"strings"
)

// Kind is the leading token of a command string.
type Kind string

const (
	KindChangeScene   Kind = "CHANGE_SCENE"
	KindGiveItem      Kind = "GIVE_ITEM"
	KindExamineDesc   Kind = "EXAMINE_DESC"
	KindItemUseResult Kind = "ITEM_USE_RESULT"
	KindStartPuzzle   Kind = "START_PUZZLE"
	KindUnknown       Kind = "UNKNOWN"
	KindNoop          Kind = "NOOP"
)

// Sub-command keywords inside ITEM_USE_RESULT, and the "skip" marker.
const (
	kwRemoveItem     = "REMOVE_ITEM"
	kwAddItem        = "ADD_ITEM"
	kwReplaceHotspot = "REPLACE_HOTSPOT"
	None             = "NONE"
)

// Command is one of ChangeScene, GiveItem, ExamineDesc, ItemUseResult,
// StartPuzzle, Unknown or Noop.
type Command interface {
	Kind() Kind
}

// ChangeScene switches the current scene.
type ChangeScene struct{ SceneID string }

// GiveItem grants an item if capacity allows.
type GiveItem struct{ ItemID string }

// ExamineDesc overwrites the narrative text.
type ExamineDesc struct{ Text string }

// ItemUseResult is the compound item-swap effect.
type ItemUseResult struct {
	RemoveSelected bool
	AddItem        string       // empty: grant nothing
	Replace        *Replacement // nil: leave hotspots alone
}

// Replacement swaps hotspot OldID for the hand-authored hotspot NewID.
type Replacement struct {
	OldID string
	NewID string
}

// StartPuzzle launches a puzzle. On solve, RemoveHotspot (if set) is
// removed and PostSolve (if set) is applied.
type StartPuzzle struct {
	Puzzle        string
	Solution      string
	RemoveHotspot string
	PostSolve     Command
}

// Unknown is a command whose kind is not in the vocabulary.
type Unknown struct{ Name string }

// Noop does nothing. Missing or malformed commands compile to it.
type Noop struct{}

func (ChangeScene) Kind() Kind   { return KindChangeScene }
func (GiveItem) Kind() Kind      { return KindGiveItem }
func (ExamineDesc) Kind() Kind   { return KindExamineDesc }
func (ItemUseResult) Kind() Kind { return KindItemUseResult }
func (StartPuzzle) Kind() Kind   { return KindStartPuzzle }
func (Unknown) Kind() Kind       { return KindUnknown }
func (Noop) Kind() Kind          { return KindNoop }

// SyntaxError reports a command string that could not be parsed. The
// accompanying Command is always Noop.
type SyntaxError struct {
	Input  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Input, e.Reason)
}

// Parse converts a command string into a Command. Empty input yields Noop
// with no error; unknown kinds yield Unknown with no error.
func Parse(s string) (Command, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Noop{}, nil
	}
	parts := strings.Split(s, ":")
	kind := Kind(parts[0])
	args := parts[1:]

	switch kind {
	case KindChangeScene:
		return ChangeScene{SceneID: arg(args, 0)}, nil

	case KindGiveItem:
		return GiveItem{ItemID: arg(args, 0)}, nil

	case KindExamineDesc:
		return ExamineDesc{Text: strings.Join(args, ":")}, nil

	case KindItemUseResult:
		return parseItemUseResult(s, args)

	case KindStartPuzzle:
		return parseStartPuzzle(s, args)

	default:
		return Unknown{Name: parts[0]}, nil
	}
}

// parseItemUseResult scans for sub-command keywords in any order:
//
//	REMOVE_ITEM[:ignored]  ADD_ITEM:<id|NONE>  REPLACE_HOTSPOT:<old>:<new>
//
// The token after REMOVE_ITEM is an optional, ignored item ID; the item
// removed is always the current selection.
func parseItemUseResult(input string, args []string) (Command, error) {
	var c ItemUseResult
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case kwRemoveItem:
			c.RemoveSelected = true
			if i+1 < len(args) && !isKeyword(args[i+1]) {
				i++
			}
		case kwAddItem:
			if i+1 >= len(args) {
				return Noop{}, &SyntaxError{Input: input, Reason: "ADD_ITEM needs an item ID"}
			}
			i++
			if args[i] != None && args[i] != "" {
				c.AddItem = args[i]
			}
		case kwReplaceHotspot:
			if i+2 >= len(args) {
				return Noop{}, &SyntaxError{Input: input, Reason: "REPLACE_HOTSPOT needs old and new hotspot IDs"}
			}
			c.Replace = &Replacement{OldID: args[i+1], NewID: args[i+2]}
			i += 2
		}
	}
	return c, nil
}

// parseStartPuzzle reads
//
//	START_PUZZLE:<kind>:<solution>:<hotspot|NONE>[:<post-solve command>...]
func parseStartPuzzle(input string, args []string) (Command, error) {
	if arg(args, 0) == "" {
		return Noop{}, &SyntaxError{Input: input, Reason: "START_PUZZLE needs a puzzle kind"}
	}
	c := StartPuzzle{
		Puzzle:   args[0],
		Solution: arg(args, 1),
	}
	if h := arg(args, 2); h != None {
		c.RemoveHotspot = h
	}
	if len(args) > 3 {
		post, err := Parse(strings.Join(args[3:], ":"))
		if err != nil {
			return Noop{}, &SyntaxError{Input: input, Reason: "post-solve: " + err.Error()}
		}
		if _, ok := post.(Noop); !ok {
			c.PostSolve = post
		}
	}
	return c, nil
}

func isKeyword(tok string) bool {
	return tok == kwRemoveItem || tok == kwAddItem || tok == kwReplaceHotspot
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
