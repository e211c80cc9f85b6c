package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/clickcore/engine/command"
	"github.com/nathoo/clickcore/engine/effects"
	"github.com/nathoo/clickcore/engine/puzzle"
	"github.com/nathoo/clickcore/types"
)

// ValidationError collects all validation errors and warnings. Only Errors
// fail a load; Warnings describe records that will be degraded.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks content for referential integrity. It never returns nil.
func Validate(c *types.Content) *ValidationError {
	ve := &ValidationError{}

	items := map[string]bool{}
	for _, it := range c.Items {
		if it.ID == "" {
			ve.warnf("item with empty id (name %q)", it.Name)
			continue
		}
		if items[it.ID] {
			ve.warnf("duplicate item %q", it.ID)
		}
		items[it.ID] = true
	}

	scenes := map[string]bool{}
	for _, s := range c.Scenes {
		if scenes[s.ID] {
			ve.warnf("duplicate scene %q; the later one wins", s.ID)
		}
		scenes[s.ID] = true
	}

	if len(c.Scenes) == 0 {
		ve.errorf("content defines no scenes")
	}
	// Without a start scene the game still loads; it just opens nowhere.
	switch {
	case c.StartSceneID == "":
		ve.warnf("start scene is missing; the game starts with no scene")
	case !scenes[c.StartSceneID]:
		ve.warnf("start scene %q does not match any defined scene; the game starts with no scene", c.StartSceneID)
	}

	for _, s := range c.Scenes {
		hotspots := map[string]bool{}
		for _, h := range s.Hotspots {
			where := fmt.Sprintf("scene %q hotspot %q", s.ID, h.ID)
			if hotspots[h.ID] {
				ve.warnf("%s: duplicate hotspot id", where)
			}
			hotspots[h.ID] = true

			if len(h.Bounds) != 4 {
				ve.warnf("%s: bounds must be [x, y, w, h], got %v", where, h.Bounds)
			} else if h.Bounds[2] <= 0 || h.Bounds[3] <= 0 {
				ve.warnf("%s: bounds %v have no area", where, h.Bounds)
			}

			for _, i := range h.Interactions {
				validateInteraction(i, where, items, scenes, ve)
			}
		}
	}
	return ve
}

func validateInteraction(i types.InteractionDef, where string, items, scenes map[string]bool, ve *ValidationError) {
	if _, ok := interactionTypes[i.Type]; !ok {
		ve.warnf("%s: unknown interaction type %q", where, i.Type)
		return
	}
	if i.RequiredItem != "" && !items[i.RequiredItem] {
		ve.warnf("%s: required item %q is not defined", where, i.RequiredItem)
	}
	if i.Command == "" {
		return
	}
	cmd, err := command.Parse(i.Command)
	if err != nil {
		var se *command.SyntaxError
		if errors.As(err, &se) {
			ve.warnf("%s: %s", where, se.Error())
		}
		return
	}
	validateCommand(cmd, where, items, scenes, ve)
}

func validateCommand(cmd command.Command, where string, items, scenes map[string]bool, ve *ValidationError) {
	switch c := cmd.(type) {
	case command.ChangeScene:
		if !scenes[c.SceneID] {
			ve.warnf("%s: CHANGE_SCENE to undefined scene %q", where, c.SceneID)
		}
	case command.GiveItem:
		if !items[c.ItemID] {
			ve.warnf("%s: GIVE_ITEM of undefined item %q", where, c.ItemID)
		}
	case command.ItemUseResult:
		if c.AddItem != "" && !items[c.AddItem] {
			ve.warnf("%s: ADD_ITEM of undefined item %q", where, c.AddItem)
		}
		if c.Replace != nil && !effects.HasReplacement(c.Replace.NewID) {
			ve.warnf("%s: REPLACE_HOTSPOT has no hotspot registered for %q", where, c.Replace.NewID)
		}
	case command.StartPuzzle:
		if _, err := puzzle.New(c.Puzzle); err != nil {
			ve.warnf("%s: %v", where, err)
		}
		if c.Solution != "" {
			switch {
			case c.Puzzle == puzzle.KindLever && !puzzle.ValidLeverTarget(c.Solution):
				ve.warnf("%s: lever solution %q is not an UP/DOWN sequence; using %s", where, c.Solution, puzzle.DefaultLeverTarget)
			case c.Puzzle == puzzle.KindDial && !puzzle.ValidDialTarget(c.Solution):
				ve.warnf("%s: dial solution %q is not a sequence of %s letters; using %s", where, c.Solution, puzzle.DialLetters, puzzle.DefaultDialTarget)
			}
		}
		if c.PostSolve != nil {
			validateCommand(c.PostSolve, where, items, scenes, ve)
		}
	case command.Unknown:
		ve.warnf("%s: unknown command %q", where, c.Name)
	}
}
