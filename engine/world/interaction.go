package world

import (
	"log/slog"

	"github.com/nathoo/clickcore/engine/inventory"
	"github.com/nathoo/clickcore/types"
)

// Context is the engine surface handed to conditions and actions. It is the
// only way content behaviour can touch engine state.
type Context interface {
	Inventory() *inventory.Inventory
	Item(id string) (*types.Item, bool)
	Scene(id string) (*Scene, bool)
	// ChangeScene switches the current scene. Unknown IDs are a no-op.
	ChangeScene(id string) bool
	// Feedback raises a transient message anchored at a scene point.
	Feedback(text string, at types.Point)
	// Describe overwrites the narrative text.
	Describe(text string)
	RefreshInventory()
	StartPuzzle(req PuzzleRequest)
	// Emit records an event in the current result.
	Emit(e types.Event)
	Logger() *slog.Logger
}

// PuzzleRequest launches a puzzle. OnSolve runs once when the attempt is
// solved and its delay has elapsed; OnExit runs when the player backs out.
// Either may be nil.
type PuzzleRequest struct {
	Kind     string
	Solution string
	Anchor   types.Point
	OnSolve  func(ctx Context)
	OnExit   func(ctx Context)
}

// Condition gates an interaction's availability.
type Condition func(ctx Context, h *Hotspot) bool

// Action is the state mutation an interaction performs.
type Action func(ctx Context, h *Hotspot)

// Interaction is a (type, condition, action) triple. Interactions hold no
// state and may run any number of times.
type Interaction struct {
	Type   types.InteractionType
	Cond   Condition // nil means always available
	Action Action

	// RequiredItem is the selected-item ID Cond checks for, if any.
	RequiredItem string
}

// Available reports whether the interaction may fire.
func (i *Interaction) Available(ctx Context, h *Hotspot) bool {
	return i.Cond == nil || i.Cond(ctx, h)
}

// RequiresItem reports whether the interaction is gated on a selected item.
// Other conditions, such as holding an item, do not count.
func (i *Interaction) RequiresItem() bool {
	return i.RequiredItem != ""
}

// Execute runs the action.
func (i *Interaction) Execute(ctx Context, h *Hotspot) {
	if i.Action != nil {
		i.Action(ctx, h)
	}
}

// Hotspot is a clickable region offering zero or more interactions.
type Hotspot struct {
	ID           string
	Name         string
	Bounds       types.Rect
	Interactions []*Interaction
}

// NewHotspot creates a hotspot with the given interactions.
func NewHotspot(id, name string, bounds types.Rect, interactions ...*Interaction) *Hotspot {
	return &Hotspot{ID: id, Name: name, Bounds: bounds, Interactions: interactions}
}

// AddInteraction appends an interaction.
func (h *Hotspot) AddInteraction(i *Interaction) {
	h.Interactions = append(h.Interactions, i)
}

// Find returns the first interaction of type t that is available, or nil.
// First match wins; later interactions of the same type are not consulted.
func (h *Hotspot) Find(t types.InteractionType, ctx Context) *Interaction {
	for _, i := range h.Interactions {
		if i.Type == t && i.Available(ctx, h) {
			return i
		}
	}
	return nil
}
