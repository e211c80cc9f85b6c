// Package engine provides the interaction resolution engine: it turns a
// click into at most one fired interaction, runs the puzzle sub-state
// machine, and reports everything observable in a types.Result.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nathoo/clickcore/engine/effects"
	"github.com/nathoo/clickcore/engine/inventory"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// Event types emitted by the engine.
const (
	EventSceneChanged = "scene_changed"
	EventNarrative    = "narrative"
	EventInteractions = "interactions"
	EventInventory    = "inventory"
	EventMode         = "mode"
	EventPuzzle       = "puzzle"
)

// Engine holds the world and all mutable play state. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Engine struct {
	world *world.World
	inv   *inventory.Inventory
	rng   *RNG
	log   *slog.Logger

	mode      types.Mode
	scene     *world.Scene
	narrative string
	count     int

	session *session
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	capacity int
	logger   *slog.Logger
	seed     int64
}

// WithCapacity sets the inventory capacity.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSeed seeds puzzle shuffles. Zero picks a time-based seed.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// New creates an engine over w and enters the start scene. An unknown start
// scene leaves the engine without a scene; clicks are then ignored.
func New(w *world.World, opts ...Option) *Engine {
	o := options{capacity: inventory.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}

	e := &Engine{
		world: w,
		inv:   inventory.New(o.capacity),
		rng:   NewRNG(o.seed),
		log:   o.logger,
		mode:  types.ModeIdle,
	}
	t := e.begin()
	t.ChangeScene(w.Start)
	return e
}

// HandleClick resolves a click at p in scene coordinates. Resolution order
// is USE, then PICKUP (only with no item selected), then EXAMINE; the first
// available interaction of the winning type fires and nothing else does.
func (e *Engine) HandleClick(p types.Point) types.Result {
	t := e.begin()
	if e.mode != types.ModeIdle || e.scene == nil {
		return t.result()
	}

	h := e.scene.HotspotAt(p)
	if h == nil {
		t.Feedback("Nothing here.", p)
		t.Describe("Nothing here.")
		return t.result()
	}

	e.resolve(t, p, h)
	e.count++
	t.Emit(types.Event{Type: EventInteractions, Data: map[string]any{"count": e.count}})
	return t.result()
}

func (e *Engine) resolve(t *turn, p types.Point, h *world.Hotspot) {
	scene := e.scene
	sel := e.inv.Selected()

	if use := h.Find(types.Use, t); use != nil {
		use.Execute(t, h)
		if sel != nil && use.RequiresItem() {
			msg := fmt.Sprintf("Used %s on %s.", sel.Name, h.Name)
			t.Feedback(msg, p)
			t.Describe(msg)
			e.inv.ClearSelection()
		}
		t.RefreshInventory()
		return
	}

	if sel == nil {
		if pick := h.Find(types.Pickup, t); pick != nil {
			pick.Execute(t, h)
			// Removed from the scene it was clicked in, even if the action
			// changed scenes.
			effects.RemoveHotspot(t, scene, h.ID)
			t.Describe(fmt.Sprintf("Picked up %s.", h.Name))
			t.RefreshInventory()
			return
		}
	}

	if ex := h.Find(types.Examine, t); ex != nil {
		ex.Execute(t, h)
		return
	}

	var msg string
	if sel != nil {
		msg = fmt.Sprintf("Can't use %s on %s.", sel.Name, h.Name)
	} else {
		msg = fmt.Sprintf("Nothing happens at the %s.", h.Name)
	}
	t.Feedback(msg, p)
	t.Describe(msg)
}

// Hover returns the hotspot under p, or nil. Always nil outside IDLE.
func (e *Engine) Hover(p types.Point) *world.Hotspot {
	if e.mode != types.ModeIdle || e.scene == nil {
		return nil
	}
	return e.scene.HotspotAt(p)
}

// SelectItem toggles selection of a held item by ID. Selecting an item shows
// its description.
func (e *Engine) SelectItem(id string) types.Result {
	t := e.begin()
	it := e.inv.Find(id)
	if it == nil {
		return t.result()
	}
	e.selectItem(t, it)
	return t.result()
}

// SelectIndex toggles selection of the item in inventory slot i.
func (e *Engine) SelectIndex(i int) types.Result {
	t := e.begin()
	items := e.inv.Items()
	if i < 0 || i >= len(items) {
		return t.result()
	}
	e.selectItem(t, items[i])
	return t.result()
}

func (e *Engine) selectItem(t *turn, it *types.Item) {
	e.inv.Select(it)
	if e.inv.Selected() == it {
		t.Describe(it.Desc)
	}
	t.RefreshInventory()
}

func (e *Engine) changeScene(t *turn, id string) bool {
	next, ok := e.world.Scene(id)
	if !ok {
		e.log.Warn("Can't go there.", "scene", id)
		return false
	}
	e.scene = next
	e.log.Info("location", "scene", next.ID, "title", next.Title)
	t.Emit(types.Event{
		Type: EventSceneChanged,
		Data: map[string]any{"scene": next.ID, "title": next.Title},
	})
	t.Describe(next.Description)
	return true
}

// Mode returns the current top-level state.
func (e *Engine) Mode() types.Mode { return e.mode }

// Scene returns the current scene, or nil.
func (e *Engine) Scene() *world.Scene { return e.scene }

// Location returns the current scene's title and description.
func (e *Engine) Location() (title, description string) {
	if e.scene == nil {
		return "", ""
	}
	return e.scene.Title, e.scene.Description
}

// Narrative returns the current narrative text.
func (e *Engine) Narrative() string { return e.narrative }

// InteractionCount returns the number of counted clicks.
func (e *Engine) InteractionCount() int { return e.count }

// Inventory returns the player's inventory.
func (e *Engine) Inventory() *inventory.Inventory { return e.inv }

// World returns the world registry.
func (e *Engine) World() *world.World { return e.world }

// RNG returns the engine's random source.
func (e *Engine) RNG() *RNG { return e.rng }
