// Package effects executes compiled commands against the engine context.
// Every command acts on the scene that owns the triggering hotspot.
package effects

import (
	"github.com/nathoo/clickcore/engine/command"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// Event types emitted by Apply.
const (
	EventItemAdded      = "item_added"
	EventItemRemoved    = "item_removed"
	EventHotspotRemoved = "hotspot_removed"
	EventHotspotAdded   = "hotspot_added"
)

// Apply executes cmd. scene is the hotspot's owning scene; h is the
// hotspot whose interaction fired.
func Apply(ctx world.Context, scene *world.Scene, h *world.Hotspot, cmd command.Command) {
	switch c := cmd.(type) {
	case command.ChangeScene:
		ctx.ChangeScene(c.SceneID)

	case command.GiveItem:
		if GiveItem(ctx, c.ItemID) {
			ctx.RefreshInventory()
		}

	case command.ExamineDesc:
		ctx.Describe(c.Text)

	case command.ItemUseResult:
		applyItemUseResult(ctx, scene, h, c)

	case command.StartPuzzle:
		applyStartPuzzle(ctx, scene, h, c)

	case command.Unknown:
		ctx.Logger().Warn("unknown command", "command", c.Name, "hotspot", h.ID)
		ctx.Describe("Unknown command: " + c.Name)

	case command.Noop, nil:
		// nothing
	}
}

// GiveItem adds a registered item to the inventory. It reports false when
// the item is unknown or the inventory is full.
func GiveItem(ctx world.Context, id string) bool {
	it, ok := ctx.Item(id)
	if !ok {
		ctx.Logger().Warn("give: unknown item", "item", id)
		return false
	}
	if !ctx.Inventory().Add(it) {
		ctx.Logger().Info("give: inventory full", "item", id)
		return false
	}
	ctx.Emit(types.Event{Type: EventItemAdded, Data: map[string]any{"item": id}})
	return true
}

func applyItemUseResult(ctx world.Context, scene *world.Scene, h *world.Hotspot, c command.ItemUseResult) {
	inv := ctx.Inventory()
	if c.RemoveSelected {
		if sel := inv.Selected(); sel != nil {
			inv.Remove(sel)
			ctx.Emit(types.Event{Type: EventItemRemoved, Data: map[string]any{"item": sel.ID}})
		}
	}
	if c.AddItem != "" {
		GiveItem(ctx, c.AddItem)
	}
	if c.Replace != nil {
		RemoveHotspot(ctx, scene, c.Replace.OldID)
		Replace(ctx, scene, h, c.Replace.NewID)
	}
	inv.ClearSelection()
	ctx.RefreshInventory()
}

func applyStartPuzzle(ctx world.Context, scene *world.Scene, h *world.Hotspot, c command.StartPuzzle) {
	at := world.Origin(h.Bounds)
	ctx.StartPuzzle(world.PuzzleRequest{
		Kind:     c.Puzzle,
		Solution: c.Solution,
		Anchor:   at,
		OnSolve: func(ctx world.Context) {
			ctx.Feedback("Success!", at)
			if c.PostSolve != nil {
				applyPostSolve(ctx, scene, h, c.PostSolve)
			}
			if c.RemoveHotspot != "" {
				RemoveHotspot(ctx, scene, c.RemoveHotspot)
				FollowUp(ctx, scene, h, c.RemoveHotspot)
			}
		},
		OnExit: func(ctx world.Context) {
			ctx.Feedback("You backed away.", at)
		},
	})
}

func applyPostSolve(ctx world.Context, scene *world.Scene, h *world.Hotspot, cmd command.Command) {
	give, ok := cmd.(command.GiveItem)
	if !ok {
		Apply(ctx, scene, h, cmd)
		return
	}
	if GiveItem(ctx, give.ItemID) {
		it, _ := ctx.Item(give.ItemID)
		ctx.Feedback("Acquired "+it.Name+".", world.Origin(h.Bounds))
		ctx.RefreshInventory()
	}
}

// RemoveHotspot removes id from scene and emits an event if it was present.
func RemoveHotspot(ctx world.Context, scene *world.Scene, id string) {
	if scene.Remove(id) {
		ctx.Emit(types.Event{
			Type: EventHotspotRemoved,
			Data: map[string]any{"scene": scene.ID, "hotspot": id},
		})
	}
}

func addHotspot(ctx world.Context, scene *world.Scene, h *world.Hotspot) {
	scene.Add(h)
	ctx.Emit(types.Event{
		Type: EventHotspotAdded,
		Data: map[string]any{"scene": scene.ID, "hotspot": h.ID},
	})
}
