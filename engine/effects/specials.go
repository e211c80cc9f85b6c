package effects

import (
	"github.com/nathoo/clickcore/engine/puzzle"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// Hand-authored hotspots installed by REPLACE_HOTSPOT and by puzzle
// follow-ups. Content cannot describe these; they live here so the generic
// compiler stays free of game-specific branches.

// AtticBounds is where the attic hatch appears once unlocked.
var AtticBounds = types.Rect{X: 300, Y: 100, W: 400, H: 200}

// builder makes a replacement hotspot. trigger is the hotspot whose
// interaction caused the replacement.
type builder func(ctx world.Context, scene *world.Scene, trigger *world.Hotspot) *world.Hotspot

var replacements = map[string]builder{
	"openPantry":     openPantry,
	"mechanismReady": mechanismReady,
	"mainAttic":      mainAttic,
}

// followUps run after a puzzle's hotspot has been removed, keyed by that
// hotspot ID.
var followUps = map[string]builder{
	"safe": func(_ world.Context, _ *world.Scene, t *world.Hotspot) *world.Hotspot {
		return world.NewHotspot("openSafe", "Open Safe (Empty)", t.Bounds)
	},
	"tilePuzzleBox": func(_ world.Context, _ *world.Scene, t *world.Hotspot) *world.Hotspot {
		return world.NewHotspot("openBox", "Open Storage Box (Empty)", t.Bounds)
	},
	"leverMechanism_hatchChain": func(ctx world.Context, scene *world.Scene, t *world.Hotspot) *world.Hotspot {
		RemoveHotspot(ctx, scene, "leverMechanism")
		return mainAttic(ctx, scene, t)
	},
}

// Replace installs the special hotspot newID into scene. Unknown IDs install
// nothing.
func Replace(ctx world.Context, scene *world.Scene, trigger *world.Hotspot, newID string) {
	build, ok := replacements[newID]
	if !ok {
		ctx.Logger().Warn("replace: no hotspot registered", "hotspot", newID, "scene", scene.ID)
		return
	}
	addHotspot(ctx, scene, build(ctx, scene, trigger))
}

// FollowUp applies the post-solve follow-up for a removed puzzle hotspot,
// if one is registered.
func FollowUp(ctx world.Context, scene *world.Scene, trigger *world.Hotspot, removedID string) {
	build, ok := followUps[removedID]
	if !ok {
		return
	}
	addHotspot(ctx, scene, build(ctx, scene, trigger))
}

// HasReplacement reports whether id names a hand-authored hotspot.
func HasReplacement(id string) bool {
	_, ok := replacements[id]
	return ok
}

func openPantry(_ world.Context, _ *world.Scene, t *world.Hotspot) *world.Hotspot {
	return world.NewHotspot("openPantry", "Pantry Door (Open)", t.Bounds,
		describe("The pantry is now open, nothing else of interest."),
	)
}

func mechanismReady(_ world.Context, scene *world.Scene, t *world.Hotspot) *world.Hotspot {
	use := &world.Interaction{
		Type: types.Use,
		Cond: func(ctx world.Context, _ *world.Hotspot) bool {
			return ctx.Inventory().Contains("crypticSymbol")
		},
		Action: func(ctx world.Context, h *world.Hotspot) {
			at := world.Origin(h.Bounds)
			ctx.StartPuzzle(world.PuzzleRequest{
				Kind:     puzzle.KindDial,
				Solution: puzzle.DefaultDialTarget,
				Anchor:   at,
				OnSolve: func(ctx world.Context) {
					ctx.Feedback("The drawer slides open! Success!", at)
					ctx.Describe("The drawer opens! You found the Coded Dossier. Game Complete!")
					GiveItem(ctx, "codedDossier")
					RemoveHotspot(ctx, scene, "mechanismReady")
					ctx.Inventory().ClearSelection()
					ctx.RefreshInventory()
				},
			})
		},
	}
	return world.NewHotspot("mechanismReady", "Dial Mechanism (Ready)", t.Bounds,
		use,
		describe("The brass handle is now in place. A triple dial is visible (A, B, C, D). You need a sequence."),
	)
}

func mainAttic(ctx world.Context, scene *world.Scene, _ *world.Hotspot) *world.Hotspot {
	RemoveHotspot(ctx, scene, "hatchChain")
	return world.NewHotspot("mainAttic", "Hatch to the Attic", AtticBounds,
		&world.Interaction{
			Type:   types.Use,
			Action: func(ctx world.Context, _ *world.Hotspot) { ctx.ChangeScene("attic_interior") },
		},
	)
}

func describe(text string) *world.Interaction {
	return &world.Interaction{
		Type:   types.Examine,
		Action: func(ctx world.Context, _ *world.Hotspot) { ctx.Describe(text) },
	}
}
