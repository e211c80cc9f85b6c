package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/nathoo/clickcore/engine/command"
	"github.com/nathoo/clickcore/engine/effects"
	"github.com/nathoo/clickcore/engine/puzzle"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// interaction builds a compiled interaction the way content does: an
// optional required-item condition, feedback at the hotspot origin, then the
// parsed command.
func interaction(t *testing.T, scene *world.Scene, typ types.InteractionType, required, cmd, feedback string) *world.Interaction {
	t.Helper()
	c, err := command.Parse(cmd)
	if err != nil {
		t.Fatalf("Parse(%q): %v", cmd, err)
	}
	i := &world.Interaction{Type: typ, RequiredItem: required}
	if required != "" {
		i.Cond = func(ctx world.Context, _ *world.Hotspot) bool {
			sel := ctx.Inventory().Selected()
			return sel != nil && sel.ID == required
		}
	}
	i.Action = func(ctx world.Context, h *world.Hotspot) {
		if feedback != "" {
			ctx.Feedback(feedback, world.Origin(h.Bounds))
		}
		effects.Apply(ctx, scene, h, c)
	}
	return i
}

func rect(x, y, w, h int) types.Rect { return types.Rect{X: x, Y: y, W: w, H: h} }

func pt(x, y int) types.Point { return types.Point{X: x, Y: y} }

// testWorld is a small manor: a kitchen with a locked pantry, a key on the
// floor, a safe and a note; and a hallway.
func testWorld(t *testing.T) *world.World {
	w := world.New()
	for _, it := range []*types.Item{
		{ID: "rustyKey", Name: "Rusty Key", Desc: "An old, rusty key."},
		{ID: "brassHandle", Name: "Brass Handle", Desc: "A polished handle."},
		{ID: "goldCoin", Name: "Gold Coin", Desc: "Shiny."},
		{ID: "note", Name: "Note", Desc: "A scrap of paper."},
	} {
		w.AddItem(it)
	}

	kitchen := world.NewScene("kitchen", "Kitchen", "A cold kitchen.")
	kitchen.Add(world.NewHotspot("lockedPantry", "Pantry Door", rect(0, 0, 100, 100)))
	pantry, _ := kitchen.Hotspot("lockedPantry")
	pantry.AddInteraction(interaction(t, kitchen, types.Use, "rustyKey",
		"ITEM_USE_RESULT:REMOVE_ITEM:rustyKey:ADD_ITEM:brassHandle:REPLACE_HOTSPOT:lockedPantry:openPantry", ""))
	pantry.AddInteraction(interaction(t, kitchen, types.Examine, "", "EXAMINE_DESC:The pantry is locked.", ""))

	kitchen.Add(world.NewHotspot("keyOnFloor", "Rusty Key", rect(200, 0, 50, 50),
		interaction(t, kitchen, types.Pickup, "", "GIVE_ITEM:rustyKey", ""),
		interaction(t, kitchen, types.Examine, "", "EXAMINE_DESC:A key lies on the floor.", ""),
	))
	kitchen.Add(world.NewHotspot("safe", "Wall Safe", rect(300, 0, 50, 50),
		interaction(t, kitchen, types.Use, "", "START_PUZZLE:Keypad:1234:safe:GIVE_ITEM:goldCoin", ""),
	))
	kitchen.Add(world.NewHotspot("door", "Hall Door", rect(400, 0, 50, 100),
		interaction(t, kitchen, types.Use, "", "CHANGE_SCENE:hall", "You step through."),
	))
	kitchen.Add(world.NewHotspot("stove", "Stove", rect(0, 200, 50, 50)))
	w.AddScene(kitchen)
	w.AddScene(world.NewScene("hall", "Hall", "A long hall."))
	w.Start = "kitchen"
	return w
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testWorld(t),
		WithSeed(42),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func hasEvent(r types.Result, typ string) bool {
	for _, ev := range r.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func feedbackTexts(r types.Result) []string {
	var out []string
	for _, f := range r.Feedback {
		out = append(out, f.Text)
	}
	return out
}

func TestNew_EntersStartScene(t *testing.T) {
	e := newTestEngine(t)

	if e.Mode() != types.ModeIdle {
		t.Errorf("Mode() = %q, want IDLE", e.Mode())
	}
	title, desc := e.Location()
	if title != "Kitchen" || desc != "A cold kitchen." {
		t.Errorf("Location() = %q, %q", title, desc)
	}
	if e.Narrative() != "A cold kitchen." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if e.Inventory().Capacity() != 6 {
		t.Errorf("Capacity() = %d, want 6", e.Inventory().Capacity())
	}
}

func TestNew_UnknownStartScene(t *testing.T) {
	w := testWorld(t)
	w.Start = "nowhere"
	e := New(w, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	if e.Scene() != nil {
		t.Fatal("expected no scene")
	}
	r := e.HandleClick(pt(10, 10))
	if len(r.Feedback) != 0 || e.InteractionCount() != 0 {
		t.Error("clicks without a scene should be ignored")
	}
}

func TestHandleClick_NothingHere(t *testing.T) {
	e := newTestEngine(t)

	r := e.HandleClick(pt(900, 900))
	if got := feedbackTexts(r); len(got) != 1 || got[0] != "Nothing here." {
		t.Errorf("feedback = %v, want [Nothing here.]", got)
	}
	if r.Feedback[0].At != pt(900, 900) {
		t.Errorf("feedback at %v, want click point", r.Feedback[0].At)
	}
	if e.Narrative() != "Nothing here." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if e.InteractionCount() != 0 {
		t.Errorf("InteractionCount() = %d, want 0", e.InteractionCount())
	}
	if hasEvent(r, EventInteractions) {
		t.Error("empty click should not emit an interactions event")
	}
}

func TestHandleClick_PickupRemovesHotspot(t *testing.T) {
	e := newTestEngine(t)

	r := e.HandleClick(pt(210, 10))
	if !e.Inventory().Contains("rustyKey") {
		t.Fatal("expected rustyKey in inventory")
	}
	if _, ok := e.Scene().Hotspot("keyOnFloor"); ok {
		t.Error("picked-up hotspot should be removed")
	}
	if e.Narrative() != "Picked up Rusty Key." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if e.InteractionCount() != 1 {
		t.Errorf("InteractionCount() = %d, want 1", e.InteractionCount())
	}
	if !hasEvent(r, EventInventory) || !hasEvent(r, effects.EventHotspotRemoved) {
		t.Errorf("missing events: %+v", r.Events)
	}
}

func TestHandleClick_PickupBlockedWhileItemSelected(t *testing.T) {
	e := newTestEngine(t)
	e.Inventory().Add(&types.Item{ID: "note", Name: "Note"})
	e.SelectItem("note")

	e.HandleClick(pt(210, 10))

	if e.Inventory().Contains("rustyKey") {
		t.Error("PICKUP must not fire while an item is selected")
	}
	// EXAMINE still fires.
	if e.Narrative() != "A key lies on the floor." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if _, ok := e.Scene().Hotspot("keyOnFloor"); !ok {
		t.Error("hotspot should remain")
	}
}

func TestHandleClick_UsePreemptsExamine(t *testing.T) {
	e := newTestEngine(t)
	e.HandleClick(pt(210, 10)) // pick up key
	e.SelectItem("rustyKey")

	r := e.HandleClick(pt(50, 50))

	inv := e.Inventory()
	if inv.Contains("rustyKey") || !inv.Contains("brassHandle") {
		t.Errorf("inventory = %v", inv.Items())
	}
	if inv.Selected() != nil {
		t.Error("selection should be cleared")
	}
	if _, ok := e.Scene().Hotspot("lockedPantry"); ok {
		t.Error("lockedPantry should be gone")
	}
	open, ok := e.Scene().Hotspot("openPantry")
	if !ok {
		t.Fatal("openPantry should be installed")
	}
	if open.Bounds != rect(0, 0, 100, 100) {
		t.Errorf("openPantry bounds = %v", open.Bounds)
	}
	if e.Narrative() != "Used Rusty Key on Pantry Door." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if got := feedbackTexts(r); len(got) != 1 || got[0] != "Used Rusty Key on Pantry Door." {
		t.Errorf("feedback = %v", got)
	}
	if e.InteractionCount() != 2 {
		t.Errorf("InteractionCount() = %d, want 2", e.InteractionCount())
	}
}

func TestHandleClick_UseBeatsPickupRegardlessOfOrder(t *testing.T) {
	tests := []struct {
		name  string
		order []types.InteractionType
	}{
		{"pickup first", []types.InteractionType{types.Pickup, types.Use}},
		{"use first", []types.InteractionType{types.Use, types.Pickup}},
		{"pickup and examine first", []types.InteractionType{types.Pickup, types.Examine, types.Use}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			kitchen := e.Scene()
			crate := world.NewHotspot("crate", "Crate", rect(0, 300, 50, 50))
			for _, typ := range tt.order {
				switch typ {
				case types.Pickup:
					crate.AddInteraction(interaction(t, kitchen, types.Pickup, "", "GIVE_ITEM:note", ""))
				case types.Examine:
					crate.AddInteraction(interaction(t, kitchen, types.Examine, "", "EXAMINE_DESC:A wooden crate.", ""))
				case types.Use:
					crate.AddInteraction(interaction(t, kitchen, types.Use, "", "EXAMINE_DESC:The crate rattles.", ""))
				}
			}
			kitchen.Add(crate)

			e.HandleClick(pt(10, 310))

			if e.Narrative() != "The crate rattles." {
				t.Errorf("Narrative() = %q, want the USE action", e.Narrative())
			}
			if _, ok := kitchen.Hotspot("crate"); !ok {
				t.Error("USE should not remove the hotspot")
			}
			if e.Inventory().Contains("note") {
				t.Error("PICKUP should not have fired")
			}
			if e.InteractionCount() != 1 {
				t.Errorf("InteractionCount() = %d, want 1", e.InteractionCount())
			}
		})
	}
}

func TestHandleClick_UsedMessageNeedsRequiredItem(t *testing.T) {
	e := newTestEngine(t)
	kitchen := e.Scene()
	// Gated on holding the key, not on selecting it.
	shelf := world.NewHotspot("shelf", "Shelf", rect(0, 300, 50, 50), &world.Interaction{
		Type: types.Use,
		Cond: func(ctx world.Context, _ *world.Hotspot) bool {
			return ctx.Inventory().Contains("rustyKey")
		},
		Action: func(ctx world.Context, _ *world.Hotspot) {
			ctx.Describe("A drawer slides out.")
		},
	})
	kitchen.Add(shelf)

	e.HandleClick(pt(210, 10)) // pick up key
	e.SelectItem("rustyKey")
	r := e.HandleClick(pt(10, 310))

	if e.Narrative() != "A drawer slides out." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if got := feedbackTexts(r); len(got) != 0 {
		t.Errorf("feedback = %v, want none", got)
	}
	if sel := e.Inventory().Selected(); sel == nil || sel.ID != "rustyKey" {
		t.Errorf("selection should be kept, got %+v", sel)
	}
}

func TestHandleClick_ExamineWithoutItem(t *testing.T) {
	e := newTestEngine(t)

	e.HandleClick(pt(50, 50))
	if e.Narrative() != "The pantry is locked." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
}

func TestHandleClick_Fallbacks(t *testing.T) {
	e := newTestEngine(t)

	e.HandleClick(pt(10, 210))
	if e.Narrative() != "Nothing happens at the Stove." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}

	e.Inventory().Add(&types.Item{ID: "note", Name: "Note"})
	e.SelectItem("note")
	r := e.HandleClick(pt(10, 210))
	if e.Narrative() != "Can't use Note on Stove." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if len(r.Feedback) != 1 {
		t.Errorf("feedback = %v", feedbackTexts(r))
	}
	if e.InteractionCount() != 2 {
		t.Errorf("InteractionCount() = %d, want 2", e.InteractionCount())
	}
	if e.Inventory().Selected() == nil {
		t.Error("fallback should not clear the selection")
	}
}

func TestHandleClick_ChangeScene(t *testing.T) {
	e := newTestEngine(t)

	r := e.HandleClick(pt(410, 10))
	if e.Scene().ID != "hall" {
		t.Fatalf("Scene() = %s, want hall", e.Scene().ID)
	}
	if e.Narrative() != "A long hall." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	if got := feedbackTexts(r); len(got) != 1 || got[0] != "You step through." {
		t.Errorf("feedback = %v", got)
	}
	if r.Feedback[0].At != pt(400, 0) {
		t.Errorf("feedback at %v, want hotspot origin", r.Feedback[0].At)
	}
	if !hasEvent(r, EventSceneChanged) {
		t.Error("expected scene_changed event")
	}
}

func TestHover(t *testing.T) {
	e := newTestEngine(t)

	if h := e.Hover(pt(10, 10)); h == nil || h.ID != "lockedPantry" {
		t.Errorf("Hover() = %v, want lockedPantry", h)
	}
	if h := e.Hover(pt(900, 900)); h != nil {
		t.Errorf("Hover() = %s, want nil", h.ID)
	}
	e.HandleClick(pt(310, 10)) // enter keypad
	if h := e.Hover(pt(10, 10)); h != nil {
		t.Error("Hover() should be nil during a puzzle")
	}
}

func TestSelectItem_ShowsDescription(t *testing.T) {
	e := newTestEngine(t)
	e.HandleClick(pt(210, 10))

	e.SelectIndex(0)
	if e.Narrative() != "An old, rusty key." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	e.SelectIndex(0)
	if e.Inventory().Selected() != nil {
		t.Error("second select should toggle off")
	}
	// Out of range and unknown IDs are ignored.
	e.SelectIndex(5)
	e.SelectItem("ghost")
	if e.Inventory().Selected() != nil {
		t.Error("expected no selection")
	}
}

func solveKeypad(t *testing.T, e *Engine, code string) types.Timer {
	t.Helper()
	var last types.Result
	for _, k := range code {
		e.PuzzleInput(puzzle.Input{Key: string(k)})
	}
	last = e.PuzzleInput(puzzle.Input{Key: "ENT"})
	if len(last.Timers) != 1 || last.Timers[0].Kind != types.TimerSolve {
		t.Fatalf("timers = %+v, want one solve timer", last.Timers)
	}
	return last.Timers[0]
}

func TestKeypadPuzzle_SolveAwardsAndReplaces(t *testing.T) {
	e := newTestEngine(t)

	e.HandleClick(pt(310, 10))
	if e.Mode() != types.ModePuzzle {
		t.Fatalf("Mode() = %q, want PUZZLE", e.Mode())
	}
	if e.Narrative() != "Enter the 4-digit code..." {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
	// Clicks are ignored in PUZZLE mode.
	if r := e.HandleClick(pt(50, 50)); len(r.Events) != 0 {
		t.Errorf("click during puzzle produced %+v", r.Events)
	}

	timer := solveKeypad(t, e, "1234")
	if v, _ := e.Puzzle(); v.Display != "SUCCESS" {
		t.Errorf("display = %q, want SUCCESS", v.Display)
	}
	// Still in PUZZLE until the continuation fires.
	if e.Mode() != types.ModePuzzle {
		t.Errorf("Mode() = %q before resume", e.Mode())
	}

	r := e.Resume(timer)
	if e.Mode() != types.ModeIdle {
		t.Errorf("Mode() = %q, want IDLE", e.Mode())
	}
	if !e.Inventory().Contains("goldCoin") {
		t.Error("expected goldCoin")
	}
	if _, ok := e.Scene().Hotspot("safe"); ok {
		t.Error("safe should be removed")
	}
	if h, ok := e.Scene().Hotspot("openSafe"); !ok || h.Name != "Open Safe (Empty)" {
		t.Error("openSafe should be installed")
	}
	got := feedbackTexts(r)
	if len(got) != 2 || got[0] != "Success!" || got[1] != "Acquired Gold Coin." {
		t.Errorf("feedback = %v", got)
	}
	if _, ok := e.Puzzle(); ok {
		t.Error("no puzzle should be active")
	}

	// The same timer again is stale.
	if r := e.Resume(timer); len(r.Events) != 0 || len(r.Feedback) != 0 {
		t.Errorf("replayed timer produced %+v", r)
	}
}

func TestKeypadPuzzle_RejectThenClear(t *testing.T) {
	e := newTestEngine(t)
	e.HandleClick(pt(310, 10))

	e.PuzzleInput(puzzle.Input{Key: "9"})
	r := e.PuzzleInput(puzzle.Input{Key: "ENT"})
	if len(r.Timers) != 1 || r.Timers[0].Kind != types.TimerClear {
		t.Fatalf("timers = %+v, want one clear timer", r.Timers)
	}
	if v, _ := e.Puzzle(); v.Display != "ERROR" {
		t.Errorf("display = %q, want ERROR", v.Display)
	}
	e.Resume(r.Timers[0])
	if v, _ := e.Puzzle(); v.Display != "" {
		t.Errorf("display = %q, want empty", v.Display)
	}
	if e.Mode() != types.ModePuzzle {
		t.Error("rejection should not end the puzzle")
	}
}

func TestStopPuzzle_RunsExit(t *testing.T) {
	e := newTestEngine(t)
	e.HandleClick(pt(310, 10))

	r := e.StopPuzzle()
	if e.Mode() != types.ModeIdle {
		t.Errorf("Mode() = %q, want IDLE", e.Mode())
	}
	if got := feedbackTexts(r); len(got) != 1 || got[0] != "You backed away." {
		t.Errorf("feedback = %v", got)
	}
	if e.Narrative() != "A cold kitchen." {
		t.Errorf("Narrative() = %q, want scene description", e.Narrative())
	}
	if _, ok := e.Scene().Hotspot("safe"); !ok {
		t.Error("safe should remain after backing out")
	}
	if r := e.StopPuzzle(); len(r.Feedback) != 0 {
		t.Error("second stop should do nothing")
	}
}

func TestResume_StaleTimerAfterRestart(t *testing.T) {
	e := newTestEngine(t)
	e.HandleClick(pt(310, 10))
	stale := solveKeypad(t, e, "1234")

	// Back out before the continuation fires, then start a fresh attempt.
	e.StopPuzzle()
	e.HandleClick(pt(310, 10))

	r := e.Resume(stale)
	if len(r.Events) != 0 || len(r.Feedback) != 0 {
		t.Errorf("stale timer produced %+v", r)
	}
	if e.Mode() != types.ModePuzzle {
		t.Errorf("Mode() = %q, want PUZZLE", e.Mode())
	}
	if e.Inventory().Contains("goldCoin") {
		t.Error("stale timer must not award the prize")
	}
	if _, ok := e.Scene().Hotspot("safe"); !ok {
		t.Error("stale timer must not remove the safe")
	}
}

func TestStartPuzzle_Unknown(t *testing.T) {
	e := newTestEngine(t)

	e.StartPuzzle(world.PuzzleRequest{Kind: "Crossword"})
	if e.Mode() != types.ModeIdle {
		t.Errorf("Mode() = %q, want IDLE", e.Mode())
	}
	if e.Narrative() != "Unknown puzzle: Crossword" {
		t.Errorf("Narrative() = %q", e.Narrative())
	}
}

func TestStartPuzzle_TileIsDeterministicPerSeed(t *testing.T) {
	board := func() []string {
		e := newTestEngine(t)
		e.StartPuzzle(world.PuzzleRequest{Kind: puzzle.KindTile})
		v, ok := e.Puzzle()
		if !ok {
			t.Fatal("expected an active puzzle")
		}
		return v.Cells
	}
	a, b := board(), board()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("boards differ: %v vs %v", a, b)
		}
	}
}

func TestLeverPuzzle_ThroughEngine(t *testing.T) {
	e := newTestEngine(t)
	solved := false
	e.StartPuzzle(world.PuzzleRequest{
		Kind:    puzzle.KindLever,
		OnSolve: func(ctx world.Context) { solved = true; ctx.Describe("Passage open.") },
	})

	r := e.PuzzleInput(puzzle.Input{Index: 1})
	if got := feedbackTexts(r); len(got) != 1 || got[0] != "Lever 2 moved UP" {
		t.Errorf("feedback = %v", got)
	}
	if r.Feedback[0].At != puzzle.LeverFeedbackAt {
		t.Errorf("feedback at %v", r.Feedback[0].At)
	}
	if len(r.Timers) != 1 {
		t.Fatalf("timers = %+v", r.Timers)
	}
	// Input after solve is ignored.
	if r := e.PuzzleInput(puzzle.Input{Index: 0}); len(r.Events) != 0 {
		t.Error("input after solve should be ignored")
	}

	e.Resume(r.Timers[0])
	if !solved {
		t.Error("OnSolve should run")
	}
	if e.Narrative() != "Passage open." {
		t.Errorf("Narrative() = %q, continuation text should survive", e.Narrative())
	}
}

func TestEndPuzzle_NoContinuation(t *testing.T) {
	e := newTestEngine(t)
	exited := false
	e.StartPuzzle(world.PuzzleRequest{
		Kind:   puzzle.KindDial,
		OnExit: func(world.Context) { exited = true },
	})
	e.EndPuzzle()
	if e.Mode() != types.ModeIdle || exited {
		t.Errorf("Mode() = %q, exited = %v", e.Mode(), exited)
	}
}
