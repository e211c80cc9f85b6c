package engine

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/nathoo/clickcore/engine/inventory"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
)

// turn is the world.Context handed to conditions and actions while the
// engine processes one input. It collects the outbound Result.
type turn struct {
	e   *Engine
	res types.Result
}

var _ world.Context = (*turn)(nil)

func (e *Engine) begin() *turn {
	return &turn{e: e}
}

func (t *turn) result() types.Result {
	return t.res
}

func (t *turn) Inventory() *inventory.Inventory { return t.e.inv }

func (t *turn) Item(id string) (*types.Item, bool) { return t.e.world.Item(id) }

func (t *turn) Scene(id string) (*world.Scene, bool) { return t.e.world.Scene(id) }

func (t *turn) ChangeScene(id string) bool { return t.e.changeScene(t, id) }

func (t *turn) Feedback(text string, at types.Point) {
	t.res.Feedback = append(t.res.Feedback, types.Feedback{
		ID:       uuid.New(),
		Text:     text,
		At:       at,
		Duration: types.FeedbackDuration,
	})
}

func (t *turn) Describe(text string) {
	t.e.narrative = text
	t.Emit(types.Event{Type: EventNarrative, Data: map[string]any{"text": text}})
}

func (t *turn) RefreshInventory() {
	ids := make([]string, 0, t.e.inv.Len())
	for _, it := range t.e.inv.Items() {
		ids = append(ids, it.ID)
	}
	var selected string
	if sel := t.e.inv.Selected(); sel != nil {
		selected = sel.ID
	}
	t.Emit(types.Event{
		Type: EventInventory,
		Data: map[string]any{"items": ids, "selected": selected},
	})
}

func (t *turn) StartPuzzle(req world.PuzzleRequest) { t.e.startPuzzle(t, req) }

func (t *turn) Emit(ev types.Event) {
	t.res.Events = append(t.res.Events, ev)
}

func (t *turn) Logger() *slog.Logger { return t.e.log }

func (t *turn) schedule(kind types.TimerKind, attempt uuid.UUID) {
	t.res.Timers = append(t.res.Timers, types.Timer{
		Kind:    kind,
		Attempt: attempt,
		Delay:   puzzleDelay,
	})
}
