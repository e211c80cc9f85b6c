// Package loader reads content descriptions (JSON, YAML or a Lua DSL) into
// types.Content and compiles them into a live world.World. Commands are
// parsed here, once; nothing is parsed at click time.
package loader

import (
	"log/slog"
	"sort"

	"github.com/nathoo/clickcore/engine/command"
	"github.com/nathoo/clickcore/engine/effects"
	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
}

// rawScene holds a scene table before compilation.
type rawScene struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getInts returns the numeric array part of a table field. Non-numbers are
// dropped, which validation then reports as malformed.
func getInts(tbl *lua.LTable, key string) []int {
	t := getTable(tbl, key)
	if t == nil {
		return nil
	}
	var out []int
	for i := 1; i <= t.Len(); i++ {
		if n, ok := t.RawGetInt(i).(lua.LNumber); ok {
			out = append(out, int(n))
		}
	}
	return out
}

// arrayTables returns the table entries of tbl's array part.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.Len(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// compileLua converts collected Lua tables into content records.
func compileLua(coll *collector) *types.Content {
	c := &types.Content{}
	if coll.game != nil {
		c.StartSceneID = getString(coll.game, "start")
	}
	for _, raw := range coll.items {
		c.Items = append(c.Items, types.ItemDef{
			ID:   raw.id,
			Name: getString(raw.table, "name"),
			Desc: getString(raw.table, "desc"),
		})
	}
	for _, raw := range coll.scenes {
		sd := types.SceneDef{
			ID:          raw.id,
			Title:       getString(raw.table, "title"),
			Description: getString(raw.table, "description"),
		}
		for _, ht := range arrayTables(getTable(raw.table, "hotspots")) {
			sd.Hotspots = append(sd.Hotspots, compileLuaHotspot(ht))
		}
		c.Scenes = append(c.Scenes, sd)
	}
	return c
}

func compileLuaHotspot(tbl *lua.LTable) types.HotspotDef {
	id := getString(tbl, hotspotIDKey)
	if id == "" {
		id = getString(tbl, "id")
	}
	hd := types.HotspotDef{
		ID:     id,
		Name:   getString(tbl, "name"),
		Bounds: getInts(tbl, "bounds"),
	}
	// Interactions may be listed inline or under "interactions".
	inline := arrayTables(tbl)
	inline = append(inline, arrayTables(getTable(tbl, "interactions"))...)
	for _, it := range inline {
		hd.Interactions = append(hd.Interactions, types.InteractionDef{
			Type:         getString(it, "type"),
			RequiredItem: getString(it, "requires"),
			Command:      getString(it, "command"),
			Feedback:     getString(it, "feedback"),
		})
	}
	return hd
}

// Compile builds the live world from content records. Authoring mistakes
// degrade: bad bounds become an empty rectangle, unknown interaction types
// are skipped, unparsable commands become no-ops. Each is logged.
func Compile(c *types.Content, logger *slog.Logger) *world.World {
	if logger == nil {
		logger = slog.Default()
	}
	w := world.New()
	w.Start = c.StartSceneID

	for _, d := range c.Items {
		w.AddItem(&types.Item{ID: d.ID, Name: d.Name, Desc: d.Desc})
	}
	for _, sd := range c.Scenes {
		scene := world.NewScene(sd.ID, sd.Title, sd.Description)
		for _, hd := range sd.Hotspots {
			h := world.NewHotspot(hd.ID, hd.Name, compileBounds(hd, logger))
			for _, idef := range hd.Interactions {
				if i, ok := compileInteraction(idef, scene, hd.ID, logger); ok {
					h.AddInteraction(i)
				}
			}
			scene.Add(h)
		}
		w.AddScene(scene)
	}
	return w
}

func compileBounds(hd types.HotspotDef, logger *slog.Logger) types.Rect {
	b := hd.Bounds
	if len(b) != 4 {
		logger.Warn("malformed bounds", "hotspot", hd.ID, "bounds", b)
		return types.Rect{}
	}
	return types.Rect{X: b[0], Y: b[1], W: b[2], H: b[3]}
}

func compileInteraction(d types.InteractionDef, scene *world.Scene, hotspotID string, logger *slog.Logger) (*world.Interaction, bool) {
	typ, ok := interactionTypes[d.Type]
	if !ok {
		logger.Warn("unknown interaction type", "hotspot", hotspotID, "type", d.Type)
		return nil, false
	}

	// No command: always available, does nothing.
	if d.Command == "" {
		return &world.Interaction{Type: typ}, true
	}

	// A malformed command drops the condition and feedback along with it.
	cmd, err := command.Parse(d.Command)
	if err != nil {
		logger.Warn("bad command", "hotspot", hotspotID, "error", err)
		return &world.Interaction{Type: typ}, true
	}

	i := &world.Interaction{Type: typ, RequiredItem: d.RequiredItem}
	if required := d.RequiredItem; required != "" {
		i.Cond = func(ctx world.Context, _ *world.Hotspot) bool {
			sel := ctx.Inventory().Selected()
			return sel != nil && sel.ID == required
		}
	}
	feedback := d.Feedback
	i.Action = func(ctx world.Context, h *world.Hotspot) {
		if feedback != "" {
			ctx.Feedback(feedback, world.Origin(h.Bounds))
		}
		effects.Apply(ctx, scene, h, cmd)
	}
	return i, true
}

var interactionTypes = map[string]types.InteractionType{
	string(types.Examine): types.Examine,
	string(types.Pickup):  types.Pickup,
	string(types.Use):     types.Use,
}

// sortedLuaFiles returns .lua files with game.lua first and the rest sorted
// alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
