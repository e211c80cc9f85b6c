package loader

import (
	"strings"

	"github.com/nathoo/clickcore/types"
	lua "github.com/yuin/gopher-lua"
)

// Marker key set on tables built by Hotspot, so scene compilation can tell
// hotspots from stray tables.
const hotspotIDKey = "__hotspot_id"

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerInteractionHelpers(L)
	registerCommandHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { start = "..." }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Item "id" { name = "...", desc = "..." }
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Scene "id" { title = "...", description = "...", hotspots = {...} }
	L.SetGlobal("Scene", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.scenes = append(coll.scenes, rawScene{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Hotspot "id" { name = "...", bounds = {x, y, w, h}, Use{...}, Examine{...} }
	// Returns the table, marked with its ID, for inclusion in a scene.
	L.SetGlobal("Hotspot", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString(hotspotIDKey, lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))
}

// registerInteractionHelpers registers Use, Pickup and Examine. Each takes
// { requires = "item", command = "...", feedback = "..." } and returns it
// tagged with its type.
func registerInteractionHelpers(L *lua.LState) {
	for name, typ := range map[string]types.InteractionType{
		"Use":     types.Use,
		"Pickup":  types.Pickup,
		"Examine": types.Examine,
	} {
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			tbl := L.OptTable(1, L.NewTable())
			tbl.RawSetString("type", lua.LString(typ))
			L.Push(tbl)
			return 1
		}))
	}
}

// registerCommandHelpers registers builders for command strings so content
// never spells the colon syntax by hand.
func registerCommandHelpers(L *lua.LState) {
	// ChangeScene("id")
	L.SetGlobal("ChangeScene", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("CHANGE_SCENE:" + L.CheckString(1)))
		return 1
	}))

	// GiveItem("id")
	L.SetGlobal("GiveItem", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("GIVE_ITEM:" + L.CheckString(1)))
		return 1
	}))

	// Describe("text")
	L.SetGlobal("Describe", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("EXAMINE_DESC:" + L.CheckString(1)))
		return 1
	}))

	// Swap { remove = true, add = "id", replace = { "old", "new" } }
	L.SetGlobal("Swap", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		parts := []string{"ITEM_USE_RESULT"}
		if getBool(tbl, "remove", false) {
			parts = append(parts, "REMOVE_ITEM")
		}
		if add := getString(tbl, "add"); add != "" {
			parts = append(parts, "ADD_ITEM", add)
		}
		if r := getTable(tbl, "replace"); r != nil {
			parts = append(parts, "REPLACE_HOTSPOT",
				lua.LVAsString(r.RawGetInt(1)), lua.LVAsString(r.RawGetInt(2)))
		}
		L.Push(lua.LString(strings.Join(parts, ":")))
		return 1
	}))

	// Puzzle("Kind", "solution", "hotspot"|nil, postSolveCommand|nil)
	L.SetGlobal("Puzzle", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		solution := L.OptString(2, "")
		hotspot := L.OptString(3, "NONE")
		parts := []string{"START_PUZZLE", kind, solution, hotspot}
		if post := L.OptString(4, ""); post != "" {
			parts = append(parts, post)
		}
		L.Push(lua.LString(strings.Join(parts, ":")))
		return 1
	}))
}
