package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/clickcore/engine/world"
	"github.com/nathoo/clickcore/types"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game   *lua.LTable
	items  []rawItem
	scenes []rawScene
}

// Load reads content from path and validates it. path may be a .json,
// .yaml/.yml or .lua file, or a directory of .lua files. Validation
// warnings are logged; validation errors fail the load.
func Load(path string, logger *slog.Logger) (*types.Content, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}

	var c *types.Content
	switch {
	case info.IsDir():
		c, err = loadLuaDir(path)
	case hasExt(path, ".json"):
		c, err = loadJSON(path)
	case hasExt(path, ".yaml", ".yml"):
		c, err = loadYAML(path)
	case hasExt(path, ".lua"):
		c, err = loadLua([]string{path})
	default:
		return nil, fmt.Errorf("unsupported content file %s", path)
	}
	if err != nil {
		return nil, err
	}

	ve := Validate(c)
	for _, w := range ve.Warnings {
		logger.Warn("content", "warning", w)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return c, nil
}

// LoadWorld loads content from path and compiles it.
func LoadWorld(path string, logger *slog.Logger) (*world.World, error) {
	c, err := Load(path, logger)
	if err != nil {
		return nil, err
	}
	return Compile(c, logger), nil
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func loadJSON(path string) (*types.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var c types.Content
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &c, nil
}

func loadYAML(path string) (*types.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var c types.Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &c, nil
}

// loadLuaDir runs every .lua file in dir, game.lua first.
func loadLuaDir(dir string) (*types.Content, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	paths := make([]string, 0, len(luaFiles))
	for _, f := range sortedLuaFiles(luaFiles) {
		paths = append(paths, filepath.Join(dir, f))
	}
	return loadLua(paths)
}

// loadLua executes the files in a sandboxed VM and converts what they
// declared into content records. The VM is discarded afterwards.
func loadLua(paths []string) (*types.Content, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, path := range paths {
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(path), err)
		}
	}
	return compileLua(coll), nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
