package loader

import (
	"testing"

	"github.com/nathoo/clickcore/types"
)

// validContent returns a minimal valid Content for testing.
func validContent() *types.Content {
	return &types.Content{
		StartSceneID: "hall",
		Items:        []types.ItemDef{{ID: "key", Name: "Key"}},
		Scenes: []types.SceneDef{{
			ID:          "hall",
			Title:       "Hall",
			Description: "A hall.",
			Hotspots: []types.HotspotDef{{
				ID:     "door",
				Name:   "Door",
				Bounds: []int{0, 0, 10, 10},
				Interactions: []types.InteractionDef{
					{Type: "USE", RequiredItem: "key", Command: "CHANGE_SCENE:hall"},
				},
			}},
		}},
	}
}

func TestValidate_ValidContent(t *testing.T) {
	ve := Validate(validContent())
	if len(ve.Errors) != 0 || len(ve.Warnings) != 0 {
		t.Fatalf("expected clean validation, got errors %v warnings %v", ve.Errors, ve.Warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Content)
		want   string
	}{
		{"no scenes", func(c *types.Content) { c.Scenes = nil }, "no scenes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContent()
			tt.mutate(c)
			ve := Validate(c)
			assertContains(t, ve.Errors, tt.want)
			if ve.Error() == "" {
				t.Error("Error() should describe the failure")
			}
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name string
		def  types.InteractionDef
		want string
	}{
		{"unknown type", types.InteractionDef{Type: "LICK"}, "unknown interaction type"},
		{"unknown required item", types.InteractionDef{Type: "USE", RequiredItem: "crowbar"}, `"crowbar" is not defined`},
		{"syntax", types.InteractionDef{Type: "USE", Command: "START_PUZZLE"}, "needs a puzzle kind"},
		{"unknown command", types.InteractionDef{Type: "USE", Command: "DANCE"}, `unknown command "DANCE"`},
		{"bad scene", types.InteractionDef{Type: "USE", Command: "CHANGE_SCENE:void"}, `undefined scene "void"`},
		{"bad give", types.InteractionDef{Type: "USE", Command: "GIVE_ITEM:ghost"}, `undefined item "ghost"`},
		{"bad add", types.InteractionDef{Type: "USE", Command: "ITEM_USE_RESULT:ADD_ITEM:ghost"}, `ADD_ITEM of undefined item`},
		{"bad replacement", types.InteractionDef{Type: "USE", Command: "ITEM_USE_RESULT:REPLACE_HOTSPOT:door:nowhere"}, "no hotspot registered"},
		{"bad puzzle", types.InteractionDef{Type: "USE", Command: "START_PUZZLE:Crossword:1:NONE"}, "unknown puzzle"},
		{"bad post-solve", types.InteractionDef{Type: "USE", Command: "START_PUZZLE:Keypad:1:NONE:GIVE_ITEM:ghost"}, `undefined item "ghost"`},
		{"bad lever solution", types.InteractionDef{Type: "USE", Command: "START_PUZZLE:LeverPuzzle:1:NONE"}, `lever solution "1"`},
		{"bad lever token", types.InteractionDef{Type: "USE", Command: "START_PUZZLE:LeverPuzzle:UP_SIDEWAYS:NONE"}, "not an UP/DOWN sequence"},
		{"bad dial solution", types.InteractionDef{Type: "USE", Command: "START_PUZZLE:DialPuzzle:1234:NONE"}, `dial solution "1234"`},
		{"bad dial letter", types.InteractionDef{Type: "USE", Command: "START_PUZZLE:DialPuzzle:C_E_D:NONE"}, "not a sequence of ABCD letters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContent()
			c.Scenes[0].Hotspots[0].Interactions = []types.InteractionDef{tt.def}
			ve := Validate(c)
			if len(ve.Errors) != 0 {
				t.Errorf("unexpected errors: %v", ve.Errors)
			}
			assertContains(t, ve.Warnings, tt.want)
		})
	}
}

func TestValidate_StartSceneWarnings(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"missing start", "", "start scene is missing"},
		{"unknown start", "garden", `"garden" does not match`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContent()
			c.StartSceneID = tt.start
			ve := Validate(c)
			if len(ve.Errors) != 0 {
				t.Errorf("start scene problems should not be errors: %v", ve.Errors)
			}
			assertContains(t, ve.Warnings, tt.want)
		})
	}
}

func TestValidate_PuzzleSolutions(t *testing.T) {
	for _, cmd := range []string{
		"START_PUZZLE:LeverPuzzle:DOWN_UP_DOWN:NONE",
		"START_PUZZLE:LeverPuzzle::NONE",
		"START_PUZZLE:DialPuzzle:b_c:NONE",
		"START_PUZZLE:Keypad:4455:NONE",
	} {
		c := validContent()
		c.Scenes[0].Hotspots[0].Interactions = []types.InteractionDef{{Type: "USE", Command: cmd}}
		if ve := Validate(c); len(ve.Warnings) != 0 {
			t.Errorf("%s: unexpected warnings %v", cmd, ve.Warnings)
		}
	}
}

func TestValidate_HotspotWarnings(t *testing.T) {
	c := validContent()
	c.Items = append(c.Items, types.ItemDef{ID: "key"})
	hs := &c.Scenes[0].Hotspots
	*hs = append(*hs,
		types.HotspotDef{ID: "door", Bounds: []int{0, 0, 1, 1}},
		types.HotspotDef{ID: "flat", Bounds: []int{0, 0, 0, 5}},
		types.HotspotDef{ID: "short", Bounds: []int{0, 0}},
	)
	c.Scenes = append(c.Scenes, types.SceneDef{ID: "hall"})

	ve := Validate(c)
	assertContains(t, ve.Warnings, `duplicate item "key"`)
	assertContains(t, ve.Warnings, "duplicate hotspot id")
	assertContains(t, ve.Warnings, "have no area")
	assertContains(t, ve.Warnings, "must be [x, y, w, h]")
	assertContains(t, ve.Warnings, `duplicate scene "hall"`)
}
