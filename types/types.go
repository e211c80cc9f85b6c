// Package types defines the shared data structures for the ClickCore engine.
// It holds type definitions only.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Point is a location in scene coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned region in scene coordinates.
type Rect struct {
	X, Y int // top-left corner
	W, H int
}

// Item is an inventory object. Immutable after creation.
type Item struct {
	ID   string
	Name string
	Desc string // examine text
}

// InteractionType names the behaviour an interaction provides.
type InteractionType string

const (
	Examine InteractionType = "EXAMINE"
	Pickup  InteractionType = "PICKUP"
	Use     InteractionType = "USE"
)

// Mode is the engine's top-level state.
type Mode string

const (
	ModeIdle     Mode = "IDLE"
	ModePuzzle   Mode = "PUZZLE"
	ModeCutscene Mode = "CUTSCENE" // reserved
)

// Content is the parsed content description consumed at load time.
type Content struct {
	Items        []ItemDef  `json:"items" yaml:"items"`
	Scenes       []SceneDef `json:"scenes" yaml:"scenes"`
	StartSceneID string     `json:"startSceneId" yaml:"startSceneId"`
}

// ItemDef is an item record.
type ItemDef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Desc string `json:"desc" yaml:"desc"`
}

// SceneDef is a scene record with its nested hotspots.
type SceneDef struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Hotspots    []HotspotDef `json:"hotspots" yaml:"hotspots"`
}

// HotspotDef is a hotspot record. Bounds is [x, y, w, h].
type HotspotDef struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Bounds       []int            `json:"bounds" yaml:"bounds"`
	Interactions []InteractionDef `json:"interactions" yaml:"interactions"`
}

// InteractionDef is an interaction record. Command uses the colon-delimited
// command vocabulary (CHANGE_SCENE, GIVE_ITEM, ...).
type InteractionDef struct {
	Type         string `json:"type" yaml:"type"`
	RequiredItem string `json:"requiredItem,omitempty" yaml:"requiredItem,omitempty"`
	Command      string `json:"command,omitempty" yaml:"command,omitempty"`
	Feedback     string `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// FeedbackDuration is how long a transient feedback message stays on screen.
const FeedbackDuration = 4 * time.Second

// Feedback is a transient message anchored at a scene location.
type Feedback struct {
	ID       uuid.UUID
	Text     string
	At       Point
	Duration time.Duration
}

// Event is emitted whenever the engine mutates observable state.
type Event struct {
	Type string
	Data map[string]any
}

// TimerKind identifies a delayed continuation.
type TimerKind string

const (
	TimerSolve TimerKind = "solve" // fire the puzzle's solved continuation
	TimerClear TimerKind = "clear" // clear a rejected puzzle entry
)

// Timer asks the caller to hand the timer back to the engine after Delay.
// Attempt ties the continuation to the puzzle attempt it was scheduled from.
type Timer struct {
	Kind    TimerKind
	Attempt uuid.UUID
	Delay   time.Duration
}

// Result is the output of a single input event.
type Result struct {
	Feedback []Feedback
	Events   []Event
	Timers   []Timer
}
