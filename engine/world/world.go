// Package world holds the live entity graph: scenes, their hotspot arenas,
// and the item registry. Hotspots are owned by their scene and keyed by ID;
// replacement is remove + insert, never an in-place edit.
package world

import (
	"sort"

	"github.com/nathoo/clickcore/types"
)

// World is the registry built by the compiler. Scenes are registered once
// and never removed; only their hotspot membership changes.
type World struct {
	Start string // starting scene ID

	scenes map[string]*Scene
	items  map[string]*types.Item
}

// New creates an empty world.
func New() *World {
	return &World{
		scenes: map[string]*Scene{},
		items:  map[string]*types.Item{},
	}
}

// AddScene registers a scene. A later scene with the same ID wins.
func (w *World) AddScene(s *Scene) {
	w.scenes[s.ID] = s
}

// Scene looks up a scene by ID.
func (w *World) Scene(id string) (*Scene, bool) {
	s, ok := w.scenes[id]
	return s, ok
}

// SceneIDs returns all scene IDs, sorted.
func (w *World) SceneIDs() []string {
	ids := make([]string, 0, len(w.scenes))
	for id := range w.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddItem registers an item.
func (w *World) AddItem(it *types.Item) {
	w.items[it.ID] = it
}

// Item looks up an item by ID.
func (w *World) Item(id string) (*types.Item, bool) {
	it, ok := w.items[id]
	return it, ok
}

// Scene is a location with an ordered arena of hotspots.
type Scene struct {
	ID          string
	Title       string
	Description string

	order    []string
	hotspots map[string]*Hotspot
}

// NewScene creates a scene with no hotspots.
func NewScene(id, title, description string) *Scene {
	return &Scene{
		ID:          id,
		Title:       title,
		Description: description,
		hotspots:    map[string]*Hotspot{},
	}
}

// Add inserts a hotspot at the end of the hit-test order. Adding an ID that
// is already present replaces that hotspot and keeps its position.
func (s *Scene) Add(h *Hotspot) {
	if _, ok := s.hotspots[h.ID]; !ok {
		s.order = append(s.order, h.ID)
	}
	s.hotspots[h.ID] = h
}

// Remove deletes a hotspot by ID. Returns false if it was not present.
func (s *Scene) Remove(id string) bool {
	if _, ok := s.hotspots[id]; !ok {
		return false
	}
	delete(s.hotspots, id)
	for i, hid := range s.order {
		if hid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Hotspot looks up a hotspot by ID.
func (s *Scene) Hotspot(id string) (*Hotspot, bool) {
	h, ok := s.hotspots[id]
	return h, ok
}

// Hotspots returns the hotspots in insertion order.
func (s *Scene) Hotspots() []*Hotspot {
	out := make([]*Hotspot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.hotspots[id])
	}
	return out
}

// HotspotAt returns the first-inserted hotspot whose bounds contain p.
func (s *Scene) HotspotAt(p types.Point) *Hotspot {
	for _, id := range s.order {
		if h := s.hotspots[id]; Contains(h.Bounds, p) {
			return h
		}
	}
	return nil
}

// Contains reports whether p lies inside r. Rectangles are half-open: the
// right and bottom edges are outside.
func Contains(r types.Rect, p types.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Origin returns the top-left corner of r, the anchor for hotspot feedback.
func Origin(r types.Rect) types.Point {
	return types.Point{X: r.X, Y: r.Y}
}
