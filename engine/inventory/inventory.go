// Package inventory implements the player's fixed-capacity item collection
// with single-selection toggle.
package inventory

import "github.com/nathoo/clickcore/types"

// DefaultCapacity is the number of slots the player starts with.
const DefaultCapacity = 6

// Inventory holds items in acquisition order. It does not suppress
// duplicates; only capacity is enforced.
type Inventory struct {
	capacity int
	items    []*types.Item
	selected *types.Item
}

// New creates an empty inventory. A non-positive capacity falls back to
// DefaultCapacity.
func New(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{
		capacity: capacity,
		items:    make([]*types.Item, 0, capacity),
	}
}

// Add appends an item. Returns false without mutating when full or when
// item is nil.
func (inv *Inventory) Add(item *types.Item) bool {
	if item == nil || len(inv.items) >= inv.capacity {
		return false
	}
	inv.items = append(inv.items, item)
	return true
}

// Remove drops the first held entry that is item (by identity).
// No-op if absent.
func (inv *Inventory) Remove(item *types.Item) {
	if item == nil {
		return
	}
	for i, held := range inv.items {
		if held == item {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			break
		}
	}
	if inv.selected == item && !inv.holds(item) {
		inv.selected = nil
	}
}

// Select toggles selection: selecting the selected item clears it,
// selecting another item replaces it.
func (inv *Inventory) Select(item *types.Item) {
	if inv.selected == item {
		inv.selected = nil
		return
	}
	inv.selected = item
}

// Selected returns the selected item, or nil.
func (inv *Inventory) Selected() *types.Item {
	return inv.selected
}

// ClearSelection deselects without touching the held items.
func (inv *Inventory) ClearSelection() {
	inv.selected = nil
}

// Contains reports whether any held item has the given ID.
func (inv *Inventory) Contains(id string) bool {
	return inv.Find(id) != nil
}

// Find returns the first held item with the given ID, or nil.
func (inv *Inventory) Find(id string) *types.Item {
	for _, it := range inv.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Items returns a copy of the held items in order.
func (inv *Inventory) Items() []*types.Item {
	out := make([]*types.Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of held items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Capacity returns the maximum number of held items.
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

func (inv *Inventory) holds(item *types.Item) bool {
	for _, held := range inv.items {
		if held == item {
			return true
		}
	}
	return false
}
