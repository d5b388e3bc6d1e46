// Package run tracks the items in the current sterilization run, the
// completion side effects, and the rolling run log.
package run

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies where a tracked item came from.
type Kind string

const (
	KindPreparedSpawn Kind = "prepared_spawn"
	KindInventory     Kind = "inventory"
	KindCustom        Kind = "custom"
)

// Item is one thing going into the pressure cooker. Items are transient:
// created when added to the run, gone when removed or when the run completes.
type Item struct {
	ID       string
	Kind     Kind
	Name     string
	Quantity int
	// RefID links back to the domain record for non-custom kinds.
	RefID string
	// SuggestedPreset is the advisory preset id from the keyword scan,
	// empty when nothing matched.
	SuggestedPreset string
}

// Completion describes a finished cycle, handed to the notifier.
type Completion struct {
	Timestamp time.Time
	PSI       int
	Minutes   int
	Items     []Item
}

// Run is the ordered list of items in the current cycle.
type Run struct {
	items []Item
}

// NewRun returns an empty run.
func NewRun() *Run {
	return &Run{}
}

// Add appends an item and returns it with an assigned id. Adding a non-custom
// item whose (kind, refID) is already present is a no-op; the existing item is
// returned unchanged.
func (r *Run) Add(item Item) Item {
	if item.Kind != KindCustom && item.RefID != "" {
		for _, existing := range r.items {
			if existing.Kind == item.Kind && existing.RefID == item.RefID {
				return existing
			}
		}
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	r.items = append(r.items, item)
	return item
}

// Remove deletes the item with the given id. No-op if absent.
func (r *Run) Remove(id string) bool {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the tracked items in insertion order.
func (r *Run) Items() []Item {
	return append([]Item(nil), r.items...)
}

// Len returns the item count.
func (r *Run) Len() int {
	return len(r.items)
}

// Clear empties the run. Called after a completed cycle.
func (r *Run) Clear() {
	r.items = nil
}
