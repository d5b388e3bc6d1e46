// Package store fronts the lab's domain database. sporelyd does not own
// record creation (the lab app proper does); it lists candidate records for
// a run and updates spawn status after a completed cycle.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an update targets a record that does not exist.
var ErrNotFound = errors.New("store: record not found")

// Spawn status values used by this daemon. The domain has more; we only ever
// write StatusAvailable.
const (
	StatusPrepared  = "prepared"
	StatusAvailable = "available"
)

// PreparedSpawn is a batch of grain spawn awaiting or having undergone
// sterilization.
type PreparedSpawn struct {
	ID                  string
	Name                string
	SpawnType           string // e.g. "rye", "millet"
	Quantity            int
	Status              string
	SterilizationDate   *time.Time
	SterilizationMethod string
	CreatedAt           time.Time
}

// InventoryItem is a consumable that can be added to a sterilization run.
type InventoryItem struct {
	ID        string
	Name      string
	Category  string
	Quantity  int
	Unit      string
	CreatedAt time.Time
}

// SpawnUpdate is the payload written to a prepared spawn record when the
// cycle that contained it completes.
type SpawnUpdate struct {
	Status              string
	SterilizationDate   time.Time
	SterilizationMethod string
}

// Store is the surrounding data layer. Implementations must be safe for use
// from a single goroutine; the daemon loop serializes all calls.
type Store interface {
	// ListPreparedSpawn returns spawn batches, newest first.
	ListPreparedSpawn(ctx context.Context) ([]PreparedSpawn, error)

	// ListInventory returns inventory items, newest first.
	ListInventory(ctx context.Context) ([]InventoryItem, error)

	// UpdateSpawnStatus applies the post-sterilization update to one record.
	UpdateSpawnStatus(ctx context.Context, id string, u SpawnUpdate) error

	// Close releases the underlying connection.
	Close() error
}
