package store

import "context"

// AppliedUpdate records one UpdateSpawnStatus call for test assertions.
type AppliedUpdate struct {
	ID     string
	Update SpawnUpdate
}

// FakeStore is a test double that serves scripted records and records updates.
type FakeStore struct {
	// Spawn is returned by ListPreparedSpawn.
	Spawn []PreparedSpawn

	// Inventory is returned by ListInventory.
	Inventory []InventoryItem

	// Updates contains all applied updates in call order.
	Updates []AppliedUpdate

	// UpdateErrors maps a spawn id to the error its update should return.
	UpdateErrors map[string]error

	// ListError, if set, is returned by both list methods.
	ListError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{UpdateErrors: make(map[string]error)}
}

// ListPreparedSpawn returns the scripted spawn records.
func (f *FakeStore) ListPreparedSpawn(ctx context.Context) ([]PreparedSpawn, error) {
	if f.ListError != nil {
		return nil, f.ListError
	}
	return append([]PreparedSpawn(nil), f.Spawn...), nil
}

// ListInventory returns the scripted inventory records.
func (f *FakeStore) ListInventory(ctx context.Context) ([]InventoryItem, error) {
	if f.ListError != nil {
		return nil, f.ListError
	}
	return append([]InventoryItem(nil), f.Inventory...), nil
}

// UpdateSpawnStatus records the update, or fails if an error is scripted
// for the id.
func (f *FakeStore) UpdateSpawnStatus(ctx context.Context, id string, u SpawnUpdate) error {
	if err := f.UpdateErrors[id]; err != nil {
		return err
	}
	f.Updates = append(f.Updates, AppliedUpdate{ID: id, Update: u})
	return nil
}

// Close marks the store as closed.
func (f *FakeStore) Close() error {
	f.Closed = true
	return nil
}
