package run

import "testing"

func TestAddAssignsIDAndDefaults(t *testing.T) {
	r := NewRun()
	item := r.Add(Item{Kind: KindCustom, Name: "Foil pouches"})

	if item.ID == "" {
		t.Error("expected an assigned id")
	}
	if item.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", item.Quantity)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 item, got %d", r.Len())
	}
}

func TestAddIdempotentByReference(t *testing.T) {
	r := NewRun()
	first := r.Add(Item{Kind: KindPreparedSpawn, Name: "Rye Quart", RefID: "spawn-1"})

	// Same kind and refID: no-op, existing item returned.
	second := r.Add(Item{Kind: KindPreparedSpawn, Name: "Rye Quart (dup)", RefID: "spawn-1"})
	if r.Len() != 1 {
		t.Fatalf("expected 1 item after duplicate add, got %d", r.Len())
	}
	if second.ID != first.ID {
		t.Errorf("expected existing item back, got id %s want %s", second.ID, first.ID)
	}

	// Same refID but different kind is a different reference.
	r.Add(Item{Kind: KindInventory, Name: "Jar lids", RefID: "spawn-1"})
	if r.Len() != 2 {
		t.Errorf("expected 2 items, got %d", r.Len())
	}
}

func TestAddCustomItemsNeverDeduplicated(t *testing.T) {
	r := NewRun()
	r.Add(Item{Kind: KindCustom, Name: "Scalpel"})
	r.Add(Item{Kind: KindCustom, Name: "Scalpel"})
	if r.Len() != 2 {
		t.Errorf("expected 2 custom items, got %d", r.Len())
	}
}

func TestRemove(t *testing.T) {
	r := NewRun()
	a := r.Add(Item{Kind: KindCustom, Name: "a"})
	b := r.Add(Item{Kind: KindCustom, Name: "b"})

	if !r.Remove(a.ID) {
		t.Error("expected removal of existing item")
	}
	if r.Remove("missing") {
		t.Error("removing a missing id should be a no-op")
	}
	items := r.Items()
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("unexpected items after removal: %+v", items)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	r := NewRun()
	r.Add(Item{Kind: KindCustom, Name: "original"})

	items := r.Items()
	items[0].Name = "mutated"

	if r.Items()[0].Name != "original" {
		t.Error("Items must return a copy")
	}
}

func TestClear(t *testing.T) {
	r := NewRun()
	r.Add(Item{Kind: KindCustom, Name: "a"})
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("expected empty run after clear, got %d", r.Len())
	}
}
