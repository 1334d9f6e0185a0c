package world

import "testing"

// TestInventoryStateIDMonotonic is spec property 4: inventory.state_id is
// strictly increasing across every mutation.
func TestInventoryStateIDMonotonic(t *testing.T) {
	inv := NewInventory()
	last := inv.StateID()

	mutations := []func(){
		func() { inv.Set(SlotHotbarFrom, ItemStack{ItemID: 1, Count: 1}) },
		func() { inv.Set(SlotHotbarFrom, ItemStack{ItemID: 2, Count: 5}) },
		func() { inv.SetCursor(ItemStack{ItemID: 3, Count: 1}) },
		func() { inv.SetCursor(ItemStack{}) },
		func() { inv.Set(SlotMainFrom, ItemStack{ItemID: 4, Count: 64}) },
	}

	for i, mutate := range mutations {
		mutate()
		got := inv.StateID()
		if got <= last {
			t.Fatalf("mutation %d: StateID() = %d, want strictly greater than previous %d", i, got, last)
		}
		last = got
	}
}

func TestInventorySetSelectedHotbarDoesNotBumpState(t *testing.T) {
	inv := NewInventory()
	before := inv.StateID()
	inv.SetSelectedHotbar(3)
	if got := inv.StateID(); got != before {
		t.Errorf("StateID() after SetSelectedHotbar = %d, want unchanged %d", got, before)
	}
}

func TestInventoryHeldItem(t *testing.T) {
	inv := NewInventory()
	inv.Set(SlotHotbarFrom+2, ItemStack{ItemID: 11, Count: 1})
	inv.SetSelectedHotbar(2)

	if got := inv.HeldItem(); got.ItemID != 11 {
		t.Errorf("HeldItem().ItemID = %d, want 11", got.ItemID)
	}
	if got := inv.HeldSlotIndex(); got != SlotHotbarFrom+2 {
		t.Errorf("HeldSlotIndex() = %d, want %d", got, SlotHotbarFrom+2)
	}
}

func TestItemStackSplitNeverFullyEmptiesSource(t *testing.T) {
	// Documented source quirk (spec §9 open question): splitting off the
	// entire stack size is refused and clamped to count-1.
	s := ItemStack{ItemID: 1, Count: 4}
	moved := s.Split(4)
	if moved.Count != 3 {
		t.Errorf("Split(4) on a 4-count stack moved %d, want 3 (clamped)", moved.Count)
	}
	if s.Count != 1 {
		t.Errorf("source stack after Split(4) has Count = %d, want 1 (never fully emptied)", s.Count)
	}
}

func TestItemStackSplitPartial(t *testing.T) {
	s := ItemStack{ItemID: 1, Count: 10}
	moved := s.Split(3)
	if moved.Count != 3 || moved.ItemID != 1 {
		t.Errorf("Split(3) = %+v, want Count 3, ItemID 1", moved)
	}
	if s.Count != 7 {
		t.Errorf("source stack after Split(3) has Count = %d, want 7", s.Count)
	}
}

func TestIsCraftingSlot(t *testing.T) {
	inv := NewInventory()
	tests := []struct {
		slot int
		want bool
	}{
		{SlotCraftingOutput, true},
		{1, false}, // documented exclusion, spec §9 open question
		{2, true},
		{3, true},
		{SlotCraftingGridTo, true},
		{SlotArmorFrom, false},
		{SlotMainFrom, false},
		{SlotHotbarFrom, false},
	}
	for _, tt := range tests {
		if got := inv.IsCraftingSlot(tt.slot); got != tt.want {
			t.Errorf("IsCraftingSlot(%d) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}
