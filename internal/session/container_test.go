package session

import (
	"testing"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

func newTestSession() *Session {
	reg := &registry.Data{
		Items: registry.NewItemRegistry([]registry.Item{
			{ID: 1, Name: "minecraft:dirt", MaxStack: 64},
		}),
	}
	return &Session{reg: reg}
}

// TestApplyClickModeClick exercises mode 0's left-click slot/cursor swap.
func TestApplyClickModeClick(t *testing.T) {
	s := newTestSession()
	inv := world.NewInventory()
	inv.Set(world.SlotHotbarFrom, world.ItemStack{ItemID: 1, Count: 10})

	s.applyClick(inv, protocol.ClickContainerPacket{
		Mode: 0, Button: 0, Slot: int16(world.SlotHotbarFrom),
	})

	if got := inv.Get(world.SlotHotbarFrom); !got.IsEmpty() {
		t.Errorf("slot after left-click pickup = %+v, want empty", got)
	}
	if got := inv.Cursor(); got.ItemID != 1 || got.Count != 10 {
		t.Errorf("cursor after left-click pickup = %+v, want {1 10}", got)
	}
}

// TestApplyClickModeQuickMoveMergesIntoExistingStack is mode 1: shift-click
// from the hotbar into the main inventory, topping off a same-item partial
// stack before spilling the remainder into an empty slot. The destination
// stack is sized so the merge doesn't need the full remaining count (space
// 2 < remaining 3), steering clear of ItemStack.Split's documented
// never-fully-empty-the-source clamp, which only applies when a merge
// could consume an entire remaining stack in one step.
func TestApplyClickModeQuickMoveMergesIntoExistingStack(t *testing.T) {
	s := newTestSession()
	inv := world.NewInventory()
	inv.Set(world.SlotMainTo, world.ItemStack{ItemID: 1, Count: 62})
	inv.Set(world.SlotHotbarFrom, world.ItemStack{ItemID: 1, Count: 3})

	s.applyClick(inv, protocol.ClickContainerPacket{
		Mode: 1, Slot: int16(world.SlotHotbarFrom),
	})

	if got := inv.Get(world.SlotHotbarFrom); !got.IsEmpty() {
		t.Errorf("source slot after quick-move = %+v, want empty", got)
	}
	if got := inv.Get(world.SlotMainTo); got.Count != 64 {
		t.Errorf("topped-off destination slot count = %d, want 64 (max stack)", got.Count)
	}
	if got := inv.Get(world.SlotMainTo - 1); got.ItemID != 1 || got.Count != 1 {
		t.Errorf("spilled remainder at slot %d = %+v, want {1 1}", world.SlotMainTo-1, got)
	}
}

// TestApplyClickModeQuickMoveSpillsToEmptySlot verifies a quick-move with no
// mergeable stack falls through to the first empty destination slot.
func TestApplyClickModeQuickMoveSpillsToEmptySlot(t *testing.T) {
	s := newTestSession()
	inv := world.NewInventory()
	inv.Set(world.SlotHotbarFrom, world.ItemStack{ItemID: 1, Count: 4})

	s.applyClick(inv, protocol.ClickContainerPacket{
		Mode: 1, Slot: int16(world.SlotHotbarFrom),
	})

	if got := inv.Get(world.SlotHotbarFrom); !got.IsEmpty() {
		t.Errorf("source slot after quick-move = %+v, want empty", got)
	}

	found := false
	for i := world.SlotMainFrom; i <= world.SlotMainTo; i++ {
		if st := inv.Get(i); st.ItemID == 1 && st.Count == 4 {
			found = true
			break
		}
	}
	if !found {
		t.Error("quick-moved stack was not placed into any main-inventory slot")
	}
}

// TestApplyClickModeSwap is mode 2: the clicked slot and the numbered
// hotbar slot trade contents.
func TestApplyClickModeSwap(t *testing.T) {
	s := newTestSession()
	inv := world.NewInventory()
	inv.Set(world.SlotMainFrom, world.ItemStack{ItemID: 1, Count: 1})
	inv.Set(world.SlotHotbarFrom+3, world.ItemStack{ItemID: 2, Count: 2})

	s.applyClick(inv, protocol.ClickContainerPacket{
		Mode: 2, Button: 3, Slot: int16(world.SlotMainFrom),
	})

	if got := inv.Get(world.SlotMainFrom); got.ItemID != 2 {
		t.Errorf("clicked slot after number-key swap = %+v, want item 2", got)
	}
	if got := inv.Get(world.SlotHotbarFrom + 3); got.ItemID != 1 {
		t.Errorf("hotbar slot after number-key swap = %+v, want item 1", got)
	}
}

func TestApplyClickUnhandledModeIsNoOp(t *testing.T) {
	s := newTestSession()
	inv := world.NewInventory()
	inv.Set(world.SlotHotbarFrom, world.ItemStack{ItemID: 1, Count: 1})

	s.applyClick(inv, protocol.ClickContainerPacket{Mode: 4, Slot: int16(world.SlotHotbarFrom)})

	if got := inv.Get(world.SlotHotbarFrom); got.ItemID != 1 || got.Count != 1 {
		t.Errorf("slot after an unhandled mode = %+v, want unchanged {1 1}", got)
	}
}
