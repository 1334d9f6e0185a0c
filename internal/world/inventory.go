package world

import (
	"sync"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

// Inventory slot ranges (spec §3): 0 crafting-output, 1-4 crafting-grid,
// 5-8 armor, 9-35 main, 36-44 hotbar.
const (
	SlotCraftingOutput   = 0
	SlotCraftingGridFrom = 1
	SlotCraftingGridTo   = 4
	SlotArmorFrom        = 5
	SlotArmorTo          = 8
	SlotMainFrom         = 9
	SlotMainTo           = 35
	SlotHotbarFrom       = 36
	SlotHotbarTo         = 44
	InventorySize        = 45
)

// ItemStack is the server-internal representation of a held/stored item: a
// block/item id, a count, and whatever opaque components travel with it.
// Grounded on the teacher's player.Slot, generalized from the 1.8
// (BlockID int16, ItemDamage int16) pair to the modern (item id, component
// list) shape spec §3 describes.
type ItemStack struct {
	ItemID     int32
	Count      int32
	Components []protocol.Component
}

// IsEmpty reports whether this stack represents no item (count 0 or id 0).
func (s ItemStack) IsEmpty() bool { return s.Count <= 0 || s.ItemID == 0 }

// ToSlotData converts to the wire representation.
func (s ItemStack) ToSlotData() protocol.SlotData {
	if s.IsEmpty() {
		return protocol.SlotData{}
	}
	return protocol.SlotData{Present: true, ItemID: s.ItemID, Count: s.Count, ToAdd: s.Components}
}

// ItemStackFromSlotData converts a decoded wire slot into server-internal form.
func ItemStackFromSlotData(s protocol.SlotData) ItemStack {
	if s.IsEmpty() {
		return ItemStack{}
	}
	return ItemStack{ItemID: s.ItemID, Count: s.Count, Components: s.ToAdd}
}

// MatchesHashed reports whether this stack matches the client's hashed
// expectation for Click Container reconciliation.
func (s ItemStack) MatchesHashed(h protocol.HashedSlot) bool {
	return s.ToSlotData().MatchesHashed(h)
}

// Split removes count items from the stack and returns them as a new stack.
// Per a documented source quirk (spec §9 open question): splitting off the
// entire stack size is refused and clamped to count-1, so the source slot
// is never fully emptied by a split. The clamp is preserved deliberately.
func (s *ItemStack) Split(count int32) ItemStack {
	if s.IsEmpty() || count <= 0 {
		return ItemStack{}
	}
	if count >= s.Count {
		count = s.Count - 1
	}
	if count <= 0 {
		return ItemStack{}
	}
	s.Count -= count
	return ItemStack{ItemID: s.ItemID, Count: count, Components: s.Components}
}

// Inventory is a player's 45-slot container plus cursor item and the
// monotonic state id Click Container reconciliation depends on. Grounded on
// the teacher's player.Inventory (RWMutex-guarded fixed slot array),
// expanded from the 1.8 36-slot hotbar+main layout to the modern 45-slot
// layout with crafting grid and armor.
type Inventory struct {
	mu             sync.RWMutex
	slots          [InventorySize]ItemStack
	selectedHotbar int32 // 0-8
	cursor         ItemStack
	stateID        int32
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Get returns the stack at a slot index.
func (inv *Inventory) Get(index int) ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.slots[index]
}

// Set stores a stack at a slot index and increments the state id.
func (inv *Inventory) Set(index int, stack ItemStack) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.slots[index] = stack
	inv.stateID++
}

// Cursor returns the item currently held by the cursor (drag state).
func (inv *Inventory) Cursor() ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.cursor
}

// SetCursor replaces the cursor item and increments the state id.
func (inv *Inventory) SetCursor(stack ItemStack) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.cursor = stack
	inv.stateID++
}

// SelectedHotbar returns the selected hotbar index (0-8).
func (inv *Inventory) SelectedHotbar() int32 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.selectedHotbar
}

// SetSelectedHotbar updates which hotbar slot is active. This does not
// mutate slot contents, so — unlike Set/SetCursor — it does not bump the
// state id.
func (inv *Inventory) SetSelectedHotbar(idx int32) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.selectedHotbar = idx
}

// HeldItem returns the stack in the currently selected hotbar slot.
func (inv *Inventory) HeldItem() ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.slots[SlotHotbarFrom+int(inv.selectedHotbar)]
}

// HeldSlotIndex returns the absolute slot index of the held hotbar slot.
func (inv *Inventory) HeldSlotIndex() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return SlotHotbarFrom + int(inv.selectedHotbar)
}

// StateID returns the current monotonic state id.
func (inv *Inventory) StateID() int32 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.stateID
}

// IsCraftingSlot reports whether index is part of the crafting grid for the
// purpose of clearing a craft when an ingredient is withdrawn. A documented
// source quirk (spec §9 open question) treats slot 0 (the output) and
// slots 2-4 as crafting slots but excludes slot 1; preserved as-is here
// rather than "corrected" to the full 0-4 range.
func (inv *Inventory) IsCraftingSlot(index int) bool {
	return index == SlotCraftingOutput || (index >= 2 && index <= SlotCraftingGridTo)
}

// Snapshot returns a full copy for Set Container Content resync: the
// current state id, every slot's wire form, and the carried (cursor) item.
func (inv *Inventory) Snapshot() (stateID int32, slots []protocol.SlotData, carried protocol.SlotData) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	slots = make([]protocol.SlotData, InventorySize)
	for i, s := range inv.slots {
		slots[i] = s.ToSlotData()
	}
	return inv.stateID, slots, inv.cursor.ToSlotData()
}
