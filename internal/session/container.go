package session

import (
	"bytes"
	"fmt"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// HandleClickContainer implements spec §4.6's Click Container reconciliation:
// the server never trusts the client's arithmetic, it computes the result
// itself and compares against the client's hashed expectation. A state id
// mismatch triggers a full Set Container Content resync without applying
// anything. Otherwise the click is applied first; if a changed slot or the
// cursor then differs from the client's hashed expectation, the client is
// resynced to the server's already-applied result (spec §7
// ProtocolViolation, connection stays open).
func (s *Session) HandleClickContainer(data []byte) error {
	pkt, err := protocol.ReadClickContainerPacket(data)
	if err != nil {
		return fmt.Errorf("decode click container: %w", err)
	}

	inv := s.player.Inventory
	if pkt.StateID != inv.StateID() {
		return s.resyncContainer(pkt.WindowID)
	}

	s.applyClick(inv, pkt)

	for _, cs := range pkt.ChangedSlots {
		if int(cs.Slot) < 0 || int(cs.Slot) >= world.InventorySize {
			return s.resyncContainer(pkt.WindowID)
		}
		if !inv.Get(int(cs.Slot)).MatchesHashed(cs.Item) {
			return s.resyncContainer(pkt.WindowID)
		}
	}
	if !inv.Cursor().MatchesHashed(pkt.Carried) {
		return s.resyncContainer(pkt.WindowID)
	}
	return nil
}

// applyClick computes the canonical server-side result of a Click Container
// action (spec §4.6, modes 0-6). Modes 0 (click), 1 (shift-click quick-move)
// and 2 (number-key swap) mutate inventory state; modes 3-6 (middle click,
// drop, drag, double-click) don't apply to the player's own inventory window
// this server exposes (no creative middle-click duplication, no external
// container to drag across) and are accepted as no-ops, relying on the
// hashed-slot comparison in HandleClickContainer to resync the client if its
// own prediction still diverges.
func (s *Session) applyClick(inv *world.Inventory, pkt protocol.ClickContainerPacket) {
	if pkt.Slot < 0 || int(pkt.Slot) >= world.InventorySize {
		return
	}
	slot := int(pkt.Slot)

	switch pkt.Mode {
	case 0:
		s.applyClickModeClick(inv, slot, int(pkt.Button))
	case 1:
		s.applyClickModeQuickMove(inv, slot)
	case 2:
		s.applyClickModeSwap(inv, slot, int(pkt.Button))
	default:
		return
	}

	if inv.IsCraftingSlot(slot) {
		inv.Set(world.SlotCraftingOutput, world.ItemStack{})
	}
}

// applyClickModeClick is mode 0: left/right click a slot, with the cursor
// acting as the other hand of the swap.
func (s *Session) applyClickModeClick(inv *world.Inventory, slot int, button int) {
	clicked := inv.Get(slot)
	cursor := inv.Cursor()

	switch button {
	case 0: // left click: swap slot and cursor
		inv.Set(slot, cursor)
		inv.SetCursor(clicked)
	case 1: // right click: place one from cursor, or pick up half
		if cursor.IsEmpty() {
			half := clicked.Split(clicked.Count/2 + clicked.Count%2)
			inv.Set(slot, clicked)
			inv.SetCursor(half)
			return
		}
		if clicked.IsEmpty() {
			one := cursor.Split(1)
			inv.Set(slot, one)
			inv.SetCursor(cursor)
		}
	}
}

// applyClickModeQuickMove is mode 1 (shift-click): moves the clicked stack
// to the complementary region of the player's own inventory (hotbar <->
// main; armor and crafting slots move into main+hotbar), merging into
// existing stacks of the same item before
// spilling into empty slots, same as vanilla shift-click within a single
// inventory window.
func (s *Session) applyClickModeQuickMove(inv *world.Inventory, slot int) {
	clicked := inv.Get(slot)
	if clicked.IsEmpty() {
		return
	}

	var dest []int
	switch {
	case slot >= world.SlotHotbarFrom && slot <= world.SlotHotbarTo:
		dest = s.quickMoveTargets(world.SlotMainFrom, world.SlotMainTo)
	case slot >= world.SlotMainFrom && slot <= world.SlotMainTo:
		dest = s.quickMoveTargets(world.SlotHotbarFrom, world.SlotHotbarTo)
	default:
		// Armor or crafting slot: quick-move into the main/hotbar area.
		dest = s.quickMoveTargets(world.SlotMainFrom, world.SlotHotbarTo)
	}

	remaining := clicked
	maxStack := s.maxStackFor(remaining.ItemID)

	// Pass 1: merge into existing partial stacks of the same item. Split's
	// documented clamp (it never fully empties its source) means a single
	// remaining item can linger in the source stack rather than merging
	// away entirely; that quirk is preserved here rather than special-cased.
	for _, idx := range dest {
		if remaining.IsEmpty() {
			break
		}
		existing := inv.Get(idx)
		if existing.IsEmpty() || existing.ItemID != remaining.ItemID || existing.Count >= maxStack {
			continue
		}
		space := maxStack - existing.Count
		moved := remaining.Split(space)
		if moved.IsEmpty() {
			continue
		}
		existing.Count += moved.Count
		inv.Set(idx, existing)
	}

	// Pass 2: spill whatever remains into the first empty slot found.
	for _, idx := range dest {
		if remaining.IsEmpty() {
			break
		}
		if !inv.Get(idx).IsEmpty() {
			continue
		}
		inv.Set(idx, remaining)
		remaining = world.ItemStack{}
	}

	if remaining.IsEmpty() {
		inv.Set(slot, world.ItemStack{})
	} else {
		inv.Set(slot, remaining)
	}
}

// applyClickModeSwap is mode 2 (number-key swap): button is the pressed
// hotbar key (0-8); the clicked slot's contents and that hotbar slot's
// contents trade places.
func (s *Session) applyClickModeSwap(inv *world.Inventory, slot int, button int) {
	if button < 0 || button > 8 {
		return
	}
	hotbarSlot := world.SlotHotbarFrom + button
	if hotbarSlot == slot {
		return
	}
	a := inv.Get(slot)
	b := inv.Get(hotbarSlot)
	inv.Set(slot, b)
	inv.Set(hotbarSlot, a)
}

// quickMoveTargets lists slot indices in a range in the order vanilla
// quick-move fills them: high index to low within main inventory/hotbar.
func (s *Session) quickMoveTargets(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := to; i >= from; i-- {
		out = append(out, i)
	}
	return out
}

// maxStackFor resolves an item's max stack size from the registry, falling
// back to 64 (vanilla's default) for unknown ids.
func (s *Session) maxStackFor(itemID int32) int32 {
	if item, ok := s.reg.Items.ByID(itemID); ok && item.MaxStack > 0 {
		return item.MaxStack
	}
	return 64
}

// resyncContainer sends a full Set Container Content snapshot and performs
// no mutation, per spec §4.6.
func (s *Session) resyncContainer(windowID uint8) error {
	stateID, slots, carried := s.player.Inventory.Snapshot()
	var buf bytes.Buffer
	if err := protocol.WriteSetContainerContent(&buf, windowID, stateID, slots, carried); err != nil {
		return fmt.Errorf("encode set container content: %w", err)
	}
	return s.sender.SendRaw(protocol.PacketSetContainerContent, buf.Bytes())
}

// HandleCloseContainer drops any cursor item held at window close as an
// item entity at the player's position (spec §4.6).
func (s *Session) HandleCloseContainer(data []byte) error {
	var p protocol.CloseContainerPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.WindowID == 0 {
		return nil
	}
	cursor := s.player.Inventory.Cursor()
	if cursor.IsEmpty() {
		return nil
	}
	s.player.Inventory.SetCursor(world.ItemStack{})
	s.world.SpawnItemEntity(cursor, s.player.Position(), world.Vec3{}, 0)
	return nil
}

// HandleSetCreativeModeSlot applies a direct slot write, honored only in
// creative mode (spec §4.6).
func (s *Session) HandleSetCreativeModeSlot(data []byte) error {
	r := bytes.NewReader(data)
	slot, err := protocol.ReadI16(r)
	if err != nil {
		return err
	}
	item, err := protocol.ReadSlotData(r)
	if err != nil {
		return err
	}
	if s.player.GameMode() != world.GameModeCreative {
		return nil
	}
	if slot < 0 || int(slot) >= world.InventorySize {
		return nil
	}
	s.player.Inventory.Set(int(slot), world.ItemStackFromSlotData(item))
	return nil
}
