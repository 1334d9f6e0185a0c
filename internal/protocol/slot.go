package protocol

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/OCharnyshevich/minecraft-server/internal/nbt"
)

// Component ids this server understands the *shape* of (not the semantics —
// SlotData's component data is opaque to the server per the data model).
// Each shape tells the skip table how many bytes to consume so the rest of
// the packet can still be parsed even though the payload itself is never
// interpreted.
const (
	ComponentCustomData    int32 = 0  // NBT compound
	ComponentMaxStackSize  int32 = 1  // VarInt
	ComponentMaxDamage     int32 = 2  // VarInt
	ComponentDamage        int32 = 3  // VarInt
	ComponentUnbreakable   int32 = 4  // empty
	ComponentCustomName    int32 = 5  // NBT (text component)
	ComponentItemName      int32 = 6  // NBT (text component)
	ComponentRarity        int32 = 7  // VarInt
	ComponentFireResistant int32 = 8  // empty
	ComponentTooltip       int32 = 9  // bool
	ComponentEnchantGlint  int32 = 10 // bool
)

type componentShape int

const (
	shapeEmpty componentShape = iota
	shapeVarInt
	shapeBool
	shapeNBT
)

var componentShapes = map[int32]componentShape{
	ComponentCustomData:    shapeNBT,
	ComponentMaxStackSize:  shapeVarInt,
	ComponentMaxDamage:     shapeVarInt,
	ComponentDamage:        shapeVarInt,
	ComponentUnbreakable:   shapeEmpty,
	ComponentCustomName:    shapeNBT,
	ComponentItemName:      shapeNBT,
	ComponentRarity:        shapeVarInt,
	ComponentFireResistant: shapeEmpty,
	ComponentTooltip:       shapeBool,
	ComponentEnchantGlint:  shapeBool,
}

// Component is one opaque component entry attached to a SlotData item. Raw
// holds the exact bytes of its payload as they appeared (or will appear) on
// the wire; the server never interprets it beyond knowing how many bytes to
// skip, per the data model's "opaque component data".
type Component struct {
	Type int32
	Raw  []byte
}

// readComponentPayload consumes exactly the bytes belonging to a component
// of the given type using the skip table, returning them verbatim. An
// unregistered type cannot be safely skipped and is a decode error, matching
// the spec's "unknown types surface a decode error to the caller".
func readComponentPayload(r io.Reader, typ int32) ([]byte, error) {
	shape, ok := componentShapes[typ]
	if !ok {
		return nil, fmt.Errorf("protocol: unknown component type %d", typ)
	}

	var buf bytes.Buffer
	tee := io.TeeReader(r, &buf)

	switch shape {
	case shapeEmpty:
		// no payload
	case shapeVarInt:
		if _, _, err := ReadVarInt(tee); err != nil {
			return nil, fmt.Errorf("component %d varint payload: %w", typ, err)
		}
	case shapeBool:
		if _, err := ReadBool(tee); err != nil {
			return nil, fmt.Errorf("component %d bool payload: %w", typ, err)
		}
	case shapeNBT:
		if err := nbt.SkipAny(tee); err != nil {
			return nil, fmt.Errorf("component %d nbt payload: %w", typ, err)
		}
	}
	return buf.Bytes(), nil
}

// SlotData is the modern wire representation of an inventory slot.
type SlotData struct {
	Present  bool
	ItemID   int32
	Count    int32
	ToAdd    []Component
	ToRemove []int32
}

// IsEmpty reports whether this slot represents an empty stack.
func (s SlotData) IsEmpty() bool { return !s.Present || s.Count <= 0 }

// ReadSlotData decodes the modern Slot wire format: VarInt count; if 0,
// empty; else VarInt item id, VarInt n_add, VarInt n_remove, n_add
// (type,payload) components, n_remove component types.
func ReadSlotData(r io.Reader) (SlotData, error) {
	count, _, err := ReadVarInt(r)
	if err != nil {
		return SlotData{}, fmt.Errorf("read slot count: %w", err)
	}
	if count == 0 {
		return SlotData{}, nil
	}

	itemID, _, err := ReadVarInt(r)
	if err != nil {
		return SlotData{}, fmt.Errorf("read slot item id: %w", err)
	}
	nAdd, _, err := ReadVarInt(r)
	if err != nil {
		return SlotData{}, fmt.Errorf("read slot n_add: %w", err)
	}
	nRemove, _, err := ReadVarInt(r)
	if err != nil {
		return SlotData{}, fmt.Errorf("read slot n_remove: %w", err)
	}

	slot := SlotData{Present: true, ItemID: itemID, Count: count}

	for i := int32(0); i < nAdd; i++ {
		typ, _, err := ReadVarInt(r)
		if err != nil {
			return SlotData{}, fmt.Errorf("read slot component %d type: %w", i, err)
		}
		payload, err := readComponentPayload(r, typ)
		if err != nil {
			return SlotData{}, err
		}
		slot.ToAdd = append(slot.ToAdd, Component{Type: typ, Raw: payload})
	}

	for i := int32(0); i < nRemove; i++ {
		typ, _, err := ReadVarInt(r)
		if err != nil {
			return SlotData{}, fmt.Errorf("read slot removed-component %d type: %w", i, err)
		}
		slot.ToRemove = append(slot.ToRemove, typ)
	}

	return slot, nil
}

// WriteSlotData encodes the modern Slot wire format.
func WriteSlotData(w io.Writer, s SlotData) error {
	if s.IsEmpty() {
		_, err := WriteVarInt(w, 0)
		return err
	}
	if _, err := WriteVarInt(w, s.Count); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, s.ItemID); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int32(len(s.ToAdd))); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int32(len(s.ToRemove))); err != nil {
		return err
	}
	for _, c := range s.ToAdd {
		if _, err := WriteVarInt(w, c.Type); err != nil {
			return err
		}
		if _, err := w.Write(c.Raw); err != nil {
			return err
		}
	}
	for _, typ := range s.ToRemove {
		if _, err := WriteVarInt(w, typ); err != nil {
			return err
		}
	}
	return nil
}

// HashedComponent is a (type, CRC32C-of-payload) pair as sent in the hashed
// slot form used only by Click Container.
type HashedComponent struct {
	Type int32
	CRC  int32
}

// HashedSlot is the hashed SlotData form: used by the client to describe its
// expected resulting slot state without re-sending full component payloads.
type HashedSlot struct {
	Present  bool
	ItemID   int32
	Count    int32
	ToAdd    []HashedComponent
	ToRemove []int32
}

// ReadHashedSlot decodes the Click Container hashed slot form.
func ReadHashedSlot(r io.Reader) (HashedSlot, error) {
	present, err := ReadBool(r)
	if err != nil {
		return HashedSlot{}, fmt.Errorf("read hashed slot present: %w", err)
	}
	if !present {
		return HashedSlot{}, nil
	}

	itemID, _, err := ReadVarInt(r)
	if err != nil {
		return HashedSlot{}, fmt.Errorf("read hashed slot item id: %w", err)
	}
	count, _, err := ReadVarInt(r)
	if err != nil {
		return HashedSlot{}, fmt.Errorf("read hashed slot count: %w", err)
	}
	nAdd, _, err := ReadVarInt(r)
	if err != nil {
		return HashedSlot{}, fmt.Errorf("read hashed slot n_add: %w", err)
	}
	nRemove, _, err := ReadVarInt(r)
	if err != nil {
		return HashedSlot{}, fmt.Errorf("read hashed slot n_remove: %w", err)
	}

	hs := HashedSlot{Present: true, ItemID: itemID, Count: count}
	for i := int32(0); i < nAdd; i++ {
		typ, _, err := ReadVarInt(r)
		if err != nil {
			return HashedSlot{}, fmt.Errorf("read hashed component %d type: %w", i, err)
		}
		crc, err := ReadI32(r)
		if err != nil {
			return HashedSlot{}, fmt.Errorf("read hashed component %d crc: %w", i, err)
		}
		hs.ToAdd = append(hs.ToAdd, HashedComponent{Type: typ, CRC: crc})
	}
	for i := int32(0); i < nRemove; i++ {
		typ, _, err := ReadVarInt(r)
		if err != nil {
			return HashedSlot{}, fmt.Errorf("read hashed removed-component %d: %w", i, err)
		}
		hs.ToRemove = append(hs.ToRemove, typ)
	}
	return hs, nil
}

// crc32cTable is the Castagnoli polynomial table the hashed slot form uses.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// ComponentCRC32C computes the CRC32C checksum of a component's payload.
func ComponentCRC32C(payload []byte) int32 {
	return int32(crc32.Checksum(payload, crc32cTable))
}

// MatchesHashed reports whether the server's canonical slot matches the
// client's hashed expectation: same emptiness, same item id/count, and every
// added component's payload hashes to the same CRC (removed-component sets
// must match too).
func (s SlotData) MatchesHashed(h HashedSlot) bool {
	if s.IsEmpty() != !h.Present {
		return s.IsEmpty() == !h.Present
	}
	if s.IsEmpty() {
		return true
	}
	if s.ItemID != h.ItemID || s.Count != h.Count {
		return false
	}
	if len(s.ToAdd) != len(h.ToAdd) || len(s.ToRemove) != len(h.ToRemove) {
		return false
	}
	for i, c := range s.ToAdd {
		if c.Type != h.ToAdd[i].Type || ComponentCRC32C(c.Raw) != h.ToAdd[i].CRC {
			return false
		}
	}
	for i, t := range s.ToRemove {
		if t != h.ToRemove[i] {
			return false
		}
	}
	return true
}
