package protocol

import (
	"bytes"
	"io"
)

// ClickContainerPacket is the serverbound Click Container packet: a window
// id, the client's believed state id, the clicked slot/button/mode, the set
// of slots the client expects to change (as hashed slots for
// reconciliation), and the carried (cursor) item, also hashed.
type ClickContainerPacket struct {
	WindowID     uint8
	StateID      int32
	Slot         int16
	Button       int8
	Mode         int32
	ChangedSlots []ClickedSlot
	Carried      HashedSlot
}

// ClickedSlot is one (slot index, expected resulting hashed slot) pair from
// a Click Container packet's changed-slots array.
type ClickedSlot struct {
	Slot int16
	Item HashedSlot
}

// ReadClickContainerPacket decodes the variable-shape Click Container body.
func ReadClickContainerPacket(data []byte) (ClickContainerPacket, error) {
	r := bytes.NewReader(data)
	var p ClickContainerPacket

	windowID, err := ReadU8(r)
	if err != nil {
		return p, err
	}
	p.WindowID = windowID

	if p.StateID, _, err = ReadVarInt(r); err != nil {
		return p, err
	}
	if p.Slot, err = ReadI16(r); err != nil {
		return p, err
	}
	if p.Button, err = ReadI8(r); err != nil {
		return p, err
	}
	if p.Mode, _, err = ReadVarInt(r); err != nil {
		return p, err
	}

	n, _, err := ReadVarInt(r)
	if err != nil {
		return p, err
	}
	p.ChangedSlots = make([]ClickedSlot, 0, n)
	for i := int32(0); i < n; i++ {
		slot, err := ReadI16(r)
		if err != nil {
			return p, err
		}
		hs, err := ReadHashedSlot(r)
		if err != nil {
			return p, err
		}
		p.ChangedSlots = append(p.ChangedSlots, ClickedSlot{Slot: slot, Item: hs})
	}

	if p.Carried, err = ReadHashedSlot(r); err != nil {
		return p, err
	}
	return p, nil
}

// WriteSetContainerContent encodes the clientbound Set Container Content
// packet body used to fully resync a client's view of its inventory.
func WriteSetContainerContent(w io.Writer, windowID uint8, stateID int32, slots []SlotData, carried SlotData) error {
	if err := WriteU8(w, windowID); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, stateID); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int32(len(slots))); err != nil {
		return err
	}
	for _, s := range slots {
		if err := WriteSlotData(w, s); err != nil {
			return err
		}
	}
	return WriteSlotData(w, carried)
}
