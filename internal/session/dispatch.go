package session

import (
	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

// HandlePacket dispatches one serverbound Play-phase packet by id. Grounded
// on the teacher's handlePlay packet-id switch, expanded to the packet set
// spec §4.6 names. Any packet outside that minimum set (swing arm, chat,
// client tick end, ...) is consumed and ignored rather than treated as a
// protocol violation — only the packets the session façade actually models
// carry mutation or reconciliation semantics.
func (s *Session) HandlePacket(id int32, data []byte) error {
	switch id {
	case protocol.PacketConfirmTeleportation:
		return s.HandleConfirmTeleportation(data)
	case protocol.PacketSetPlayerPosition:
		return s.HandleSetPlayerPosition(data)
	case protocol.PacketSetPlayerPosAndRot:
		return s.HandleSetPlayerPositionAndRotation(data)
	case protocol.PacketSetPlayerRotation:
		return s.HandleSetPlayerRotation(data)
	case protocol.PacketSetHeldItemSB:
		return s.HandleSetHeldItem(data)
	case protocol.PacketClickContainer:
		return s.HandleClickContainer(data)
	case protocol.PacketCloseContainer:
		return s.HandleCloseContainer(data)
	case protocol.PacketSetCreativeModeSlot:
		return s.HandleSetCreativeModeSlot(data)
	case protocol.PacketPlayerAction:
		return s.HandlePlayerAction(data)
	case protocol.PacketUseItemOn:
		return s.HandleUseItemOn(data)
	default:
		return nil
	}
}
