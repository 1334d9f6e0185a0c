package session

import (
	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// HandleSetPlayerPosition applies a plain movement update and, on a chunk
// boundary crossing, recenters the streaming pipeline (spec §4.4/§4.6).
func (s *Session) HandleSetPlayerPosition(data []byte) error {
	var p protocol.SetPlayerPositionPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	before := s.player.ChunkPos()
	s.player.SetPosition(world.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	s.player.SetOnGround(p.Flags&0x01 != 0)
	s.maybeRecenter(before)
	return nil
}

// HandleSetPlayerPositionAndRotation applies a combined movement+look update.
func (s *Session) HandleSetPlayerPositionAndRotation(data []byte) error {
	var p protocol.SetPlayerPositionAndRotationPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	before := s.player.ChunkPos()
	s.player.SetPosition(world.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	s.player.SetRotation(float64(p.Yaw), float64(p.Pitch))
	s.player.SetOnGround(p.Flags&0x01 != 0)
	s.maybeRecenter(before)
	return nil
}

// HandleSetPlayerRotation applies a look-only update.
func (s *Session) HandleSetPlayerRotation(data []byte) error {
	var p protocol.SetPlayerRotationPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	s.player.SetRotation(float64(p.Yaw), float64(p.Pitch))
	s.player.SetOnGround(p.Flags&0x01 != 0)
	return nil
}

// HandleConfirmTeleportation just consumes the packet; this server never
// reconciles a rejected teleport, so the id itself carries no state.
func (s *Session) HandleConfirmTeleportation(data []byte) error {
	var p protocol.ConfirmTeleportationPacket
	return protocol.Unmarshal(data, &p)
}

// maybeRecenter updates the pipeline's desired set and announces a new view
// center whenever the player's chunk coordinate has changed.
func (s *Session) maybeRecenter(before world.ChunkPos) {
	after := s.player.ChunkPos()
	if after == before {
		return
	}
	s.pipeline.UpdateDesired(after, s.player.ViewDistance())
	_ = s.sender.SendPacket(protocol.PacketSetCenterChunk, &protocol.SetCenterChunkPacket{
		ChunkX: after.X,
		ChunkZ: after.Z,
	})
}

// HandleSetHeldItem updates the active hotbar slot.
func (s *Session) HandleSetHeldItem(data []byte) error {
	var p protocol.SetHeldItemPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Slot < 0 || p.Slot > 8 {
		return nil
	}
	s.player.Inventory.SetSelectedHotbar(int32(p.Slot))
	return nil
}
