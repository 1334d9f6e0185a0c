package conn

import (
	"bytes"
	"fmt"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/session"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// gameEventStartWaitingForChunks is vanilla's game-event id for "the client
// should show its loading screen until level chunks arrive" (spec §4.5).
const gameEventStartWaitingForChunks = 13

// startPlay runs the spec §4.5 join sequence: allocate the player, send the
// fixed clientbound Play-entry packets in order, then hand off to C6 for
// chunk streaming and Play-packet handling; keep-alive stays with this
// connection (startKeepAliveLoop, acks handled in handlePlay).
func (c *Connection) startPlay() error {
	entityID := c.wrld.Allocator.AllocatePlayerID()
	player := world.NewPlayer(c.loginUUID, entityID, c.loginUsername)
	player.SetViewDistance(c.cfg.ViewDistance)
	c.wrld.AddPlayer(player)
	c.player = player

	login := protocol.LoginPlayPacket{
		EntityID:            entityID,
		IsHardcore:          false,
		DimensionNames:      []string{"minecraft:overworld"},
		MaxPlayers:          20,
		ViewDistance:        c.cfg.ViewDistance,
		SimulationDistance:  c.cfg.ViewDistance,
		ReducedDebugInfo:    false,
		EnableRespawnScreen: true,
		DoLimitedCrafting:   false,
		DimensionType:       0,
		DimensionName:       "minecraft:overworld",
		HashedSeed:          0,
		GameMode:            uint8(player.GameMode()),
		PreviousGameMode:    -1,
		IsDebug:             false,
		IsFlat:              c.cfg.TerrainGenerator == "flat",
		HasDeathLocation:    false,
		PortalCooldown:      0,
		SeaLevel:            63,
		EnforcesSecureChat:  false,
	}
	var buf bytes.Buffer
	if err := protocol.WriteLoginPlay(&buf, login); err != nil {
		return fmt.Errorf("encode login play: %w", err)
	}
	if err := c.writeRaw(protocol.PacketLoginPlay, buf.Bytes()); err != nil {
		return err
	}

	pos := player.Position()
	bodyYaw, pitch, _ := player.Rotation()
	if err := c.writePacket(protocol.PacketSynchronizePosition, &protocol.SynchronizePositionPacket{
		X: pos.X, Y: pos.Y, Z: pos.Z,
		Yaw: float32(bodyYaw), Pitch: float32(pitch),
		Flags: 0, TeleportID: 0,
	}); err != nil {
		return err
	}

	if err := c.writePacket(protocol.PacketUpdateTime, &protocol.UpdateTimePacket{
		WorldAge:      c.wrld.Time.WorldAge,
		TimeOfDay:     c.wrld.Time.TimeOfDay,
		TimeOfDayRule: true,
	}); err != nil {
		return err
	}

	if err := c.writePacket(protocol.PacketGameEvent, &protocol.GameEventPacket{
		Event: gameEventStartWaitingForChunks,
		Value: 0,
	}); err != nil {
		return err
	}

	spawnChunk := player.ChunkPos()
	if err := c.writePacket(protocol.PacketSetCenterChunk, &protocol.SetCenterChunkPacket{
		ChunkX: spawnChunk.X, ChunkZ: spawnChunk.Z,
	}); err != nil {
		return err
	}

	c.session = session.New(c.log, c.wrld, player, c.reg, c, c.sessionManager)
	c.session.Start(c.ctx)
	c.setPhase(PhasePlay)
	c.startKeepAliveLoop()
	return nil
}

// handlePlay dispatches one serverbound Play-phase packet: keep-alive acks
// are C5's own bookkeeping, everything else belongs to C6.
func (c *Connection) handlePlay(id int32, data []byte) error {
	if id == protocol.PacketKeepAliveSB {
		return c.handleKeepAliveAck(data)
	}
	return c.session.HandlePacket(id, data)
}
