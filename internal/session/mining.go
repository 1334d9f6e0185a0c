package session

import (
	"math"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// digState tracks one in-progress Player Action destroy-block sequence
// (spec §4.6: "maintain a per-player destroy state machine with
// (block_pos, start_tick, required_ticks)").
type digState struct {
	pos          world.BlockPos
	startTick    int64
	requiredTick int64
}

// HandlePlayerAction runs the start/cancel/finish destroy-block state
// machine. Grounded on the teacher's mining.go calcBreakTime formula,
// generalized from the 1.8 BlockID<<4|meta state id to this server's 32-bit
// block-state id.
func (s *Session) HandlePlayerAction(data []byte) error {
	var p protocol.PlayerActionPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	pos := world.BlockPosFromLong(p.Location)

	switch p.Status {
	case protocol.PlayerActionStartDigging:
		s.startDigging(pos)
	case protocol.PlayerActionCancelDigging:
		s.digMu.Lock()
		s.dig = nil
		s.digMu.Unlock()
	case protocol.PlayerActionFinishDigging:
		s.finishDigging(pos)
	}
	return nil
}

func (s *Session) startDigging(pos world.BlockPos) {
	required := s.requiredBreakTicks(pos)
	s.digMu.Lock()
	s.dig = &digState{pos: pos, startTick: s.world.Time.WorldAge, requiredTick: required}
	s.digMu.Unlock()
}

// requiredBreakTicks computes required_ticks = hardness / tool_speed /
// (30 if harvestable else 100), floored to 0 (instant break). An
// unbreakable block (no registered hardness) yields a very large
// requirement so finish actions against it are always rejected.
func (s *Session) requiredBreakTicks(pos world.BlockPos) int64 {
	stateID := s.world.Store.GetBlock(pos)
	block, ok := s.reg.Blocks.ByID(stateID)
	if !ok || block.Hardness == nil {
		return math.MaxInt64
	}
	hardness := *block.Hardness
	if hardness <= 0 {
		return 0
	}

	held := s.player.Inventory.HeldItem()
	toolSpeed := block.ToolSpeed(held.ItemID, s.reg.Materials)
	if toolSpeed <= 0 {
		toolSpeed = 1.0
	}

	divisor := 100.0
	if block.CanHarvest(held.ItemID) {
		divisor = 30.0
	}

	ticks := hardness / toolSpeed / divisor
	if ticks < 0 {
		ticks = 0
	}
	return int64(math.Floor(ticks))
}

// finishDigging applies the break only if enough ticks have genuinely
// elapsed (spec §4.6: "ignore finish actions whose elapsed time is < 0.7 x
// required_ticks") and the finished position matches the tracked dig.
func (s *Session) finishDigging(pos world.BlockPos) {
	s.digMu.Lock()
	dig := s.dig
	s.dig = nil
	s.digMu.Unlock()

	if dig == nil || dig.pos != pos {
		return
	}
	elapsed := s.world.Time.WorldAge - dig.startTick
	if float64(elapsed) < 0.7*float64(dig.requiredTick) {
		return
	}

	s.world.Store.SetBlock(pos, registryAirID)
	s.manager.BroadcastBlockUpdate(pos, registryAirID)
}

// registryAirID is air's fixed block-state id (spec's data model: "Id 0
// means air").
const registryAirID int32 = 0

// HandleUseItemOn resolves a held block-placing item against the targeted
// face and mutates C2 (spec §4.6). The swing/offhand fields of the full
// packet are not modeled; only the minimal place-a-block path is.
func (s *Session) HandleUseItemOn(data []byte) error {
	var p protocol.UseItemOnPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}
	target := world.BlockPosFromLong(p.Location)
	placeAt := faceOffset(target, int8(p.Face))

	held := s.player.Inventory.HeldItem()
	item, ok := s.reg.Items.ByID(held.ItemID)
	if !ok || item.PlacesBlock == 0 {
		return s.sender.SendPacket(protocol.PacketAcknowledgeBlockChanges, &protocol.AcknowledgeBlockChangesPacket{Sequence: p.Sequence})
	}

	s.world.Store.SetBlock(placeAt, item.PlacesBlock)
	s.manager.BroadcastBlockUpdate(placeAt, item.PlacesBlock)
	return s.sender.SendPacket(protocol.PacketAcknowledgeBlockChanges, &protocol.AcknowledgeBlockChangesPacket{Sequence: p.Sequence})
}

// faceOffset returns the block position adjacent to target on the given
// face (0=-Y,1=+Y,2=-Z,3=+Z,4=-X,5=+X), the standard block-face encoding.
func faceOffset(target world.BlockPos, face int8) world.BlockPos {
	switch face {
	case 0:
		return world.BlockPos{X: target.X, Y: target.Y - 1, Z: target.Z}
	case 1:
		return world.BlockPos{X: target.X, Y: target.Y + 1, Z: target.Z}
	case 2:
		return world.BlockPos{X: target.X, Y: target.Y, Z: target.Z - 1}
	case 3:
		return world.BlockPos{X: target.X, Y: target.Y, Z: target.Z + 1}
	case 4:
		return world.BlockPos{X: target.X - 1, Y: target.Y, Z: target.Z}
	case 5:
		return world.BlockPos{X: target.X + 1, Y: target.Y, Z: target.Z}
	default:
		return target
	}
}
