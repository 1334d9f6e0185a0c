package world

import "sync/atomic"

// Entity id ranges from spec §3: players occupy [1, 999], every other kind
// of entity starts at 1000 and counts up.
const (
	playerIDFloor = 1
	entityIDFloor = 1000
)

// EntityIDAllocator hands out unique entity ids from two independent
// monotonic counters, grounded on the teacher's Manager.nextEntityID
// (atomic.Int32), split into a player range and a non-player range per
// spec §4.3 instead of the teacher's single shared counter.
type EntityIDAllocator struct {
	nextPlayer atomic.Int32
	nextOther  atomic.Int32
}

// NewEntityIDAllocator creates an allocator seeded so the first calls
// return playerIDFloor and entityIDFloor respectively.
func NewEntityIDAllocator() *EntityIDAllocator {
	a := &EntityIDAllocator{}
	a.nextPlayer.Store(playerIDFloor - 1)
	a.nextOther.Store(entityIDFloor - 1)
	return a
}

// AllocatePlayerID returns the next id in [1, 999].
func (a *EntityIDAllocator) AllocatePlayerID() int32 {
	return a.nextPlayer.Add(1)
}

// AllocateEntityID returns the next id in [1000, ...).
func (a *EntityIDAllocator) AllocateEntityID() int32 {
	return a.nextOther.Add(1)
}

// ItemEntity is a dropped-item entity: position, velocity, and a pickup
// delay before a player can re-collect it. Grounded on the teacher's
// player.ItemEntity, generalized from int16 protocol-unit velocity to plain
// blocks-per-tick floats (the wire encoding is C1's concern, not the
// entity's).
type ItemEntity struct {
	EntityID         int32
	Item             ItemStack
	Pos              Vec3
	Velocity         Vec3
	PickupDelayTicks int32
}

const gravityPerTick = 0.04

// Tick applies one tick of gravity and simple ground collision against the
// chunk store, and counts down the pickup delay. Gameplay physics beyond
// place/break/drop is an explicit spec Non-goal, so collision here is
// reduced to "stop falling through solid ground", nothing more.
func (e *ItemEntity) Tick(store *ChunkStore) {
	if e.PickupDelayTicks > 0 {
		e.PickupDelayTicks--
	}

	e.Velocity.Y -= gravityPerTick
	next := Vec3{X: e.Pos.X + e.Velocity.X, Y: e.Pos.Y + e.Velocity.Y, Z: e.Pos.Z + e.Velocity.Z}

	below := BlockPos{X: int32(floorDiv(next.X)), Y: int32(floorDiv(next.Y)) - 1, Z: int32(floorDiv(next.Z))}
	if store.GetBlock(below) != 0 && e.Velocity.Y < 0 {
		next.Y = float64(below.Y + 1)
		e.Velocity.Y = 0
		e.Velocity.X *= 0.6
		e.Velocity.Z *= 0.6
	}
	e.Pos = next
}

// CanPickUp reports whether the pickup delay has elapsed.
func (e *ItemEntity) CanPickUp() bool { return e.PickupDelayTicks <= 0 }
