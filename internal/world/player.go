package world

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// GameMode mirrors the protocol's gamemode enum.
type GameMode int32

const (
	GameModeSurvival GameMode = iota
	GameModeCreative
	GameModeAdventure
	GameModeSpectator
)

// ChunkPos identifies a chunk coordinate, used for the player's loaded and
// loading chunk sets (spec §3/§4.4) and shared with the streaming pipeline.
type ChunkPos struct{ X, Z int32 }

// Player is a connected client's authoritative server-side state: identity,
// position, inventory, and the chunk/entity visibility bookkeeping the
// streaming pipeline and session façade drive. Grounded on the teacher's
// player.Player, reshaped per spec §3's field list and §5's lock-splitting
// rules (position/rotation unlocked, chunk sets under one lock, visible
// entities under a separate lock).
type Player struct {
	UUID       uuid.UUID
	EntityID   int32
	Username   string
	Inventory  *Inventory

	gameMode     atomic.Int32
	viewDistance atomic.Int32
	sneaking     atomic.Bool

	// Position/rotation are written only by this player's own connection
	// read task; other tasks read without locking and must tolerate a
	// one-step-stale value, per spec §5.
	posX, posY, posZ          atomic.Uint64 // math.Float64bits
	bodyYaw, pitch, headYaw   atomic.Uint64 // math.Float64bits, degrees
	onGround                  atomic.Bool

	chunkMu       sync.Mutex
	loadedChunks  map[ChunkPos]struct{}
	loadingChunks map[ChunkPos]struct{}

	visibleMu       sync.Mutex
	visibleEntities map[int32]struct{}
}

// NewPlayer creates a player at the spawn position (0, 64, 0) facing north.
func NewPlayer(id uuid.UUID, entityID int32, username string) *Player {
	p := &Player{
		UUID:            id,
		EntityID:        entityID,
		Username:        username,
		Inventory:       NewInventory(),
		loadedChunks:    make(map[ChunkPos]struct{}),
		loadingChunks:   make(map[ChunkPos]struct{}),
		visibleEntities: make(map[int32]struct{}),
	}
	p.viewDistance.Store(10)
	p.SetPosition(Vec3{X: 0, Y: 64, Z: 0})
	return p
}

// Position returns the player's current position. Unlocked: see the struct
// doc comment on staleness.
func (p *Player) Position() Vec3 {
	return Vec3{
		X: math.Float64frombits(p.posX.Load()),
		Y: math.Float64frombits(p.posY.Load()),
		Z: math.Float64frombits(p.posZ.Load()),
	}
}

// SetPosition is called only from the owning connection's read task.
func (p *Player) SetPosition(v Vec3) {
	p.posX.Store(math.Float64bits(v.X))
	p.posY.Store(math.Float64bits(v.Y))
	p.posZ.Store(math.Float64bits(v.Z))
}

// Rotation returns (body yaw, pitch, head yaw) in degrees.
func (p *Player) Rotation() (bodyYaw, pitch, headYaw float64) {
	return math.Float64frombits(p.bodyYaw.Load()),
		math.Float64frombits(p.pitch.Load()),
		math.Float64frombits(p.headYaw.Load())
}

// SetRotation sets body yaw and pitch, and sets head yaw to the body yaw;
// there is no separate head-yaw setter, so head yaw always follows body yaw.
func (p *Player) SetRotation(bodyYaw, pitch float64) {
	p.bodyYaw.Store(math.Float64bits(bodyYaw))
	p.pitch.Store(math.Float64bits(pitch))
	p.headYaw.Store(math.Float64bits(bodyYaw))
}

// OnGround reports the last-known on-ground flag.
func (p *Player) OnGround() bool { return p.onGround.Load() }

// SetOnGround updates the on-ground flag.
func (p *Player) SetOnGround(v bool) { p.onGround.Store(v) }

// ChunkPos returns the chunk coordinate containing the player's position.
func (p *Player) ChunkPos() ChunkPos {
	pos := p.Position()
	return ChunkPos{X: int32(floorDiv(pos.X)) >> 4, Z: int32(floorDiv(pos.Z)) >> 4}
}

// Sneaking reports the player's current sneak state.
func (p *Player) Sneaking() bool { return p.sneaking.Load() }

// SetSneaking updates the sneak state.
func (p *Player) SetSneaking(v bool) { p.sneaking.Store(v) }

// GameMode returns the player's current game mode.
func (p *Player) GameMode() GameMode { return GameMode(p.gameMode.Load()) }

// SetGameMode updates the player's game mode.
func (p *Player) SetGameMode(m GameMode) { p.gameMode.Store(int32(m)) }

// ViewDistance returns the player's configured view distance in chunks.
func (p *Player) ViewDistance() int32 { return p.viewDistance.Load() }

// SetViewDistance updates the player's view distance.
func (p *Player) SetViewDistance(v int32) { p.viewDistance.Store(v) }

// HasChunkLoaded reports whether a chunk is in the player's loaded set.
func (p *Player) HasChunkLoaded(c ChunkPos) bool {
	p.chunkMu.Lock()
	defer p.chunkMu.Unlock()
	_, ok := p.loadedChunks[c]
	return ok
}

// MarkChunkLoaded adds a chunk to the loaded set and removes it from loading.
func (p *Player) MarkChunkLoaded(c ChunkPos) {
	p.chunkMu.Lock()
	defer p.chunkMu.Unlock()
	p.loadedChunks[c] = struct{}{}
	delete(p.loadingChunks, c)
}

// UnmarkChunkLoaded removes a chunk from the loaded set (unload/orphan).
func (p *Player) UnmarkChunkLoaded(c ChunkPos) {
	p.chunkMu.Lock()
	defer p.chunkMu.Unlock()
	delete(p.loadedChunks, c)
}

// TryMarkChunkLoading attempts the CAS-like transition {not loaded, not
// loading} -> loading, returning false if the chunk is already loaded or
// already in flight.
func (p *Player) TryMarkChunkLoading(c ChunkPos) bool {
	p.chunkMu.Lock()
	defer p.chunkMu.Unlock()
	if _, loaded := p.loadedChunks[c]; loaded {
		return false
	}
	if _, loading := p.loadingChunks[c]; loading {
		return false
	}
	p.loadingChunks[c] = struct{}{}
	return true
}

// ClearChunkLoading removes a chunk from the in-progress set without
// marking it loaded (cancellation or failure).
func (p *Player) ClearChunkLoading(c ChunkPos) {
	p.chunkMu.Lock()
	defer p.chunkMu.Unlock()
	delete(p.loadingChunks, c)
}

// LoadedChunksSnapshot returns a copy of the loaded-chunk set.
func (p *Player) LoadedChunksSnapshot() []ChunkPos {
	p.chunkMu.Lock()
	defer p.chunkMu.Unlock()
	out := make([]ChunkPos, 0, len(p.loadedChunks))
	for c := range p.loadedChunks {
		out = append(out, c)
	}
	return out
}

// IsEntityVisible reports whether an entity id is in the visible set.
func (p *Player) IsEntityVisible(id int32) bool {
	p.visibleMu.Lock()
	defer p.visibleMu.Unlock()
	_, ok := p.visibleEntities[id]
	return ok
}

// MarkEntityVisible adds an entity id to the visible set.
func (p *Player) MarkEntityVisible(id int32) {
	p.visibleMu.Lock()
	defer p.visibleMu.Unlock()
	p.visibleEntities[id] = struct{}{}
}

// UnmarkEntityVisible removes an entity id from the visible set.
func (p *Player) UnmarkEntityVisible(id int32) {
	p.visibleMu.Lock()
	defer p.visibleMu.Unlock()
	delete(p.visibleEntities, id)
}
