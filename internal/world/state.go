package world

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	tickRate         = 50 * time.Millisecond // 20 Hz, spec §5
	itemDespawnTicks = 5 * 60 * 20           // 5 minutes, grounded on the teacher's cleanupItemEntities
)

// TickHook is called once per world tick after time/entities have been
// advanced, e.g. to wake sessions with periodic work pending (spec §4.3).
type TickHook func(w *World)

// World is C3: the single owner of the players map, the entities map, the
// clock, and the chunk store, all behind concurrent-safe accessors per
// spec §3's ownership rule ("C3 exclusively owns ... behind concurrent-
// dictionary abstractions"). Grounded on the teacher's player.Manager
// (players/byUUID maps, atomic entity-id counter, periodic Tick), expanded
// to also own the chunk store and time state per this spec's C3 scope.
type World struct {
	mu       sync.RWMutex
	players  map[uuid.UUID]*Player
	entities map[int32]*ItemEntity

	Allocator *EntityIDAllocator
	Time      *TimeState
	Store     *ChunkStore

	hooksMu sync.Mutex
	hooks   []TickHook
}

// NewWorld creates an empty world over the given terrain generator.
func NewWorld(gen TerrainGenerator) *World {
	return &World{
		players:   make(map[uuid.UUID]*Player),
		entities:  make(map[int32]*ItemEntity),
		Allocator: NewEntityIDAllocator(),
		Time:      NewTimeState(),
		Store:     NewChunkStore(gen),
	}
}

// AddPlayer registers a newly connected player.
func (w *World) AddPlayer(p *Player) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.players[p.UUID] = p
}

// RemovePlayer unregisters a player on disconnect.
func (w *World) RemovePlayer(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.players, id)
}

// Player looks up a connected player by UUID.
func (w *World) Player(id uuid.UUID) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	return p, ok
}

// ForEachPlayer calls fn for a snapshot of connected players, taken under
// the read lock so fn can itself touch the world without deadlocking.
func (w *World) ForEachPlayer(fn func(*Player)) {
	w.mu.RLock()
	snapshot := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		snapshot = append(snapshot, p)
	}
	w.mu.RUnlock()
	for _, p := range snapshot {
		fn(p)
	}
}

// PlayerCount returns the number of connected players.
func (w *World) PlayerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// SpawnItemEntity allocates an entity id for a dropped item and registers it.
func (w *World) SpawnItemEntity(item ItemStack, pos, velocity Vec3, pickupDelayTicks int32) *ItemEntity {
	ie := &ItemEntity{
		EntityID:         w.Allocator.AllocateEntityID(),
		Item:             item,
		Pos:              pos,
		Velocity:         velocity,
		PickupDelayTicks: pickupDelayTicks,
	}
	w.mu.Lock()
	w.entities[ie.EntityID] = ie
	w.mu.Unlock()
	return ie
}

// RemoveEntity unregisters an entity (picked up, expired, or destroyed).
func (w *World) RemoveEntity(id int32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entities, id)
}

// ForEachEntity calls fn for a snapshot of registered entities.
func (w *World) ForEachEntity(fn func(*ItemEntity)) {
	w.mu.RLock()
	snapshot := make([]*ItemEntity, 0, len(w.entities))
	for _, e := range w.entities {
		snapshot = append(snapshot, e)
	}
	w.mu.RUnlock()
	for _, e := range snapshot {
		fn(e)
	}
}

// AddTickHook registers a callback invoked at the end of every tick.
func (w *World) AddTickHook(h TickHook) {
	w.hooksMu.Lock()
	defer w.hooksMu.Unlock()
	w.hooks = append(w.hooks, h)
}

// RunTickLoop drives the single 20 Hz world tick until ctx is cancelled.
// Each tick: advance TimeState, update dropped-item entities (gravity,
// pickup-delay countdown), reap despawned entities, then run tick hooks so
// sessions can act on periodic work. Per spec §7, a panic here is the one
// fatal error class that is allowed to propagate — the caller decides
// whether to recover() at the call site.
func (w *World) RunTickLoop(ctx context.Context) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	age := int64(0)
	spawnedAt := make(map[int32]int64)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Time.Tick()
			age++

			var expired []int32
			w.ForEachEntity(func(e *ItemEntity) {
				if _, seen := spawnedAt[e.EntityID]; !seen {
					spawnedAt[e.EntityID] = age
				}
				e.Tick(w.Store)
				if age-spawnedAt[e.EntityID] > itemDespawnTicks {
					expired = append(expired, e.EntityID)
				}
			})
			for _, id := range expired {
				w.RemoveEntity(id)
				delete(spawnedAt, id)
			}

			w.hooksMu.Lock()
			hooks := make([]TickHook, len(w.hooks))
			copy(hooks, w.hooks)
			w.hooksMu.Unlock()
			for _, h := range hooks {
				h(w)
			}
		}
	}
}
