// Package pipeline is C4: the per-session chunk-streaming pipeline. It turns
// a player's position into a prioritized, bounded stream of chunk-data
// writes, with a worker pool and a health monitor that retries stuck or
// failed loads. No teacher file implements this (the teacher sends all
// initial chunks synchronously from startPlay's sendInitialChunks); the
// worker-pool/pending-set shape is grounded on the other_examples
// dantero-ps-mini-mc-go ChunkStreamer, generalized from a plain channel
// queue to the CAS-protected immutable-snapshot priority model spec §9
// calls for.
package pipeline

import (
	"math"
	"sync"
	"time"

	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// RequestState is the lifecycle of a single chunk-load request (spec §3).
type RequestState int

const (
	StatePending RequestState = iota
	StateQueued
	StateLoading
	StateLoaded
	StateCancelled
	StateFailed
	StateRetrying
)

func (s RequestState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateQueued:
		return "queued"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	case StateRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

// ChunkCoord is a chunk coordinate pair, the pipeline's unit of work. Shared
// with world.Player's loaded/loading chunk sets so the worker pool can mark
// a player's sets directly without converting between two identical types.
type ChunkCoord = world.ChunkPos

// ChunkLoadRequest is an immutable snapshot of one coordinate's load state
// (spec §3). Every transition produces a new snapshot rather than mutating
// this one in place — callers install the new snapshot via the manager's
// CAS-protected map (spec §9 "true immutability").
type ChunkLoadRequest struct {
	Coord       ChunkCoord
	State       RequestState
	Priority    int64
	CreatedAt   time.Time
	StartedAt   time.Time // zero if never started
	RetryCount  int
	LastRetryAt time.Time // zero if never retried
	Err         string
}

func newRequest(coord ChunkCoord, priority int64, now time.Time) *ChunkLoadRequest {
	return &ChunkLoadRequest{
		Coord:     coord,
		State:     StatePending,
		Priority:  priority,
		CreatedAt: now,
	}
}

func (r *ChunkLoadRequest) with(mutate func(*ChunkLoadRequest)) *ChunkLoadRequest {
	cp := *r
	mutate(&cp)
	return &cp
}

// computePriority implements spec §4.4's formula. stable is true once a
// request has survived at least one debounce cycle without being recomputed
// for a boundary crossing (approximated here as "not brand new this tick").
func computePriority(coord, playerChunk ChunkCoord, retryCount int, age time.Duration, stable bool) int64 {
	manhattan := manhattanDistance(coord, playerChunk)
	p := int64(1_000_000)
	p -= 100 * int64(manhattan)
	p -= 500 * int64(retryCount)

	ageSeconds := age.Seconds()
	if ageSeconds < 0 {
		ageSeconds = 0
	}
	bonus := int64(math.Floor(10 * math.Log(1+ageSeconds)))
	if bonus > 100 {
		bonus = 100
	}
	p += bonus

	if stable {
		p += 50
	}
	return p
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func manhattanDistance(a, b ChunkCoord) int32 {
	return abs32(a.X-b.X) + abs32(a.Z-b.Z)
}

// euclideanWithin reports whether coord is within radius chunk-distance of
// center using true Euclidean distance (spec §4.4: "circular disc").
func euclideanWithin(coord, center ChunkCoord, radius int32) bool {
	dx := float64(coord.X - center.X)
	dz := float64(coord.Z - center.Z)
	return dx*dx+dz*dz <= float64(radius)*float64(radius)
}

// requestMap is the CAS-protected map of coordinate to current snapshot
// (spec §9: "atomic compare-and-swap on transition to prevent lost
// updates"). A single mutex guards both the map and the desired set per
// spec §5 ("the desired-set and request map under a per-pipeline lock").
type requestMap struct {
	mu         sync.Mutex
	requests   map[ChunkCoord]*ChunkLoadRequest
	desired    map[ChunkCoord]struct{}
	playerPos  ChunkCoord
	viewRadius int32
}

func newRequestMap() *requestMap {
	return &requestMap{
		requests: make(map[ChunkCoord]*ChunkLoadRequest),
		desired:  make(map[ChunkCoord]struct{}),
	}
}

// get returns the current snapshot for a coordinate, if any.
func (m *requestMap) get(coord ChunkCoord) (*ChunkLoadRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[coord]
	return r, ok
}

// compareAndSwap installs next in place of old only if the map still holds
// exactly old for coord (identity comparison on the pointer, since every
// transition allocates a fresh snapshot).
func (m *requestMap) compareAndSwap(coord ChunkCoord, old, next *ChunkLoadRequest) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.requests[coord]
	if ok != (old != nil) {
		return false
	}
	if old != nil && cur != old {
		return false
	}
	m.requests[coord] = next
	return true
}

func (m *requestMap) isDesired(coord ChunkCoord) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.desired[coord]
	return ok
}

// withinUnloadBuffer reports whether coord is still within view-radius+
// UnloadBuffer chunks of the player (spec §9: "Keep both" — the desired set
// stays a plain view-distance disc, but the orphan check gets a wider
// radius so a player oscillating right at the edge doesn't thrash
// cancel/reload every health-check tick).
func (m *requestMap) withinUnloadBuffer(coord ChunkCoord) bool {
	m.mu.Lock()
	center := m.playerPos
	radius := m.viewRadius
	m.mu.Unlock()
	return euclideanWithin(coord, center, radius+UnloadBuffer)
}

func (m *requestMap) snapshotRequests() []*ChunkLoadRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ChunkLoadRequest, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, r)
	}
	return out
}
