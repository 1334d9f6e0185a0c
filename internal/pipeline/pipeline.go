package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

const (
	debounceInterval    = 150 * time.Millisecond
	defaultWorkerCount  = 3
	perLoadTimeout      = 5 * time.Second
	healthCheckInterval = 1 * time.Second
	stuckTimeout        = 30 * time.Second
	retryBackoff        = 2 * time.Second
	maxRetries          = 3
	unloadBuffer        = 2 // spec §9: +2 buffer for orphan detection only
)

// ChunkSource is C2, the collaborator that supplies (and lazily generates)
// chunks.
type ChunkSource interface {
	GetOrCreate(cx, cz int32) *world.Chunk
}

// ChunkWriter is the C5 collaborator a worker writes a serialized chunk-data
// packet through. Implementations own the connection's outbound queue
// (spec §5: "the per-connection queue is the single point that serializes
// order"); the pipeline never touches a socket directly.
type ChunkWriter interface {
	WriteChunkPacket(ctx context.Context, body []byte) error
}

// Pipeline is C4: one instance per session, composed of a request manager,
// a priority work queue, a fixed worker pool, and a health monitor. New
// package — see DESIGN.md for the ChunkStreamer grounding this worker-pool
// shape is adapted from.
type Pipeline struct {
	log     *slog.Logger
	source  ChunkSource
	writer  ChunkWriter
	player  *world.Player
	manager *requestMap
	queue   *workQueue

	debounceMu   sync.Mutex
	debounceTmr  *time.Timer
	pendingApply bool
	started      bool

	workerCount int
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// New creates a pipeline for one player's session. Workers and the health
// monitor are started by Run.
func New(log *slog.Logger, source ChunkSource, writer ChunkWriter, player *world.Player) *Pipeline {
	return &Pipeline{
		log:         log,
		source:      source,
		writer:      writer,
		player:      player,
		manager:     newRequestMap(),
		queue:       newWorkQueue(),
		workerCount: defaultWorkerCount,
	}
}

// Run starts the worker pool and health monitor; it returns once ctx is
// cancelled, after every worker has exited.
func (p *Pipeline) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.workerLoop(ctx)
	}

	p.wg.Add(1)
	go p.healthMonitorLoop(ctx)

	<-ctx.Done()
	p.queue.close()
	p.wg.Wait()
}

// Stop tears down the pipeline. Workers finish their current write (or
// abort it on I/O timeout) before exiting; cancellation is cooperative
// (spec §5).
func (p *Pipeline) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

// UpdateDesired recomputes the desired set for a new player-chunk center
// (pipeline start, boundary crossing, or view-distance change) and applies
// the spec §4.4 debounce: the first call after start applies immediately;
// later calls collapse into whichever set was most recent once 150ms have
// elapsed since the last call.
func (p *Pipeline) UpdateDesired(center ChunkCoord, viewDistance int32) {
	newSet := desiredSet(center, viewDistance)

	p.manager.mu.Lock()
	p.manager.desired = newSet
	p.manager.playerPos = center
	p.manager.viewRadius = viewDistance
	p.manager.mu.Unlock()

	p.debounceMu.Lock()
	defer p.debounceMu.Unlock()

	if !p.started {
		p.started = true
		p.applyDesired()
		return
	}

	p.pendingApply = true
	if p.debounceTmr != nil {
		p.debounceTmr.Stop() // restart the window from this call
	}
	var tmr *time.Timer
	tmr = time.AfterFunc(debounceInterval, func() {
		p.debounceMu.Lock()
		if p.debounceTmr != tmr {
			p.debounceMu.Unlock()
			return // superseded by a later call
		}
		p.debounceTmr = nil
		apply := p.pendingApply
		p.pendingApply = false
		p.debounceMu.Unlock()
		if apply {
			p.applyDesired()
		}
	})
	p.debounceTmr = tmr
}

// desiredSet computes the circular disc of spec §4.4.
func desiredSet(center ChunkCoord, viewDistance int32) map[ChunkCoord]struct{} {
	set := make(map[ChunkCoord]struct{})
	for dx := -viewDistance; dx <= viewDistance; dx++ {
		for dz := -viewDistance; dz <= viewDistance; dz++ {
			c := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if euclideanWithin(c, center, viewDistance) {
				set[c] = struct{}{}
			}
		}
	}
	if len(set) == 0 {
		set[center] = struct{}{} // view-distance 0: desired set is {player_chunk}
	}
	return set
}

// applyDesired transitions requests per spec §4.4's "Applying the update"
// rules and enqueues newly pending ones.
func (p *Pipeline) applyDesired() {
	now := time.Now()

	p.manager.mu.Lock()
	desired := p.manager.desired
	center := p.manager.playerPos
	existing := make(map[ChunkCoord]*ChunkLoadRequest, len(p.manager.requests))
	for c, r := range p.manager.requests {
		existing[c] = r
	}
	p.manager.mu.Unlock()

	for coord, req := range existing {
		if _, want := desired[coord]; want {
			continue
		}
		if req.State == StateLoading || req.State == StateLoaded {
			continue // workers/orphan-check handle these transitions
		}
		next := req.with(func(r *ChunkLoadRequest) { r.State = StateCancelled })
		p.manager.compareAndSwap(coord, req, next)
	}

	for coord := range desired {
		req, ok := existing[coord]
		if !ok {
			priority := computePriority(coord, center, 0, 0, false)
			fresh := newRequest(coord, priority, now)
			if p.manager.compareAndSwap(coord, nil, fresh) {
				p.enqueue(coord, fresh)
			}
			continue
		}
		if req.State == StateLoading || req.State == StateLoaded {
			continue
		}
		age := now.Sub(req.CreatedAt)
		priority := computePriority(coord, center, req.RetryCount, age, true)
		newState := req.State
		if req.State == StateCancelled {
			newState = StatePending
		}
		next := req.with(func(r *ChunkLoadRequest) {
			r.Priority = priority
			r.State = newState
		})
		if p.manager.compareAndSwap(coord, req, next) && newState == StatePending {
			p.enqueue(coord, next)
		}
	}
}

func (p *Pipeline) enqueue(coord ChunkCoord, req *ChunkLoadRequest) {
	next := req.with(func(r *ChunkLoadRequest) { r.State = StateQueued })
	if p.manager.compareAndSwap(coord, req, next) {
		p.queue.push(coord, next.Priority)
	}
}

// workerLoop implements spec §4.4's worker steps 1-6.
func (p *Pipeline) workerLoop(ctx context.Context) {
	defer p.wg.Done()
	for {
		coord, ok := p.queue.pop()
		if !ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.processRequest(ctx, coord)
	}
}

func (p *Pipeline) processRequest(ctx context.Context, coord ChunkCoord) {
	req, ok := p.manager.get(coord)
	if !ok || req.State == StateCancelled || req.State == StateLoaded {
		return
	}

	loading := req.with(func(r *ChunkLoadRequest) {
		r.State = StateLoading
		r.StartedAt = time.Now()
	})
	if !p.manager.compareAndSwap(coord, req, loading) {
		return
	}
	if !p.player.TryMarkChunkLoading(coord) {
		return
	}

	chunk := p.source.GetOrCreate(coord.X, coord.Z)
	body, err := world.EncodeChunkDataPacket(chunk)
	if err == nil {
		writeCtx, cancel := context.WithTimeout(ctx, perLoadTimeout)
		err = p.writer.WriteChunkPacket(writeCtx, body)
		cancel()
	}

	if err != nil {
		p.player.ClearChunkLoading(coord)
		cur, ok := p.manager.get(coord)
		if !ok {
			return
		}
		failed := cur.with(func(r *ChunkLoadRequest) {
			r.State = StateFailed
			r.Err = err.Error()
		})
		p.manager.compareAndSwap(coord, cur, failed)
		p.log.Warn("chunk load failed", "chunk", coord, "error", err)
		return
	}

	cur, ok := p.manager.get(coord)
	if !ok || cur.State == StateCancelled {
		p.player.ClearChunkLoading(coord)
		return
	}
	loaded := cur.with(func(r *ChunkLoadRequest) { r.State = StateLoaded })
	if p.manager.compareAndSwap(coord, cur, loaded) {
		p.player.MarkChunkLoaded(coord)
	}
}

// healthMonitorLoop implements spec §4.4's stuck/retry/orphan passes.
func (p *Pipeline) healthMonitorLoop(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runHealthPass()
		}
	}
}

func (p *Pipeline) runHealthPass() {
	now := time.Now()
	for _, req := range p.manager.snapshotRequests() {
		switch req.State {
		case StateLoading:
			if !req.StartedAt.IsZero() && now.Sub(req.StartedAt) > stuckTimeout {
				failed := req.with(func(r *ChunkLoadRequest) {
					r.State = StateFailed
					r.Err = "stuck timeout"
				})
				if p.manager.compareAndSwap(req.Coord, req, failed) {
					p.player.ClearChunkLoading(req.Coord)
				}
			}
		case StateFailed:
			if req.RetryCount >= maxRetries {
				continue
			}
			last := req.LastRetryAt
			if last.IsZero() {
				last = req.CreatedAt
			}
			if now.Sub(last) <= retryBackoff {
				continue
			}
			retrying := req.with(func(r *ChunkLoadRequest) {
				r.State = StateRetrying
				r.RetryCount++
				r.LastRetryAt = now
			})
			if !p.manager.compareAndSwap(req.Coord, req, retrying) {
				continue
			}
			p.manager.mu.Lock()
			center := p.manager.playerPos
			p.manager.mu.Unlock()
			pending := retrying.with(func(r *ChunkLoadRequest) {
				r.State = StatePending
				r.Priority = computePriority(r.Coord, center, r.RetryCount, now.Sub(r.CreatedAt), true)
			})
			if p.manager.compareAndSwap(req.Coord, retrying, pending) {
				p.enqueue(req.Coord, pending)
			}
		case StateLoaded:
			if !p.manager.withinUnloadBuffer(req.Coord) {
				cancelled := req.with(func(r *ChunkLoadRequest) { r.State = StateCancelled })
				if p.manager.compareAndSwap(req.Coord, req, cancelled) {
					p.player.UnmarkChunkLoaded(req.Coord)
				}
			}
		}
	}
}

// UnloadBuffer is the +2 radius spec §9 keeps alongside the plain
// view-distance desired set: the desired set itself stays a tight
// view-distance disc (what gets actively loaded/prioritized), while the
// orphan pass above checks the wider view-radius+UnloadBuffer disc before
// cancelling a loaded chunk, so a player oscillating right at the edge of
// view distance doesn't thrash load/unload every health-check tick.
const UnloadBuffer = unloadBuffer
