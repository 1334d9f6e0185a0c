// Package session is C6: the per-player façade over Play-phase serverbound
// packets. It owns one player's pipeline (C4), mutates inventory/world state
// (C2) in response to container and block packets, and broadcasts resulting
// world changes to every session whose player has the affected chunk
// loaded. No single teacher file matches this shape (the teacher's
// handler_play.go inlines all of Play-phase dispatch into Connection
// directly); this package is grounded on that file's per-packet-id handler
// style, split out as its own package so C5 (conn) only has to satisfy two
// small interfaces rather than own gameplay mutation itself.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/OCharnyshevich/minecraft-server/internal/pipeline"
	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// PacketSender is the C5 collaborator a session writes outbound Play packets
// through. Implemented by *conn.Connection; kept minimal so this package
// never imports internal/conn.
type PacketSender interface {
	SendPacket(id int32, p protocol.Packet) error
	SendRaw(id int32, body []byte) error
}

// Session is one connected player's Play-phase state and behavior.
type Session struct {
	log     *slog.Logger
	world   *world.World
	player  *world.Player
	reg     *registry.Data
	sender  PacketSender
	manager *Manager

	pipeline *pipeline.Pipeline
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	digMu sync.Mutex
	dig   *digState

	teleportMu   sync.Mutex
	lastTeleport int32
}

// New creates a session. Call Start to begin streaming chunks and accepting
// tick-driven work.
func New(log *slog.Logger, w *world.World, player *world.Player, reg *registry.Data, sender PacketSender, manager *Manager) *Session {
	s := &Session{
		log:    log.With("player", player.Username),
		world:  w,
		player: player,
		reg:    reg,
		sender: sender,
		manager: manager,
	}
	s.pipeline = pipeline.New(log, w.Store, chunkWriter{sender}, player)
	return s
}

// chunkWriter adapts PacketSender to pipeline.ChunkWriter: chunk bodies are
// already fully serialized, so the context is unused beyond honoring
// cancellation at the call site (the sender's own queue has no per-write
// deadline of its own).
type chunkWriter struct{ sender PacketSender }

func (w chunkWriter) WriteChunkPacket(ctx context.Context, body []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return w.sender.SendRaw(protocol.PacketChunkDataUpdateLight, body)
}

// Start runs the chunk-streaming pipeline in the background and registers
// the player's initial desired chunk set around its spawn position.
func (s *Session) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pipeline.Run(ctx)
	}()

	s.manager.Register(s)
	s.pipeline.UpdateDesired(s.player.ChunkPos(), s.player.ViewDistance())
}

// Stop tears down the session's pipeline and unregisters it from broadcast
// scoping.
func (s *Session) Stop() {
	s.manager.Unregister(s)
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Player exposes the underlying player for the connection's join sequence
// (spawn position, abilities) without duplicating that state here.
func (s *Session) Player() *world.Player { return s.player }
