// Package conn is C5: the per-connection phase state machine. It frames
// bytes into packets via internal/protocol, dispatches them to per-phase
// handler tables, and owns the single outbound queue that serializes write
// order for everything downstream (C4's workers, C6's broadcasts).
// Grounded on internal/server/conn/connection.go (phase enum, per-connection
// context+cancel, Handle read loop, disconnect) and handler_*.go for
// dispatch style, reworked for the five-phase (Handshaking/Status/Login/
// Configuration/Play) 773 handshake instead of the teacher's three-phase
// 1.8 one.
package conn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/OCharnyshevich/minecraft-server/internal/config"
	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
	"github.com/OCharnyshevich/minecraft-server/internal/session"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
	"github.com/google/uuid"
)

// Phase is one of the five connection phases spec §4.5 names.
type Phase int

const (
	PhaseHandshaking Phase = iota
	PhaseStatus
	PhaseLogin
	PhaseConfiguration
	PhasePlay
)

func (p Phase) String() string {
	switch p {
	case PhaseHandshaking:
		return "handshaking"
	case PhaseStatus:
		return "status"
	case PhaseLogin:
		return "login"
	case PhaseConfiguration:
		return "configuration"
	case PhasePlay:
		return "play"
	default:
		return "unknown"
	}
}

const outboundQueueDepth = 256 // spec §5 backpressure high-water mark (packet count)

// outboundMessage is one queued write: the pre-framed bytes of one packet,
// carried in rawBytes.
type outboundMessage struct {
	rawBytes []byte
}

// Connection is one client's connection, walking the phase state machine
// from Handshaking to Play (or closing early in Status).
type Connection struct {
	conn           net.Conn
	cfg            *config.Config
	reg            *registry.Data
	wrld           *world.World
	sessionManager *session.Manager
	log            *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	phase Phase

	outbound   chan outboundMessage
	writerDone chan struct{}

	// Login-phase scratch state.
	loginUsername string
	loginUUID     uuid.UUID

	// Play-phase state, set once startPlay succeeds.
	player  *world.Player
	session *session.Session

	// Keep-alive bookkeeping, touched only by keepAliveLoop and the
	// KeepAlive serverbound handler (guarded by mu).
	outstandingKeepAlive int64
	keepAliveSentAt      time.Time
}

// New creates a Connection around an accepted TCP socket. Call Handle to
// run its lifecycle; it returns when the connection closes.
func New(ctx context.Context, c net.Conn, cfg *config.Config, reg *registry.Data, w *world.World, sm *session.Manager, log *slog.Logger) *Connection {
	ctx, cancel := context.WithCancel(ctx)
	return &Connection{
		conn:           c,
		cfg:            cfg,
		reg:            reg,
		wrld:           w,
		sessionManager: sm,
		log:            log.With("addr", c.RemoteAddr().String()),
		ctx:            ctx,
		cancel:         cancel,
		phase:          PhaseHandshaking,
		outbound:       make(chan outboundMessage, outboundQueueDepth),
		writerDone:     make(chan struct{}),
	}
}

// Handle runs the connection's read loop and dedicated writer goroutine
// until the socket closes or the phase handlers report a fatal error
// (MalformedPacket, UnexpectedPacket, PeerDisconnect — spec §7).
func (c *Connection) Handle() {
	go c.writerLoop()

	defer func() {
		c.teardown()
		c.cancel()
		close(c.outbound)
		<-c.writerDone
		c.conn.Close()
		c.log.Info("connection closed")
	}()

	c.log.Info("connection accepted")

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		if err := c.handleNextPacket(); err != nil {
			if c.ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			c.log.Warn("closing connection", "phase", c.currentPhase(), "error", err)
			return
		}
	}
}

func (c *Connection) currentPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Connection) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

func (c *Connection) teardown() {
	if c.session != nil {
		c.session.Stop()
	}
	if c.player != nil {
		c.wrld.RemovePlayer(c.player.UUID)
	}
}

func (c *Connection) handleNextPacket() error {
	id, data, err := protocol.ReadRawPacket(c.conn)
	if err != nil {
		return err
	}

	switch c.currentPhase() {
	case PhaseHandshaking:
		return c.handleHandshake(id, data)
	case PhaseStatus:
		return c.handleStatus(id, data)
	case PhaseLogin:
		return c.handleLogin(id, data)
	case PhaseConfiguration:
		return c.handleConfiguration(id, data)
	case PhasePlay:
		return c.handlePlay(id, data)
	default:
		return fmt.Errorf("unknown phase %d", c.currentPhase())
	}
}

// unexpectedPacket builds the spec §7 UnexpectedPacket(phase,id) error.
func unexpectedPacket(phase Phase, id int32) error {
	return fmt.Errorf("unexpected packet 0x%02X in phase %s", id, phase)
}

// writePacket frames and enqueues a tag-codec packet for the writer
// goroutine. This is the only path other components use to send a typed
// packet; raw bytes (chunk data, registry data) go through writeRaw.
func (c *Connection) writePacket(id int32, p protocol.Packet) error {
	var buf bytes.Buffer
	if err := protocol.Marshal(&buf, p); err != nil {
		return fmt.Errorf("marshal packet 0x%02X: %w", id, err)
	}
	return c.writeRaw(id, buf.Bytes())
}

// writeRaw frames packetID+body and enqueues it. Blocks if the outbound
// queue is at its high-water mark (spec §5 backpressure).
func (c *Connection) writeRaw(id int32, body []byte) error {
	var framed bytes.Buffer
	if err := protocol.WriteRawPacket(&framed, id, body); err != nil {
		return err
	}
	select {
	case c.outbound <- outboundMessage{rawBytes: framed.Bytes()}:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// WriteChunkPacket implements pipeline.ChunkWriter: a chunk-data body is
// already fully serialized by internal/world, so it is framed and enqueued
// directly (spec §5: "the per-connection queue is the single point that
// serializes order; no other task writes to the socket directly").
func (c *Connection) WriteChunkPacket(ctx context.Context, body []byte) error {
	var framed bytes.Buffer
	if err := protocol.WriteRawPacket(&framed, protocol.PacketChunkDataUpdateLight, body); err != nil {
		return err
	}
	select {
	case c.outbound <- outboundMessage{rawBytes: framed.Bytes()}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// SendPacket implements session.PacketSender.
func (c *Connection) SendPacket(id int32, p protocol.Packet) error {
	return c.writePacket(id, p)
}

// SendRaw implements session.PacketSender for hand-coded variable-shape
// packets (Set Container Content, Chunk Data, Registry Data).
func (c *Connection) SendRaw(id int32, body []byte) error {
	return c.writeRaw(id, body)
}

func (c *Connection) writerLoop() {
	defer close(c.writerDone)
	for msg := range c.outbound {
		if _, err := c.conn.Write(msg.rawBytes); err != nil {
			c.log.Warn("write failed", "error", err)
			c.cancel()
			return
		}
	}
}

// disconnect sends a JSON-text Disconnect packet (Login or Play phase) and
// tears down the connection.
func (c *Connection) disconnect(reasonJSON string) {
	switch c.currentPhase() {
	case PhaseLogin:
		_ = c.writePacket(protocol.PacketLoginDisconnect, &protocol.LoginDisconnectPacket{Reason: reasonJSON})
	case PhasePlay:
		_ = c.writePacket(protocol.PacketPlayDisconnect, &protocol.PlayDisconnectPacket{Reason: reasonJSON})
	}
	c.cancel()
}
