package conn

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

func newTestConnection() *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		ctx:      ctx,
		cancel:   cancel,
		outbound: make(chan outboundMessage, 8),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// TestKeepAliveRoundTrip is spec property 7, exercised as an in-process
// stub: the server sends a keep-alive id and, once a client echoes it back
// unchanged, the connection no longer considers itself overdue.
func TestKeepAliveRoundTrip(t *testing.T) {
	c := newTestConnection()
	defer c.cancel()

	c.sendKeepAlive()

	select {
	case msg := <-c.outbound:
		id, data, err := protocol.ReadRawPacket(bytes.NewReader(msg.rawBytes))
		if err != nil {
			t.Fatalf("decode queued keep-alive packet: %v", err)
		}
		if id != protocol.PacketKeepAliveCB {
			t.Fatalf("queued packet id = 0x%02X, want PacketKeepAliveCB", id)
		}
		var p protocol.KeepAliveClientboundPacket
		if err := protocol.Unmarshal(data, &p); err != nil {
			t.Fatalf("unmarshal keep-alive body: %v", err)
		}
	default:
		t.Fatal("sendKeepAlive did not enqueue an outbound packet")
	}

	c.mu.Lock()
	sentID := c.outstandingKeepAlive
	c.mu.Unlock()
	if sentID == 0 {
		t.Fatal("outstandingKeepAlive was not recorded")
	}

	ack := marshalKeepAliveAck(t, sentID)
	if err := c.handleKeepAliveAck(ack); err != nil {
		t.Fatalf("handleKeepAliveAck: %v", err)
	}

	c.mu.Lock()
	cleared := c.outstandingKeepAlive
	c.mu.Unlock()
	if cleared != 0 {
		t.Errorf("outstandingKeepAlive after a matching ack = %d, want 0", cleared)
	}
}

func TestKeepAliveMismatchedIDIsTolerated(t *testing.T) {
	c := newTestConnection()
	defer c.cancel()

	c.mu.Lock()
	c.outstandingKeepAlive = 42
	c.keepAliveSentAt = time.Now()
	c.mu.Unlock()

	ack := marshalKeepAliveAck(t, 999)
	if err := c.handleKeepAliveAck(ack); err != nil {
		t.Fatalf("handleKeepAliveAck on mismatch: want nil error (tolerated), got %v", err)
	}

	c.mu.Lock()
	still := c.outstandingKeepAlive
	c.mu.Unlock()
	if still != 42 {
		t.Errorf("outstandingKeepAlive after mismatched ack = %d, want unchanged 42", still)
	}
}

func TestKeepAliveOverdue(t *testing.T) {
	c := newTestConnection()
	defer c.cancel()

	if c.keepAliveOverdue() {
		t.Error("keepAliveOverdue() with no outstanding id = true, want false")
	}

	c.mu.Lock()
	c.outstandingKeepAlive = 1
	c.keepAliveSentAt = time.Now()
	c.mu.Unlock()
	if c.keepAliveOverdue() {
		t.Error("keepAliveOverdue() just after sending = true, want false")
	}

	c.mu.Lock()
	c.keepAliveSentAt = time.Now().Add(-keepAliveTolerance - time.Second)
	c.mu.Unlock()
	if !c.keepAliveOverdue() {
		t.Error("keepAliveOverdue() past the tolerance window = false, want true")
	}
}

func marshalKeepAliveAck(t *testing.T, id int64) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := protocol.Marshal(&buf, &protocol.KeepAliveServerboundPacket{ID: id}); err != nil {
		t.Fatalf("marshal keep-alive ack: %v", err)
	}
	return buf.Bytes()
}
