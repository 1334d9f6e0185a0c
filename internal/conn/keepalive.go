package conn

import (
	"time"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

// keepAliveInterval is the spec §4.5 keep-alive cadence (the teacher's own
// loop runs every 15s; this server runs every 10s per spec).
const keepAliveInterval = 10 * time.Second

// keepAliveTolerance is how long an unacknowledged keep-alive is tolerated
// before the connection is considered dead (spec §4.5/§5).
const keepAliveTolerance = 30 * time.Second

// startKeepAliveLoop begins the Play-phase liveness loop in its own
// goroutine. It exits when the connection's context is cancelled.
func (c *Connection) startKeepAliveLoop() {
	go c.keepAliveLoop()
}

func (c *Connection) keepAliveLoop() {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if c.keepAliveOverdue() {
				c.log.Warn("keep-alive timeout, closing connection")
				c.cancel()
				return
			}
			c.sendKeepAlive()
		}
	}
}

func (c *Connection) sendKeepAlive() {
	id := time.Now().UnixMilli()
	c.mu.Lock()
	if c.outstandingKeepAlive == 0 {
		// Only restart the tolerance window once the previous id was acked.
		c.keepAliveSentAt = time.Now()
	}
	c.outstandingKeepAlive = id
	c.mu.Unlock()

	if err := c.writePacket(protocol.PacketKeepAliveCB, &protocol.KeepAliveClientboundPacket{ID: id}); err != nil {
		c.log.Warn("keep-alive send failed", "error", err)
	}
}

// keepAliveOverdue reports whether the previously sent keep-alive has gone
// unacknowledged past the tolerance window.
func (c *Connection) keepAliveOverdue() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outstandingKeepAlive == 0 {
		return false
	}
	return time.Since(c.keepAliveSentAt) > keepAliveTolerance
}

// handleKeepAliveAck processes a serverbound Keep Alive. A mismatched id is
// logged and tolerated rather than treated as fatal, per spec §4.5; the
// tolerance window itself is enforced by keepAliveOverdue on the next tick.
func (c *Connection) handleKeepAliveAck(data []byte) error {
	var p protocol.KeepAliveServerboundPacket
	if err := protocol.Unmarshal(data, &p); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID != c.outstandingKeepAlive {
		c.log.Warn("keep-alive id mismatch", "got", p.ID, "want", c.outstandingKeepAlive)
		return nil
	}
	c.outstandingKeepAlive = 0
	return nil
}
