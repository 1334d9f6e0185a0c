package conn

import (
	"fmt"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

// protocolVersion is the wire version this server speaks (773, game 1.21.10).
const protocolVersion = 773

func (c *Connection) handleHandshake(id int32, data []byte) error {
	if id != protocol.PacketHandshake {
		return unexpectedPacket(PhaseHandshaking, id)
	}

	var hs protocol.Handshake
	if err := protocol.Unmarshal(data, &hs); err != nil {
		return fmt.Errorf("decode handshake: %w", err)
	}

	if hs.ProtocolVersion != protocolVersion {
		c.log.Warn("client protocol version mismatch", "client", hs.ProtocolVersion, "server", protocolVersion)
	}

	switch hs.NextState {
	case 1:
		c.setPhase(PhaseStatus)
	case 2:
		c.setPhase(PhaseLogin)
	default:
		return fmt.Errorf("handshake: unknown next_state %d", hs.NextState)
	}
	return nil
}
