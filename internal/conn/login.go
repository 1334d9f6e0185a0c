package conn

import (
	"crypto/md5"
	"fmt"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/google/uuid"
)

// offlineUUID computes the spec's offline-mode identity:
// UUID.nameUUIDFromBytes("OfflinePlayer:"+username) — a version-3 MD5 UUID
// of the raw name bytes with no namespace prefix. Grounded exactly on the
// teacher's handler_login.go offlineUUID; google/uuid's NewMD5 would instead
// prepend a 16-byte namespace to the hash input and does not match Java's
// algorithm, so the hash is computed directly and only wrapped into
// uuid.UUID at the end for interop with world.Player.UUID.
func offlineUUID(username string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	id, _ := uuid.FromBytes(sum[:])
	return id
}

func (c *Connection) handleLogin(id int32, data []byte) error {
	switch id {
	case protocol.PacketLoginStart:
		return c.handleLoginStart(data)
	case protocol.PacketLoginAcknowledged:
		return c.handleLoginAcknowledged()
	default:
		return unexpectedPacket(PhaseLogin, id)
	}
}

func (c *Connection) handleLoginStart(data []byte) error {
	var ls protocol.LoginStart
	if err := protocol.Unmarshal(data, &ls); err != nil {
		return fmt.Errorf("decode login start: %w", err)
	}

	playerUUID := offlineUUID(ls.Username)
	c.loginUsername = ls.Username
	c.loginUUID = playerUUID

	c.log.Info("offline login", "username", ls.Username, "uuid", playerUUID)
	return c.writePacket(protocol.PacketLoginSuccess, &protocol.LoginSuccessPacket{
		UUID:     [16]byte(playerUUID),
		Username: ls.Username,
	})
}

// handleLoginAcknowledged moves to Configuration once the client has
// acknowledged Login Success (spec §4.5).
func (c *Connection) handleLoginAcknowledged() error {
	c.setPhase(PhaseConfiguration)
	return c.startConfiguration()
}
