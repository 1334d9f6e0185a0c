package conn

import (
	"bytes"
	"fmt"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
)

// serverPack is the single built-in data pack this server advertises for
// every required registry (spec §4.5's Configuration-phase requirement
// that registry contents still be announced under some known pack).
var serverPack = protocol.KnownPack{Namespace: "minecraft", ID: "core", Version: "1.21.10"}

// startConfiguration opens spec §4.5's Configuration sequence by sending
// Clientbound Known Packs. Every required registry's Registry Data and then
// Finish Configuration are sent by handleConfiguration once the client's
// Serverbound Known Packs arrives; Client Information is consumed but not
// acted on (no client-locale-dependent behavior in this server).
func (c *Connection) startConfiguration() error {
	if err := c.sendKnownPacks(); err != nil {
		return err
	}
	return nil
}

func (c *Connection) sendKnownPacks() error {
	var buf bytes.Buffer
	if err := protocol.WriteKnownPacks(&buf, []protocol.KnownPack{serverPack}); err != nil {
		return fmt.Errorf("encode known packs: %w", err)
	}
	return c.writeRaw(protocol.PacketClientboundKnownPacks, buf.Bytes())
}

func (c *Connection) sendRegistries() error {
	for _, name := range registry.RequiredRegistries {
		set := c.reg.Registry(name)
		entries := make([]protocol.RegistryEntry, len(set.Entries))
		for i, e := range set.Entries {
			entries[i] = protocol.RegistryEntry{Name: e.Name}
		}
		var buf bytes.Buffer
		if err := protocol.WriteRegistryData(&buf, name, entries); err != nil {
			return fmt.Errorf("encode registry data %s: %w", name, err)
		}
		if err := c.writeRaw(protocol.PacketRegistryData, buf.Bytes()); err != nil {
			return err
		}
	}
	return c.writeRaw(protocol.PacketFinishConfiguration, nil)
}

func (c *Connection) handleConfiguration(id int32, data []byte) error {
	switch id {
	case protocol.PacketClientInformation:
		// Locale/view-distance/chat-mode fields are not used by this server.
		return nil

	case protocol.PacketServerboundKnownPacks:
		if _, err := protocol.ReadKnownPacks(data); err != nil {
			return fmt.Errorf("decode known packs: %w", err)
		}
		return c.sendRegistries()

	case protocol.PacketAcknowledgeFinishConfiguration:
		return c.startPlay()

	default:
		return unexpectedPacket(PhaseConfiguration, id)
	}
}
