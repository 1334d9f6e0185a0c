package conn

import (
	"encoding/json"
	"fmt"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

type statusResponse struct {
	Version     statusVersion `json:"version"`
	Players     statusPlayers `json:"players"`
	Description statusDesc    `json:"description"`
}

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type statusPlayers struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

type statusDesc struct {
	Text string `json:"text"`
}

func (c *Connection) handleStatus(id int32, data []byte) error {
	switch id {
	case protocol.PacketStatusRequest:
		resp := statusResponse{
			Version: statusVersion{Name: "1.21.10", Protocol: protocolVersion},
			Players: statusPlayers{Max: -1, Online: c.wrld.PlayerCount()},
			Description: statusDesc{
				Text: "A minimal-viable Minecraft server",
			},
		}
		body, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("marshal status response: %w", err)
		}
		return c.writePacket(protocol.PacketStatusResponse, &protocol.StatusResponseJSON{JSON: string(body)})

	case protocol.PacketStatusPing:
		var ping protocol.StatusPingPong
		if err := protocol.Unmarshal(data, &ping); err != nil {
			return fmt.Errorf("decode status ping: %w", err)
		}
		return c.writePacket(protocol.PacketStatusPong, &protocol.StatusPingPong{Payload: ping.Payload})

	default:
		return unexpectedPacket(PhaseStatus, id)
	}
}
