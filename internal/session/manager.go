package session

import (
	"sync"

	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// Manager tracks every connected session so world-state changes can be
// broadcast only to sessions whose player has the affected chunk loaded
// (spec §4.6: "broadcast ... to every session with chunk (cx,cz) loaded").
// One instance is shared by the whole server, created alongside the World.
type Manager struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[*Session]struct{})}
}

// Register adds a session to the broadcast set. Called once the session's
// pipeline has started.
func (m *Manager) Register(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s] = struct{}{}
}

// Unregister removes a session on disconnect.
func (m *Manager) Unregister(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, s)
}

// BroadcastBlockUpdate sends a Block Update packet to every session whose
// player currently has the block's containing chunk loaded.
func (m *Manager) BroadcastBlockUpdate(pos world.BlockPos, blockID int32) {
	cx, cz := pos.ChunkCoord()
	chunk := world.ChunkPos{X: cx, Z: cz}
	pkt := &protocol.BlockUpdatePacket{Location: pos.ToLong(), BlockID: blockID}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for s := range m.sessions {
		if s.player.HasChunkLoaded(chunk) {
			_ = s.sender.SendPacket(protocol.PacketBlockUpdate, pkt)
		}
	}
}
