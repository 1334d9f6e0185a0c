package protocol

import "io"

// LoginPlayPacket is the clientbound packet that completes the handshake
// into Play (spec §4.5's "Login (play)"). It carries a dimension-names
// array and a handful of flag fields the tag codec can't express (no list
// support), so it is hand-coded like Registry Data and Known Packs.
type LoginPlayPacket struct {
	EntityID            int32
	IsHardcore          bool
	DimensionNames      []string
	MaxPlayers          int32
	ViewDistance        int32
	SimulationDistance  int32
	ReducedDebugInfo    bool
	EnableRespawnScreen bool
	DoLimitedCrafting   bool
	DimensionType       int32
	DimensionName       string
	HashedSeed          int64
	GameMode            uint8
	PreviousGameMode    int8
	IsDebug             bool
	IsFlat              bool
	HasDeathLocation    bool
	PortalCooldown      int32
	SeaLevel            int32
	EnforcesSecureChat  bool
}

// WriteLoginPlay encodes the Login (play) packet body. HasDeathLocation is
// always false for this server (no respawn-anchor tracking), so the
// optional death-dimension/death-position fields are never emitted.
func WriteLoginPlay(w io.Writer, p LoginPlayPacket) error {
	if err := WriteI32(w, p.EntityID); err != nil {
		return err
	}
	if err := WriteBool(w, p.IsHardcore); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int32(len(p.DimensionNames))); err != nil {
		return err
	}
	for _, name := range p.DimensionNames {
		if _, err := WriteString(w, name); err != nil {
			return err
		}
	}
	if _, err := WriteVarInt(w, p.MaxPlayers); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, p.ViewDistance); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, p.SimulationDistance); err != nil {
		return err
	}
	if err := WriteBool(w, p.ReducedDebugInfo); err != nil {
		return err
	}
	if err := WriteBool(w, p.EnableRespawnScreen); err != nil {
		return err
	}
	if err := WriteBool(w, p.DoLimitedCrafting); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, p.DimensionType); err != nil {
		return err
	}
	if _, err := WriteString(w, p.DimensionName); err != nil {
		return err
	}
	if err := WriteI64(w, p.HashedSeed); err != nil {
		return err
	}
	if err := WriteU8(w, p.GameMode); err != nil {
		return err
	}
	if err := WriteI8(w, p.PreviousGameMode); err != nil {
		return err
	}
	if err := WriteBool(w, p.IsDebug); err != nil {
		return err
	}
	if err := WriteBool(w, p.IsFlat); err != nil {
		return err
	}
	if err := WriteBool(w, p.HasDeathLocation); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, p.PortalCooldown); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, p.SeaLevel); err != nil {
		return err
	}
	return WriteBool(w, p.EnforcesSecureChat)
}
