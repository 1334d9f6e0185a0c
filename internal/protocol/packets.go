package protocol

// Packet ids for protocol version 773 (game 1.21.10). Grouped by phase and
// direction, matching the published packet table referenced by spec §6.
// Fixed-shape packets below are encoded/decoded via the `mc` struct-tag
// codec in tagcodec.go; variable-shape packets (Chunk Data, Registry Data,
// Click Container, Set Container Content) are hand-coded elsewhere.
const (
	// Handshaking, serverbound.
	PacketHandshake int32 = 0x00

	// Status.
	PacketStatusRequest  int32 = 0x00 // serverbound
	PacketStatusPing     int32 = 0x01 // serverbound
	PacketStatusResponse int32 = 0x00 // clientbound
	PacketStatusPong     int32 = 0x01 // clientbound

	// Login.
	PacketLoginStart        int32 = 0x00 // serverbound
	PacketLoginAcknowledged int32 = 0x03 // serverbound
	PacketLoginDisconnect   int32 = 0x00 // clientbound
	PacketLoginSuccess      int32 = 0x02 // clientbound

	// Configuration.
	PacketClientInformation               int32 = 0x00 // serverbound
	PacketServerboundKnownPacks           int32 = 0x07 // serverbound
	PacketAcknowledgeFinishConfiguration  int32 = 0x03 // serverbound
	PacketClientboundPluginMessage        int32 = 0x01 // clientbound
	PacketRegistryData                    int32 = 0x07 // clientbound
	PacketFinishConfiguration             int32 = 0x03 // clientbound
	PacketClientboundKnownPacks           int32 = 0x0E // clientbound

	// Play, serverbound.
	PacketConfirmTeleportation int32 = 0x00
	PacketClickContainer       int32 = 0x0D
	PacketCloseContainer       int32 = 0x0F
	PacketKeepAliveSB          int32 = 0x1A
	PacketSetPlayerPosition    int32 = 0x1D
	PacketSetPlayerPosAndRot   int32 = 0x1E
	PacketSetPlayerRotation    int32 = 0x1F
	PacketPlayerAction         int32 = 0x24
	PacketSetHeldItemSB        int32 = 0x2F
	PacketSetCreativeModeSlot  int32 = 0x34
	PacketUseItemOn            int32 = 0x38

	// Play, clientbound.
	PacketAcknowledgeBlockChanges int32 = 0x05
	PacketBlockUpdate          int32 = 0x09
	PacketSetContainerContent  int32 = 0x11
	PacketPlayDisconnect       int32 = 0x1D
	PacketGameEvent            int32 = 0x22
	PacketKeepAliveCB          int32 = 0x26
	PacketChunkDataUpdateLight int32 = 0x27
	PacketLoginPlay            int32 = 0x2B
	PacketSynchronizePosition  int32 = 0x41
	PacketSetCenterChunk       int32 = 0x57
	PacketUpdateTime           int32 = 0x64
)

// Handshake is the single Handshaking-phase packet.
type Handshake struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func (Handshake) PacketID() int32 { return PacketHandshake }

// StatusPingPong carries the opaque payload exchanged by Status Ping/Pong;
// both directions use id 0x01 so one type serves both.
type StatusPingPong struct {
	Payload int64 `mc:"i64"`
}

func (StatusPingPong) PacketID() int32 { return PacketStatusPong }

// StatusResponseJSON wraps the JSON status string.
type StatusResponseJSON struct {
	JSON string `mc:"string"`
}

func (StatusResponseJSON) PacketID() int32 { return PacketStatusResponse }

// LoginStart is the client's initial login packet.
type LoginStart struct {
	Username string   `mc:"string"`
	UUID     [16]byte `mc:"uuid"`
}

func (LoginStart) PacketID() int32 { return PacketLoginStart }

// LoginSuccessPacket announces the server-assigned identity (offline UUID).
type LoginSuccessPacket struct {
	UUID     [16]byte `mc:"uuid"`
	Username string   `mc:"string"`
}

func (LoginSuccessPacket) PacketID() int32 { return PacketLoginSuccess }

// LoginDisconnectPacket carries a JSON-text reason sent before Login
// completes.
type LoginDisconnectPacket struct {
	Reason string `mc:"string"`
}

func (LoginDisconnectPacket) PacketID() int32 { return PacketLoginDisconnect }

// PlayDisconnectPacket carries a JSON-text reason sent during Play.
type PlayDisconnectPacket struct {
	Reason string `mc:"string"`
}

func (PlayDisconnectPacket) PacketID() int32 { return PacketPlayDisconnect }

// KeepAliveClientboundPacket carries the opaque 64-bit liveness id the
// server sends out.
type KeepAliveClientboundPacket struct {
	ID int64 `mc:"i64"`
}

func (KeepAliveClientboundPacket) PacketID() int32 { return PacketKeepAliveCB }

// KeepAliveServerboundPacket is the client's echoed liveness id.
type KeepAliveServerboundPacket struct {
	ID int64 `mc:"i64"`
}

func (KeepAliveServerboundPacket) PacketID() int32 { return PacketKeepAliveSB }

// GameEventPacket announces a game-state change; spec §4.5 uses event=13
// (start waiting for level chunks) with value 0.
type GameEventPacket struct {
	Event uint8   `mc:"u8"`
	Value float32 `mc:"f32"`
}

func (GameEventPacket) PacketID() int32 { return PacketGameEvent }

// SetCenterChunkPacket tells the client which chunk is the view center.
type SetCenterChunkPacket struct {
	ChunkX int32 `mc:"varint"`
	ChunkZ int32 `mc:"varint"`
}

func (SetCenterChunkPacket) PacketID() int32 { return PacketSetCenterChunk }

// UpdateTimePacket broadcasts world age and time of day.
type UpdateTimePacket struct {
	WorldAge      int64 `mc:"i64"`
	TimeOfDay     int64 `mc:"i64"`
	TimeOfDayRule bool  `mc:"bool"` // advancing flag, 1.21+ addition
}

func (UpdateTimePacket) PacketID() int32 { return PacketUpdateTime }

// SynchronizePositionPacket teleports the client to an authoritative pose.
type SynchronizePositionPacket struct {
	X          float64 `mc:"f64"`
	Y          float64 `mc:"f64"`
	Z          float64 `mc:"f64"`
	VelX       float64 `mc:"f64"`
	VelY       float64 `mc:"f64"`
	VelZ       float64 `mc:"f64"`
	Yaw        float32 `mc:"f32"`
	Pitch      float32 `mc:"f32"`
	Flags      int32   `mc:"i32"`
	TeleportID int32   `mc:"varint"`
}

func (SynchronizePositionPacket) PacketID() int32 { return PacketSynchronizePosition }

// ConfirmTeleportationPacket acknowledges a synchronize-position teleport id.
type ConfirmTeleportationPacket struct {
	TeleportID int32 `mc:"varint"`
}

func (ConfirmTeleportationPacket) PacketID() int32 { return PacketConfirmTeleportation }

// SetPlayerPositionPacket is the plain movement packet.
type SetPlayerPositionPacket struct {
	X     float64 `mc:"f64"`
	Y     float64 `mc:"f64"`
	Z     float64 `mc:"f64"`
	Flags uint8   `mc:"u8"`
}

func (SetPlayerPositionPacket) PacketID() int32 { return PacketSetPlayerPosition }

// SetPlayerPositionAndRotationPacket combines movement and look.
type SetPlayerPositionAndRotationPacket struct {
	X     float64 `mc:"f64"`
	Y     float64 `mc:"f64"`
	Z     float64 `mc:"f64"`
	Yaw   float32 `mc:"f32"`
	Pitch float32 `mc:"f32"`
	Flags uint8   `mc:"u8"`
}

func (SetPlayerPositionAndRotationPacket) PacketID() int32 { return PacketSetPlayerPosAndRot }

// SetPlayerRotationPacket is a look-only update.
type SetPlayerRotationPacket struct {
	Yaw   float32 `mc:"f32"`
	Pitch float32 `mc:"f32"`
	Flags uint8   `mc:"u8"`
}

func (SetPlayerRotationPacket) PacketID() int32 { return PacketSetPlayerRotation }

// SetHeldItemPacket (serverbound) selects the active hotbar slot.
type SetHeldItemPacket struct {
	Slot int16 `mc:"i16"`
}

func (SetHeldItemPacket) PacketID() int32 { return PacketSetHeldItemSB }

// CloseContainerPacket closes a window (serverbound).
type CloseContainerPacket struct {
	WindowID uint8 `mc:"u8"`
}

func (CloseContainerPacket) PacketID() int32 { return PacketCloseContainer }

// PlayerActionPacket covers block-break state transitions and related
// actions; spec §4.6 only needs start/abort/finish destroy block.
type PlayerActionPacket struct {
	Status   int32 `mc:"varint"`
	Location int64 `mc:"position"`
	Face     int8  `mc:"i8"`
	Sequence int32 `mc:"varint"`
}

func (PlayerActionPacket) PacketID() int32 { return PacketPlayerAction }

const (
	PlayerActionStartDigging  int32 = 0
	PlayerActionCancelDigging int32 = 1
	PlayerActionFinishDigging int32 = 2
)

// UseItemOnPacket is the serverbound block-placement packet: which hand,
// the targeted block, which face was clicked, the exact cursor hit
// position within that face, and whether the hit was inside the block.
type UseItemOnPacket struct {
	Hand        int32   `mc:"varint"`
	Location    int64   `mc:"position"`
	Face        int32   `mc:"varint"`
	CursorX     float32 `mc:"f32"`
	CursorY     float32 `mc:"f32"`
	CursorZ     float32 `mc:"f32"`
	InsideBlock bool    `mc:"bool"`
	Sequence    int32   `mc:"varint"`
}

func (UseItemOnPacket) PacketID() int32 { return PacketUseItemOn }

// AcknowledgeBlockChangesPacket confirms a client-predicted block change
// (from Player Action or Use Item On) back to the sequence number the
// client attached to its request.
type AcknowledgeBlockChangesPacket struct {
	Sequence int32 `mc:"varint"`
}

func (AcknowledgeBlockChangesPacket) PacketID() int32 { return PacketAcknowledgeBlockChanges }

// BlockUpdatePacket announces a single block change.
type BlockUpdatePacket struct {
	Location int64 `mc:"position"`
	BlockID  int32 `mc:"varint"`
}

func (BlockUpdatePacket) PacketID() int32 { return PacketBlockUpdate }
