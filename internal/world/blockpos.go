package world

import "github.com/OCharnyshevich/minecraft-server/internal/protocol"

// BlockPos is a world-absolute block position, grounded on the teacher's
// world.BlockPos{X, Y, Z int} (internal/server/world/world.go) but kept as
// int32 to match the wire's signed-field widths directly.
type BlockPos struct {
	X, Y, Z int32
}

// ChunkCoord identifies the chunk containing a block position.
func (p BlockPos) ChunkCoord() (cx, cz int32) {
	return p.X >> 4, p.Z >> 4
}

// Local returns the position relative to its containing chunk's origin,
// with y left world-absolute (callers subtract the section base separately).
func (p BlockPos) Local() (lx, ly, lz int32) {
	return p.X & 0xF, p.Y, p.Z & 0xF
}

// ToLong packs the position into the spec's 64-bit wire layout.
func (p BlockPos) ToLong() int64 {
	return protocol.EncodeBlockPos(int(p.X), int(p.Y), int(p.Z))
}

// BlockPosFromLong unpacks a 64-bit wire position.
func BlockPosFromLong(v int64) BlockPos {
	x, y, z := protocol.DecodeBlockPos(v)
	return BlockPos{X: int32(x), Y: int32(y), Z: int32(z)}
}

// Vec3 is a floating-point world position, grounded on the same data model
// entry as BlockPos (spec §3: "Vec3: three floating-point coordinates").
type Vec3 struct {
	X, Y, Z float64
}

// BlockPos truncates a Vec3 to the block position containing it.
func (v Vec3) BlockPos() BlockPos {
	return BlockPos{X: int32(floorDiv(v.X)), Y: int32(floorDiv(v.Y)), Z: int32(floorDiv(v.Z))}
}

func floorDiv(f float64) int64 {
	i := int64(f)
	if f < float64(i) {
		return i - 1
	}
	return i
}
