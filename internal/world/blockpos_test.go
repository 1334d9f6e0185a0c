package world

import "testing"

func TestBlockPosRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int32
	}{
		{"origin", 0, 0, 0},
		{"positive", 100, 64, 200},
		{"negative", -100, 0, -200},
		{"max_y", 0, 2047, 0},
		{"min_y", 0, -2048, 0},
		{"extreme_xz", -33554432, 0, 33554431}, // 26-bit signed range edges
		{"sign_boundary_chunk", -16, 319, -1},  // chunk (-1,-1) straddles the sign boundary
		{"low_y", 0, -64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BlockPos{X: tt.x, Y: tt.y, Z: tt.z}
			got := BlockPosFromLong(p.ToLong())
			if got != p {
				t.Errorf("BlockPosFromLong(ToLong(%+v)) = %+v, want %+v", p, got, p)
			}
		})
	}
}

func TestBlockPosChunkCoord(t *testing.T) {
	tests := []struct {
		name   string
		pos    BlockPos
		cx, cz int32
	}{
		{"origin", BlockPos{0, 64, 0}, 0, 0},
		{"within_chunk", BlockPos{15, 64, 15}, 0, 0},
		{"next_chunk", BlockPos{16, 64, 0}, 1, 0},
		{"negative_chunk", BlockPos{-1, 64, -1}, -1, -1},
		{"negative_chunk_boundary", BlockPos{-16, 64, -16}, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cz := tt.pos.ChunkCoord()
			if cx != tt.cx || cz != tt.cz {
				t.Errorf("ChunkCoord(%+v) = (%d,%d), want (%d,%d)", tt.pos, cx, cz, tt.cx, tt.cz)
			}
		})
	}
}

func TestVec3BlockPos(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want BlockPos
	}{
		{"exact", Vec3{X: 1, Y: 64, Z: 1}, BlockPos{1, 64, 1}},
		{"floor_positive", Vec3{X: 1.9, Y: 64.5, Z: 1.1}, BlockPos{1, 64, 1}},
		{"floor_negative", Vec3{X: -0.1, Y: 64, Z: -1.1}, BlockPos{-1, 64, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.BlockPos(); got != tt.want {
				t.Errorf("Vec3%+v.BlockPos() = %+v, want %+v", tt.v, got, tt.want)
			}
		})
	}
}
