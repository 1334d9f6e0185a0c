package gen

import (
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

// FlatGenerator produces a minimal superflat world: a single grass layer at
// y=64 and air everywhere else. Grounded directly on the teacher's
// FlatStoneChunk (internal/server/world/chunk.go), which does the same
// thing with stone at y=0 — re-targeted to the modern y-range and to a
// registry-resolved block id instead of a hard-coded legacy short.
type FlatGenerator struct {
	groundY int32
	blockID int32
}

// NewFlatGenerator builds a flat generator backed by the loaded block
// registry's grass_block id, falling back to block id 0 (air) if the
// registry doesn't define it — the world is then all-air, which is still a
// valid (if unplayable) flat world rather than a panic.
func NewFlatGenerator(reg *registry.Data) *FlatGenerator {
	id, _ := reg.Blocks.ByName("minecraft:grass_block")
	return &FlatGenerator{groundY: 64, blockID: id}
}

// Generate implements world.TerrainGenerator.
func (g *FlatGenerator) Generate(cx, cz int32) *world.Chunk {
	c := world.NewChunk(cx, cz)
	for lx := 0; lx < 16; lx++ {
		for lz := 0; lz < 16; lz++ {
			c.SetBlock(lx, int(g.groundY), lz, g.blockID)
		}
	}
	return c
}
