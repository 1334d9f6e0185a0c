package gen

import (
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
)

const seaLevel = 63.0

// DefaultGenerator produces noise-shaped terrain with biome-scaled height,
// simple cave carving, sparse ore placement, and surface decoration.
// Grounded on the teacher's DefaultGenerator (internal/server/world/gen/
// default.go) for the overall pass structure (heightmap+biome fill, carve,
// ore, decorate) and terrain-height formula; the teacher's CaveGenerator/
// OreGenerator/TreeGenerator types are referenced by that file but absent
// from the retrieved snapshot, so their passes are rebuilt here as
// single-function equivalents rather than ported verbatim. Block ids are
// resolved against the loaded registry (spec §9: never hard-code a
// fixture id).
type DefaultGenerator struct {
	terrain  *NoiseGenerator
	detail   *NoiseGenerator
	cave     *NoiseGenerator
	ore      *NoiseGenerator
	biomeGen *BiomeGenerator

	air, bedrock, stone, dirt, grass, sand, water, coalOre, ironOre, diamondOre, log, leaves int32
}

// NewDefaultGenerator creates a DefaultGenerator from a seed and the loaded
// block registry.
func NewDefaultGenerator(seed int64, reg *registry.Data) *DefaultGenerator {
	id := func(name string) int32 {
		v, _ := reg.Blocks.ByName(name)
		return v
	}
	return &DefaultGenerator{
		terrain:    NewNoiseGenerator(seed),
		detail:     NewNoiseGenerator(seed + 1),
		cave:       NewNoiseGenerator(seed + 2),
		ore:        NewNoiseGenerator(seed + 3),
		biomeGen:   NewBiomeGenerator(seed),
		bedrock:    id("minecraft:bedrock"),
		stone:      id("minecraft:stone"),
		dirt:       id("minecraft:dirt"),
		grass:      id("minecraft:grass_block"),
		sand:       id("minecraft:sand"),
		water:      id("minecraft:water"),
		coalOre:    id("minecraft:coal_ore"),
		ironOre:    id("minecraft:iron_ore"),
		diamondOre: id("minecraft:diamond_ore"),
		log:        id("minecraft:oak_log"),
		leaves:     id("minecraft:oak_leaves"),
	}
}

// Generate implements world.TerrainGenerator.
func (g *DefaultGenerator) Generate(chunkX, chunkZ int32) *world.Chunk {
	c := world.NewChunk(chunkX, chunkZ)

	var heights [16][16]int
	var biomes [16][16]Biome
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			bx := int(chunkX)*16 + x
			bz := int(chunkZ)*16 + z

			biome := g.biomeGen.BiomeAt(bx, bz)
			biomes[x][z] = biome

			height := g.terrainHeight(bx, bz, biome)
			heights[x][z] = height

			g.fillColumn(c, x, z, height, biome)
		}
	}

	g.carveCaves(c, chunkX, chunkZ, &heights)
	g.placeOres(c, chunkX, chunkZ, &heights)
	g.decorate(c, chunkX, chunkZ, &heights, &biomes)

	return c
}

// HeightAt returns the terrain height at a world block coordinate.
func (g *DefaultGenerator) HeightAt(blockX, blockZ int) int {
	biome := g.biomeGen.BiomeAt(blockX, blockZ)
	return g.terrainHeight(blockX, blockZ, biome)
}

func (g *DefaultGenerator) terrainHeight(bx, bz int, biome Biome) int {
	nx := float64(bx) / 128.0
	nz := float64(bz) / 128.0
	base := g.terrain.OctaveNoise2D(nx, nz, 6, 0.5)

	dx := float64(bx) / 32.0
	dz := float64(bz) / 32.0
	detail := g.detail.OctaveNoise2D(dx, dz, 3, 0.5)

	amplitude, baseHeight := terrainParams(biome, seaLevel)

	height := baseHeight + base*amplitude + detail*4.0
	h := int(height)
	if h < world.MinY+1 {
		h = world.MinY + 1
	}
	if h > world.MaxY-10 {
		h = world.MaxY - 10
	}
	return h
}

func (g *DefaultGenerator) fillColumn(c *world.Chunk, x, z, height int, biome Biome) {
	c.SetBlock(x, world.MinY, z, g.bedrock)
	for y := world.MinY + 1; y <= world.MinY+3; y++ {
		if g.terrain.Noise2D(float64(x+y*7)*0.5, float64(z)*0.5) > 0.0 {
			c.SetBlock(x, y, z, g.bedrock)
		} else {
			c.SetBlock(x, y, z, g.stone)
		}
	}

	surfaceDepth := surfaceLayerDepth(biome)
	stoneTop := height - surfaceDepth
	if stoneTop < world.MinY+4 {
		stoneTop = world.MinY + 4
	}
	for y := world.MinY + 4; y <= stoneTop && y <= height; y++ {
		c.SetBlock(x, y, z, g.stone)
	}

	g.applySurface(c, x, z, height, biome)

	if height < seaLevel {
		for y := height + 1; y <= int(seaLevel); y++ {
			c.SetBlock(x, y, z, g.water)
		}
	}
}

func (g *DefaultGenerator) applySurface(c *world.Chunk, x, z, height int, biome Biome) {
	switch biome {
	case BiomeDesert, BiomeBeach:
		for y := height - surfaceLayerDepth(biome) + 1; y <= height; y++ {
			c.SetBlock(x, y, z, g.sand)
		}
	default:
		top := g.grass
		if height < int(seaLevel) {
			top = g.dirt // underwater columns get a dirt bed, not grass
		}
		c.SetBlock(x, height, z, top)
		for y := height - surfaceLayerDepth(biome) + 1; y < height; y++ {
			c.SetBlock(x, y, z, g.dirt)
		}
	}
}

// carveCaves removes stone in thin noise-threshold bands well below the
// surface, a simplified stand-in for the teacher's referenced (but absent)
// CaveGenerator.
func (g *DefaultGenerator) carveCaves(c *world.Chunk, chunkX, chunkZ int32, heights *[16][16]int) {
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			bx := int(chunkX)*16 + x
			bz := int(chunkZ)*16 + z
			surface := heights[x][z]
			lowest := surface - 40
			if lowest < world.MinY+8 {
				lowest = world.MinY + 8
			}
			for y := lowest; y < surface-4; y++ {
				n := g.cave.OctaveNoise3D(float64(bx)/16.0, float64(y)/12.0, float64(bz)/16.0, 3, 0.5)
				if n > 0.62 {
					c.SetBlock(x, y, z, 0)
				}
			}
		}
	}
}

// placeOres scatters coal/iron/diamond in depth bands using 3D noise
// thresholds, a simplified stand-in for the teacher's referenced (but
// absent) OreGenerator.
func (g *DefaultGenerator) placeOres(c *world.Chunk, chunkX, chunkZ int32, heights *[16][16]int) {
	bands := []struct {
		id           int32
		minY, maxY   int
		threshold    float64
	}{
		{g.coalOre, 0, 110, 0.72},
		{g.ironOre, -32, 60, 0.76},
		{g.diamondOre, world.MinY, -16, 0.82},
	}

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			bx := int(chunkX)*16 + x
			bz := int(chunkZ)*16 + z
			surface := heights[x][z]
			for _, band := range bands {
				top := band.maxY
				if top > surface-2 {
					top = surface - 2
				}
				for y := band.minY; y <= top; y++ {
					if c.GetBlock(x, y, z) != g.stone {
						continue
					}
					n := g.ore.OctaveNoise3D(float64(bx)/8.0, float64(y)/8.0, float64(bz)/8.0, 2, 0.5)
					if n > band.threshold {
						c.SetBlock(x, y, z, band.id)
					}
				}
			}
		}
	}
}

// decorate places sparse single-log trees with a leaf canopy on grass
// columns, a simplified stand-in for the teacher's referenced (but absent)
// TreeGenerator.
func (g *DefaultGenerator) decorate(c *world.Chunk, chunkX, chunkZ int32, heights *[16][16]int, biomes *[16][16]Biome) {
	for x := 2; x < 14; x += 4 {
		for z := 2; z < 14; z += 4 {
			biome := biomes[x][z]
			if biome != BiomePlains && biome != BiomeForest {
				continue
			}
			bx := int(chunkX)*16 + x
			bz := int(chunkZ)*16 + z
			if g.terrain.Noise2D(float64(bx)*0.9, float64(bz)*0.9) < 0.35 {
				continue
			}
			surface := heights[x][z]
			if surface < int(seaLevel) || surface > world.MaxY-10 {
				continue
			}
			g.plantTree(c, x, surface+1, z)
		}
	}
}

func (g *DefaultGenerator) plantTree(c *world.Chunk, x, baseY, z int) {
	trunkHeight := 4
	for y := baseY; y < baseY+trunkHeight; y++ {
		c.SetBlock(x, y, z, g.log)
	}
	canopyY := baseY + trunkHeight - 1
	for dy := 0; dy <= 2; dy++ {
		radius := 2
		if dy == 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == 0 && dz == 0 && dy < 2 {
					continue // trunk occupies the center below the top layer
				}
				lx, lz := x+dx, z+dz
				if lx < 0 || lx > 15 || lz < 0 || lz > 15 {
					continue
				}
				if c.GetBlock(lx, canopyY+dy, lz) == 0 {
					c.SetBlock(lx, canopyY+dy, lz, g.leaves)
				}
			}
		}
	}
}
