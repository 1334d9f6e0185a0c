package world

import "sync"

const (
	MinY         = -64
	MaxY         = 319
	WorldHeight  = MaxY - MinY + 1 // 384
	SectionCount = WorldHeight / sectionSize
	chunkWidth   = 16
)

// sectionIndexForY maps a world-y to its section index in [0, SectionCount).
func sectionIndexForY(y int) int { return (y - MinY) / sectionSize }

// Chunk is a 16x384x16 voxel region identified by (chunkX, chunkZ), owning
// 24 sections covering world-y [-64, 319]. Grounded on the teacher's
// world/chunk.go (FlatStoneChunk) and world/anvil/chunk.go (per-section
// iteration and heightmap computation), generalized from 16 fixed sections
// at y 0..255 to 24 sections at the modern y-range.
type Chunk struct {
	mu       sync.RWMutex
	X, Z     int32
	sections [SectionCount]*ChunkSection
	biomes   [SectionCount]*BiomeSection
}

// NewChunk creates an empty (all-air, biome-0) chunk. Callers populate it via
// a TerrainGenerator before inserting it into the store.
func NewChunk(cx, cz int32) *Chunk {
	c := &Chunk{X: cx, Z: cz}
	for i := range c.sections {
		c.sections[i] = newUniformSection(0)
		c.biomes[i] = newUniformBiomeSection(0)
	}
	return c
}

// GetBlock returns the block-state id at a chunk-local (lx, y, lz).
func (c *Chunk) GetBlock(lx, y, lz int) int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getBlockLocked(lx, y, lz)
}

func (c *Chunk) getBlockLocked(lx, y, lz int) int32 {
	if y < MinY || y > MaxY {
		return 0
	}
	return c.sections[sectionIndexForY(y)].Get(lx, y-sectionBaseY(y), lz)
}

// SetBlock stores a block-state id at a chunk-local (lx, y, lz).
func (c *Chunk) SetBlock(lx, y, lz int, id int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setBlockLocked(lx, y, lz, id)
}

func (c *Chunk) setBlockLocked(lx, y, lz int, id int32) {
	if y < MinY || y > MaxY {
		return
	}
	c.sections[sectionIndexForY(y)].Set(lx, y-sectionBaseY(y), lz, id)
}

func sectionBaseY(y int) int {
	idx := sectionIndexForY(y)
	return MinY + idx*sectionSize
}

// SetBiome stores a biome registry index for a 4x4x4 biome cell identified
// by chunk-local biome coordinates bx and bz in [0,3] and a world-absolute
// block y (the cell is the 4-block slice of that y's section containing it).
func (c *Chunk) SetBiome(bx, y, bz int, biomeID int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if y < MinY || y > MaxY {
		return
	}
	secIdx := sectionIndexForY(y)
	localY := (y - sectionBaseY(y)) / biomeSize
	c.biomes[secIdx].Set(bx, localY, bz, biomeID)
}

// Section returns the section view at a 0-based section index for the codec.
func (c *Chunk) Section(idx int) SectionView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sections[idx].View()
}

// BiomeSectionView returns the biome view at a 0-based section index.
func (c *Chunk) BiomeSectionView(idx int) SectionView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.biomes[idx].View()
}

// Heightmap computes the MOTION_BLOCKING heightmap: for each of the 256
// columns (z-major, x-minor to match the wire's x+z*16 indexing), the
// highest non-air y plus one (the lowest y from which the column is all
// air) — or MinY if the column is entirely air.
func (c *Chunk) Heightmap() [256]int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var hm [256]int32
	for z := 0; z < chunkWidth; z++ {
		for x := 0; x < chunkWidth; x++ {
			hm[z*16+x] = int32(c.columnHeightLocked(x, z))
		}
	}
	return hm
}

func (c *Chunk) columnHeightLocked(lx, lz int) int {
	for y := MaxY; y >= MinY; y-- {
		if c.getBlockLocked(lx, y, lz) != 0 {
			return y + 1
		}
	}
	return MinY
}

// PackHeightmap packs 256 9-bit values into 64-bit words, 7 entries per
// word with the top bit of each word unused — entries never span a word
// boundary, matching the paletted-container packing rule the spec states
// for block/biome data (§4.2) and applies identically to heightmaps.
func PackHeightmap(values [256]int32) []int64 {
	const bitsPerEntry = 9
	const entriesPerLong = 64 / bitsPerEntry // 7

	n := (len(values) + entriesPerLong - 1) / entriesPerLong
	out := make([]int64, n)
	for i, v := range values {
		word := i / entriesPerLong
		slot := i % entriesPerLong
		out[word] |= int64(uint64(v&0x1FF) << uint(slot*bitsPerEntry))
	}
	return out
}
