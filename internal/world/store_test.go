package world

import "testing"

// constantGenerator fills every chunk with a single block-state id, so
// tests can assert precisely what "the generator's output" means for a
// position that was never overridden.
type constantGenerator struct{ id int32 }

func (g constantGenerator) Generate(cx, cz int32) *Chunk {
	c := NewChunk(cx, cz)
	for y := MinY; y <= MaxY; y++ {
		for z := 0; z < chunkWidth; z++ {
			for x := 0; x < chunkWidth; x++ {
				c.SetBlock(x, y, z, g.id)
			}
		}
	}
	return c
}

// TestStoreGetSetRoundTrip is spec property 1: get_block returns the last
// value passed to set_block for that position, or the generator's output
// if none.
func TestStoreGetSetRoundTrip(t *testing.T) {
	s := NewChunkStore(constantGenerator{id: 9})

	pos := BlockPos{X: 5, Y: 64, Z: 5}
	if got := s.GetBlock(pos); got != 9 {
		t.Fatalf("GetBlock before any SetBlock = %d, want generator output 9", got)
	}

	s.SetBlock(pos, 42)
	if got := s.GetBlock(pos); got != 42 {
		t.Fatalf("GetBlock after SetBlock(42) = %d, want 42", got)
	}

	other := BlockPos{X: 6, Y: 64, Z: 5}
	if got := s.GetBlock(other); got != 9 {
		t.Fatalf("GetBlock on an untouched position = %d, want generator output 9", got)
	}
}

// TestStoreDiffSurvivesEviction is the block-break scenario from spec §8:
// a diff persists across chunk eviction and reload.
func TestStoreDiffSurvivesEviction(t *testing.T) {
	s := NewChunkStore(constantGenerator{id: 1})
	pos := BlockPos{X: 5, Y: 64, Z: 5}

	s.SetBlock(pos, 0) // break the block: set to air
	if got := s.GetBlock(pos); got != 0 {
		t.Fatalf("GetBlock after break = %d, want 0 (air)", got)
	}

	cx, cz := pos.ChunkCoord()
	s.Evict(cx, cz)
	if s.Cached(cx, cz) {
		t.Fatal("chunk still cached after Evict")
	}

	if got := s.GetBlock(pos); got != 0 {
		t.Errorf("GetBlock after evict+reload = %d, want 0 (diff reapplied)", got)
	}
}

func TestStoreSingleFlightSameChunk(t *testing.T) {
	s := NewChunkStore(constantGenerator{id: 1})
	c1 := s.GetOrCreate(0, 0)
	c2 := s.GetOrCreate(0, 0)
	if c1 != c2 {
		t.Error("GetOrCreate for the same coordinate returned two distinct chunks")
	}
}
