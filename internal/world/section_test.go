package world

import "testing"

func TestChunkSectionGetSetRoundTrip(t *testing.T) {
	s := newUniformSection(0)

	s.Set(1, 2, 3, 42)
	if got := s.Get(1, 2, 3); got != 42 {
		t.Errorf("Get(1,2,3) = %d, want 42 after Set", got)
	}
	if got := s.Get(0, 0, 0); got != 0 {
		t.Errorf("Get(0,0,0) = %d, want 0 (untouched uniform fill)", got)
	}

	s.Set(0, 0, 0, 7)
	s.Set(15, 15, 15, 9)
	if got := s.Get(0, 0, 0); got != 7 {
		t.Errorf("Get(0,0,0) = %d, want 7", got)
	}
	if got := s.Get(15, 15, 15); got != 9 {
		t.Errorf("Get(15,15,15) = %d, want 9", got)
	}
	if got := s.Get(1, 2, 3); got != 42 {
		t.Errorf("Get(1,2,3) = %d, want 42 (unaffected by later writes)", got)
	}
}

func TestChunkSectionRemainsUniformUntilSecondID(t *testing.T) {
	s := newUniformSection(5)
	s.Set(3, 3, 3, 5) // writing the same id must not force dense storage
	if !s.uniform {
		t.Fatal("Set with the uniform id should not expand to dense storage")
	}
	s.Set(3, 3, 3, 6)
	if s.uniform {
		t.Fatal("Set with a distinct id should expand to dense storage")
	}
}

// TestSectionViewPaletteInvariant is spec property 2: for every cached
// chunk section, every index resolves within the palette, and the
// non-air count matches the number of indices that resolve to a non-zero
// (non-air) block-state id.
func TestSectionViewPaletteInvariant(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *ChunkSection
		wantIDs map[int32]int32 // expected count of each block-state id
	}{
		{
			name:    "uniform_air",
			build:   func() *ChunkSection { return newUniformSection(0) },
			wantIDs: map[int32]int32{0: SectionVolume},
		},
		{
			name:    "uniform_solid",
			build:   func() *ChunkSection { return newUniformSection(3) },
			wantIDs: map[int32]int32{3: SectionVolume},
		},
		{
			name: "mixed",
			build: func() *ChunkSection {
				s := newUniformSection(0)
				s.Set(0, 0, 0, 1)
				s.Set(1, 0, 0, 2)
				s.Set(2, 0, 0, 1)
				return s
			},
			wantIDs: map[int32]int32{0: SectionVolume - 3, 1: 2, 2: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.build().View()

			if len(view.Indices) != SectionVolume {
				t.Fatalf("len(Indices) = %d, want %d", len(view.Indices), SectionVolume)
			}

			counts := make(map[int32]int32, len(view.Palette))
			var nonAir int32
			for _, idx := range view.Indices {
				if int(idx) >= len(view.Palette) {
					t.Fatalf("index %d out of range of palette (len %d)", idx, len(view.Palette))
				}
				id := view.Palette[idx]
				counts[id]++
				if id != 0 {
					nonAir++
				}
			}

			if nonAir != view.NonAirCount {
				t.Errorf("NonAirCount = %d, want %d (resolved from palette+indices)", view.NonAirCount, nonAir)
			}
			for id, want := range tt.wantIDs {
				if counts[id] != want {
					t.Errorf("count of id %d = %d, want %d", id, counts[id], want)
				}
			}
		})
	}
}

func TestBiomeSectionViewPaletteInvariant(t *testing.T) {
	s := newUniformBiomeSection(1)
	s.Set(0, 0, 0, 2)
	view := s.View()

	if len(view.Indices) != BiomeVolume {
		t.Fatalf("len(Indices) = %d, want %d", len(view.Indices), BiomeVolume)
	}
	for _, idx := range view.Indices {
		if int(idx) >= len(view.Palette) {
			t.Fatalf("index %d out of range of palette (len %d)", idx, len(view.Palette))
		}
	}
}
