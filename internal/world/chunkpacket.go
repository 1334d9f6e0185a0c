package world

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/OCharnyshevich/minecraft-server/internal/nbt"
	"github.com/OCharnyshevich/minecraft-server/internal/protocol"
)

// lightSectionCount is sections-per-chunk plus one below and one above the
// world, the unit the light bitsets/arrays are indexed by (spec §6).
const lightSectionCount = SectionCount + 2

// EncodeChunkDataPacket serializes the body of a Chunk Data And Update
// Light packet (spec §6) for a fully materialized chunk. The codec lives in
// this package rather than internal/protocol because internal/protocol must
// not import internal/world (world already imports protocol for SlotData) —
// the split mirrors the teacher's own rule that variable-shape, data-heavy
// packets are hand-built outside the tag codec (internal/protocol/slot.go,
// configpackets.go).
func EncodeChunkDataPacket(c *Chunk) ([]byte, error) {
	var body bytes.Buffer

	if err := writeI32(&body, c.X); err != nil {
		return nil, err
	}
	if err := writeI32(&body, c.Z); err != nil {
		return nil, err
	}

	heightmapLongs := PackHeightmap(c.Heightmap())
	if err := writeHeightmapNBT(&body, heightmapLongs); err != nil {
		return nil, err
	}

	var data bytes.Buffer
	for i := 0; i < SectionCount; i++ {
		view := c.Section(i)
		if err := writeSectionBlocks(&data, view); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		if err := writeSectionBiomes(&data, c.BiomeSectionView(i)); err != nil {
			return nil, fmt.Errorf("section %d biomes: %w", i, err)
		}
	}

	if _, err := protocol.WriteVarInt(&body, int32(data.Len())); err != nil {
		return nil, err
	}
	body.Write(data.Bytes())

	if _, err := protocol.WriteVarInt(&body, 0); err != nil { // n_block_entities
		return nil, err
	}

	emptyMask := protocol.NewBitSet(lightSectionCount)
	for i := 0; i < lightSectionCount; i++ {
		emptyMask.Set(i)
	}
	zeroMask := protocol.NewBitSet(lightSectionCount)

	// Minimal-viable lighting (spec §6 explicitly allows this): every
	// section reports as having no light data of its own.
	if err := protocol.WriteBitSet(&body, zeroMask); err != nil { // sky_light_mask
		return nil, err
	}
	if err := protocol.WriteBitSet(&body, zeroMask); err != nil { // block_light_mask
		return nil, err
	}
	if err := protocol.WriteBitSet(&body, emptyMask); err != nil { // empty_sky_light_mask
		return nil, err
	}
	if err := protocol.WriteBitSet(&body, emptyMask); err != nil { // empty_block_light_mask
		return nil, err
	}
	if _, err := protocol.WriteVarInt(&body, 0); err != nil { // n_sky_light_arrays
		return nil, err
	}
	if _, err := protocol.WriteVarInt(&body, 0); err != nil { // n_block_light_arrays
		return nil, err
	}

	return body.Bytes(), nil
}

func writeI32(w *bytes.Buffer, v int32) error {
	return protocol.WriteI32(w, v)
}

func writeHeightmapNBT(w *bytes.Buffer, packed []int64) error {
	nw := nbt.NewWriter(w)
	nw.BeginCompound("")
	nw.WriteLongArray("MOTION_BLOCKING", packed)
	nw.EndCompound()
	return nw.Err()
}

// writeSectionBlocks writes i16 non_air_count then the block-state paletted
// container, per spec §6: bits=0 uniform, bits∈[4,8] indirect, bits=15
// direct.
func writeSectionBlocks(w *bytes.Buffer, view SectionView) error {
	if err := protocol.WriteI16(w, int16(view.NonAirCount)); err != nil {
		return err
	}
	return writePalettedContainer(w, view.Palette, view.Indices, 4, 8, 15)
}

// writeSectionBiomes writes the biome paletted container: bits=0 uniform,
// bits∈[1,3] indirect, and a direct container of 6 bits per entry when a
// section holds more distinct biomes than 3 bits can index.
func writeSectionBiomes(w *bytes.Buffer, view SectionView) error {
	return writePalettedContainer(w, view.Palette, view.Indices, 1, 3, 6)
}

// writePalettedContainer implements the shared wire shape: u8 bits_per_entry,
// then either a single VarInt (bits=0) or a VarInt-length palette plus a
// VarInt-length data array of 64-bit words packing entries LSB-first without
// spanning a word boundary (spec §6).
func writePalettedContainer(w *bytes.Buffer, palette []int32, indices []uint16, minIndirect, maxIndirect, directBits int) error {
	if len(palette) <= 1 {
		v := int32(0)
		if len(palette) == 1 {
			v = palette[0]
		}
		if err := w.WriteByte(0); err != nil {
			return err
		}
		_, err := protocol.WriteVarInt(w, v)
		return err
	}

	bitsNeeded := bits.Len(uint(len(palette) - 1))
	if bitsNeeded < minIndirect {
		bitsNeeded = minIndirect
	}

	if bitsNeeded <= maxIndirect {
		if err := w.WriteByte(byte(bitsNeeded)); err != nil {
			return err
		}
		if _, err := protocol.WriteVarInt(w, int32(len(palette))); err != nil {
			return err
		}
		for _, id := range palette {
			if _, err := protocol.WriteVarInt(w, id); err != nil {
				return err
			}
		}
		return writePackedLongArray(w, indices, bitsNeeded)
	}

	// Direct: no palette list, indices are resolved to actual ids first.
	if err := w.WriteByte(byte(directBits)); err != nil {
		return err
	}
	direct := make([]uint16, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(palette) {
			return fmt.Errorf("paletted container: index %d out of range for palette of %d", idx, len(palette))
		}
		direct[i] = uint16(palette[idx])
	}
	return writePackedLongArray(w, direct, directBits)
}

// writePackedLongArray packs entries bitsPerEntry wide, LSB-first, into
// 64-bit words with no entry spanning a word boundary, then emits a
// VarInt-length-prefixed array of those words.
func writePackedLongArray(w *bytes.Buffer, entries []uint16, bitsPerEntry int) error {
	perWord := 64 / bitsPerEntry
	nWords := (len(entries) + perWord - 1) / perWord

	words := make([]int64, nWords)
	for i, v := range entries {
		word := i / perWord
		offset := (i % perWord) * bitsPerEntry
		words[word] |= int64(v) << uint(offset)
	}

	if _, err := protocol.WriteVarInt(w, int32(len(words))); err != nil {
		return err
	}
	for _, word := range words {
		if err := protocol.WriteI64(w, word); err != nil {
			return err
		}
	}
	return nil
}
