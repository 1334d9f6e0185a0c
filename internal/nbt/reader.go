package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SkipAny reads one unnamed NBT tag (network form: a type byte followed
// directly by the payload, no name) and discards it. It is used to consume
// opaque NBT-shaped component payloads without interpreting them.
func SkipAny(r io.Reader) error {
	var typeBuf [1]byte
	if _, err := io.ReadFull(r, typeBuf[:]); err != nil {
		return fmt.Errorf("nbt: read tag type: %w", err)
	}
	return skipPayload(r, typeBuf[0])
}

func skipPayload(r io.Reader, tagType byte) error {
	switch tagType {
	case TagEnd:
		return nil
	case TagByte:
		return skipN(r, 1)
	case TagShort:
		return skipN(r, 2)
	case TagInt, TagFloat:
		return skipN(r, 4)
	case TagLong, TagDouble:
		return skipN(r, 8)
	case TagByteArray:
		n, err := readInt32(r)
		if err != nil {
			return err
		}
		return skipN(r, int(n))
	case TagString:
		n, err := readUint16(r)
		if err != nil {
			return err
		}
		return skipN(r, int(n))
	case TagList:
		var elemType [1]byte
		if _, err := io.ReadFull(r, elemType[:]); err != nil {
			return fmt.Errorf("nbt: read list element type: %w", err)
		}
		count, err := readInt32(r)
		if err != nil {
			return err
		}
		for i := int32(0); i < count; i++ {
			if err := skipPayload(r, elemType[0]); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		for {
			var childType [1]byte
			if _, err := io.ReadFull(r, childType[:]); err != nil {
				return fmt.Errorf("nbt: read compound child type: %w", err)
			}
			if childType[0] == TagEnd {
				return nil
			}
			nameLen, err := readUint16(r)
			if err != nil {
				return err
			}
			if err := skipN(r, int(nameLen)); err != nil {
				return err
			}
			if err := skipPayload(r, childType[0]); err != nil {
				return err
			}
		}
	case TagIntArray:
		n, err := readInt32(r)
		if err != nil {
			return err
		}
		return skipN(r, int(n)*4)
	case TagLongArray:
		n, err := readInt32(r)
		if err != nil {
			return err
		}
		return skipN(r, int(n)*8)
	default:
		return fmt.Errorf("nbt: unknown tag type %d", tagType)
	}
}

func skipN(r io.Reader, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, int64(n))
	return err
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}
