package protocol

import (
	"bytes"
	"math"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		size  int
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"127", 127, 1},
		{"128", 128, 2},
		{"255", 255, 2},
		{"25565", 25565, 3},
		{"max_int32", math.MaxInt32, 5},
		{"min_int32", math.MinInt32, 5},
		{"negative_one", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := WriteVarInt(&buf, tt.value)
			if err != nil {
				t.Fatalf("WriteVarInt(%d): %v", tt.value, err)
			}
			if n != tt.size {
				t.Errorf("WriteVarInt(%d) wrote %d bytes, want %d", tt.value, n, tt.size)
			}
			if got := VarIntSize(tt.value); got != tt.size {
				t.Errorf("VarIntSize(%d) = %d, want %d", tt.value, got, tt.size)
			}

			got, bytesRead, err := ReadVarInt(&buf)
			if err != nil {
				t.Fatalf("ReadVarInt: %v", err)
			}
			if bytesRead != tt.size {
				t.Errorf("ReadVarInt read %d bytes, want %d", bytesRead, tt.size)
			}
			if got != tt.value {
				t.Errorf("ReadVarInt = %d, want %d", got, tt.value)
			}
		})
	}
}

func TestVarIntTooLong(t *testing.T) {
	// Five bytes, every one with the continuation bit set: never terminates
	// within the 5-byte VarInt budget.
	buf := bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	if _, _, err := ReadVarInt(buf); err == nil {
		t.Fatal("ReadVarInt on an over-long sequence: want error, got nil")
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		size  int
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"127", 127, 1},
		{"128", 128, 2},
		{"max_int64", math.MaxInt64, 9},
		{"min_int64", math.MinInt64, 10},
		{"negative_one", -1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := WriteVarLong(&buf, tt.value)
			if err != nil {
				t.Fatalf("WriteVarLong(%d): %v", tt.value, err)
			}
			if n != tt.size {
				t.Errorf("WriteVarLong(%d) wrote %d bytes, want %d", tt.value, n, tt.size)
			}
			if got := VarLongSize(tt.value); got != tt.size {
				t.Errorf("VarLongSize(%d) = %d, want %d", tt.value, got, tt.size)
			}

			got, bytesRead, err := ReadVarLong(&buf)
			if err != nil {
				t.Fatalf("ReadVarLong: %v", err)
			}
			if bytesRead != tt.size {
				t.Errorf("ReadVarLong read %d bytes, want %d", bytesRead, tt.size)
			}
			if got != tt.value {
				t.Errorf("ReadVarLong = %d, want %d", got, tt.value)
			}
		})
	}
}

func TestPutVarInt(t *testing.T) {
	var buf [5]byte
	n := PutVarInt(buf[:], 300)
	if n != 2 {
		t.Errorf("PutVarInt(300) = %d bytes, want 2", n)
	}
	// 300 = 0x12C -> 0xAC 0x02
	if buf[0] != 0xAC || buf[1] != 0x02 {
		t.Errorf("PutVarInt(300) = %x %x, want AC 02", buf[0], buf[1])
	}
}
