package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// MaxPacketSize bounds a single incoming packet's frame length.
const MaxPacketSize = 1 << 21 // 2 MiB

// Packet is any message that can travel over the wire.
type Packet interface {
	PacketID() int32
}

// ReadRawPacket reads one length-prefixed frame and splits off the packet id.
func ReadRawPacket(r io.Reader) (packetID int32, data []byte, err error) {
	length, _, err := ReadVarInt(r)
	if err != nil {
		return 0, nil, fmt.Errorf("read packet length: %w", err)
	}
	if length < 1 {
		return 0, nil, fmt.Errorf("packet length too small: %d", length)
	}
	if length > MaxPacketSize {
		return 0, nil, fmt.Errorf("packet too large: %d bytes", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("read packet payload: %w", err)
	}

	buf := bytes.NewReader(payload)
	packetID, _, err = ReadVarInt(buf)
	if err != nil {
		return 0, nil, fmt.Errorf("read packet id: %w", err)
	}

	remaining := make([]byte, buf.Len())
	if _, err := io.ReadFull(buf, remaining); err != nil {
		return 0, nil, fmt.Errorf("read packet data: %w", err)
	}

	return packetID, remaining, nil
}

// WriteRawPacket writes a framed packet given its id and already-encoded body.
func WriteRawPacket(w io.Writer, packetID int32, data []byte) error {
	idSize := VarIntSize(packetID)
	totalLen := idSize + len(data)

	var buf bytes.Buffer
	buf.Grow(VarIntSize(int32(totalLen)) + totalLen)

	if _, err := WriteVarInt(&buf, int32(totalLen)); err != nil {
		return fmt.Errorf("write packet length: %w", err)
	}
	if _, err := WriteVarInt(&buf, packetID); err != nil {
		return fmt.Errorf("write packet id: %w", err)
	}
	if _, err := buf.Write(data); err != nil {
		return fmt.Errorf("write packet data: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Encoder is implemented by packets with hand-written wire encoders
// (variable-shape payloads the tag codec can't express).
type Encoder interface {
	Packet
	Encode(w io.Writer) error
}

// WritePacket encodes p (via its Encode method if it has one, otherwise the
// struct-tag codec) and frames it onto w.
func WritePacket(w io.Writer, p Packet) error {
	var buf bytes.Buffer
	var err error
	if enc, ok := p.(Encoder); ok {
		err = enc.Encode(&buf)
	} else {
		err = Marshal(&buf, p)
	}
	if err != nil {
		return fmt.Errorf("encode packet 0x%02X: %w", p.PacketID(), err)
	}
	return WriteRawPacket(w, p.PacketID(), buf.Bytes())
}
