package protocol

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
)

// tagName is the struct tag used to describe a field's wire encoding, e.g.
// `mc:"varint"`. Fixed-shape packets (Handshake, Keep Alive, Synchronize
// Player Position, ...) are declared with these tags and encoded/decoded by
// reflection. Variable-shape packets (Chunk Data, anything carrying a Slot
// or a palette) are encoded and decoded by hand-written Write*/Read*
// functions instead.
const tagName = "mc"

// Marshal encodes a packet struct into w using its `mc` struct tags.
func Marshal(w io.Writer, p Packet) error {
	v := reflect.ValueOf(p)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("marshal: expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		if err := writeTaggedField(w, tag, v.Field(i).Interface()); err != nil {
			return fmt.Errorf("marshal field %s: %w", field.Name, err)
		}
	}
	return nil
}

// Unmarshal decodes data into the struct pointed to by p using its `mc` tags.
func Unmarshal(data []byte, p Packet) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("unmarshal: expected non-nil pointer, got %T", p)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal: expected pointer to struct, got pointer to %s", v.Kind())
	}

	r := bytes.NewReader(data)
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		val, err := readTaggedField(r, tag)
		if err != nil {
			return fmt.Errorf("unmarshal field %s: %w", field.Name, err)
		}
		fv := v.Field(i)
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(fv.Type()) {
			return fmt.Errorf("unmarshal field %s: cannot assign %s to %s", field.Name, rv.Type(), fv.Type())
		}
		fv.Set(rv)
	}
	return nil
}

func writeTaggedField(w io.Writer, tag string, val any) error {
	switch tag {
	case "varint":
		_, err := WriteVarInt(w, val.(int32))
		return err
	case "varlong":
		_, err := WriteVarLong(w, val.(int64))
		return err
	case "i8":
		return WriteI8(w, val.(int8))
	case "u8":
		return WriteU8(w, val.(uint8))
	case "i16":
		return WriteI16(w, val.(int16))
	case "u16":
		return WriteU16(w, val.(uint16))
	case "i32":
		return WriteI32(w, val.(int32))
	case "i64":
		return WriteI64(w, val.(int64))
	case "f32":
		return WriteF32(w, val.(float32))
	case "f64":
		return WriteF64(w, val.(float64))
	case "bool":
		return WriteBool(w, val.(bool))
	case "angle":
		return WriteAngle(w, val.(float32))
	case "string":
		_, err := WriteString(w, val.(string))
		return err
	case "position":
		return WriteI64(w, val.(int64))
	case "uuid":
		_, err := WriteUUID(w, val.([16]byte))
		return err
	case "bytearray":
		_, err := WriteByteArray(w, val.([]byte))
		return err
	case "rest":
		_, err := w.Write(val.([]byte))
		return err
	default:
		return fmt.Errorf("unknown field tag: %q", tag)
	}
}

func readTaggedField(r io.Reader, tag string) (any, error) {
	switch tag {
	case "varint":
		v, _, err := ReadVarInt(r)
		return v, err
	case "varlong":
		v, _, err := ReadVarLong(r)
		return v, err
	case "i8":
		return ReadI8(r)
	case "u8":
		return ReadU8(r)
	case "i16":
		return ReadI16(r)
	case "u16":
		return ReadU16(r)
	case "i32":
		return ReadI32(r)
	case "i64":
		return ReadI64(r)
	case "f32":
		return ReadF32(r)
	case "f64":
		return ReadF64(r)
	case "bool":
		return ReadBool(r)
	case "angle":
		return ReadAngle(r)
	case "string":
		return ReadString(r)
	case "position":
		return ReadI64(r)
	case "uuid":
		return ReadUUID(r)
	case "bytearray":
		return ReadByteArray(r)
	case "rest":
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("unknown field tag: %q", tag)
	}
}
