package protocol

import (
	"bytes"
	"io"
)

// KnownPack identifies one data pack the server (and client) agree carries
// registry data — spec §4.5's "Clientbound Known Packs" step. The server
// always advertises its own single built-in pack.
type KnownPack struct {
	Namespace string
	ID        string
	Version   string
}

// WriteKnownPacks encodes the Clientbound Known Packs packet body: a VarInt
// count followed by (namespace, id, version) string triples per pack.
func WriteKnownPacks(w io.Writer, packs []KnownPack) error {
	if _, err := WriteVarInt(w, int32(len(packs))); err != nil {
		return err
	}
	for _, p := range packs {
		if _, err := WriteString(w, p.Namespace); err != nil {
			return err
		}
		if _, err := WriteString(w, p.ID); err != nil {
			return err
		}
		if _, err := WriteString(w, p.Version); err != nil {
			return err
		}
	}
	return nil
}

// ReadKnownPacks decodes the serverbound Known Packs response. The server
// does not act on the client's pack list (it always sends its own full
// registry set regardless), but the packet must still be consumed to stay
// framed correctly.
func ReadKnownPacks(data []byte) ([]KnownPack, error) {
	r := bytes.NewReader(data)
	n, _, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	packs := make([]KnownPack, 0, n)
	for i := int32(0); i < n; i++ {
		ns, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		id, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		ver, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		packs = append(packs, KnownPack{Namespace: ns, ID: id, Version: ver})
	}
	return packs, nil
}

// RegistryEntry is one named entry of a Registry Data packet. Only the name
// is carried: every entry is written with has_data=false, relying on the
// client's baked-in vanilla data from the known pack. Registry JSON is not
// translated to NBT and no payload is ever sent. Entry order is what
// matters here (spec §4.5 "indexes become the protocol ids").
type RegistryEntry struct {
	Name string
}

// WriteRegistryData encodes one Registry Data packet body: registry name,
// VarInt entry count, then per entry a name string and a has-data bool.
func WriteRegistryData(w io.Writer, registryName string, entries []RegistryEntry) error {
	if _, err := WriteString(w, registryName); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := WriteString(w, e.Name); err != nil {
			return err
		}
		if err := WriteBool(w, false); err != nil {
			return err
		}
	}
	return nil
}
