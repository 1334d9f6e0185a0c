// Package registry is the server's view of the registry/loot/JSON data
// loader: an opaque key→value source the rest of the server treats as a
// pluggable external collaborator (spec §1 Non-goals — neither its file
// format nor the JSON parser that reads it are this module's concern).
package registry

import "encoding/json"

// Entry is one named member of a registry (e.g. one dimension_type, one
// worldgen/biome). Its position in Set.Entries (data-source order, see
// IndexOf) becomes its protocol id for the lifetime of the server —
// spec §4.5: "indexes become the protocol ids seen in later packets".
type Entry struct {
	Name string
	Data json.RawMessage
}

// Set is one full registry (all entries for one registry name, e.g.
// "minecraft:dimension_type"), in data-source order.
type Set struct {
	Name    string
	Entries []Entry
}

// IndexOf returns the protocol id for a named entry, or -1 if absent.
func (s Set) IndexOf(name string) int {
	for i, e := range s.Entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// RequiredRegistries is the fixed list of registries the Configuration phase
// must send before a connection can advance to Play (spec §4.5).
var RequiredRegistries = []string{
	"minecraft:dimension_type",
	"minecraft:cat_variant",
	"minecraft:chicken_variant",
	"minecraft:cow_variant",
	"minecraft:frog_variant",
	"minecraft:painting_variant",
	"minecraft:pig_variant",
	"minecraft:wolf_variant",
	"minecraft:wolf_sound_variant",
	"minecraft:worldgen/biome",
	"minecraft:damage_type",
}

// Data is the full set of registries and game data the server loaded at
// startup, keyed by registry name. It is the "opaque key→value source" the
// rest of the server is handed; Blocks, Items and Materials get typed views
// (mining/placement/generation need concrete fields), everything else stays
// JSON-opaque.
type Data struct {
	Registries map[string]Set
	Blocks     BlockRegistry
	Items      ItemRegistry
	Materials  MaterialRegistry
}

// Registry returns the named registry set, creating an empty one if absent
// so a misconfigured data source still lets the server advance through
// Configuration (with zero entries for that registry) rather than panic.
func (d *Data) Registry(name string) Set {
	if s, ok := d.Registries[name]; ok {
		return s
	}
	return Set{Name: name}
}
