package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// Load fetches a registry-data source (a local directory, local archive, or
// any URL go-getter understands — git::, http, s3://, gcs://, ...) and
// parses it into a Data set. Grounded on cmd/dmd's get.Get call, generalized
// from a one-shot schema-download CLI into the server's own data loader.
//
// An empty src returns DefaultData() so the server stays bootable without an
// external data source, matching the registry/loot loader's role as an
// opaque, swappable collaborator (spec §1 Non-goals).
func Load(src string) (*Data, error) {
	if strings.TrimSpace(src) == "" {
		return DefaultData(), nil
	}

	dst, err := os.MkdirTemp("", "mc-registry-data-*")
	if err != nil {
		return nil, fmt.Errorf("registry: create stage dir: %w", err)
	}
	defer os.RemoveAll(dst)

	slog.Info("fetching registry data", "source", src, "dest", dst)
	client := &getter.Client{
		Src:  src,
		Dst:  dst,
		Pwd:  ".",
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("registry: fetch %q: %w", src, err)
	}

	return parseDir(dst)
}

// parseDir reads blocks.json, items.json, materials.json and one JSON file
// per required registry (named "<last-segment-of-registry-name>.json") out
// of dir, falling back to the matching piece of DefaultData() for anything
// the source omits so a partial data source still boots the server.
func parseDir(dir string) (*Data, error) {
	fallback := DefaultData()
	data := &Data{
		Registries: make(map[string]Set, len(RequiredRegistries)),
		Blocks:     fallback.Blocks,
		Items:      fallback.Items,
		Materials:  fallback.Materials,
	}

	if blocks, ok, err := readBlocks(filepath.Join(dir, "blocks.json")); err != nil {
		return nil, err
	} else if ok {
		data.Blocks = blocks
	}

	if items, ok, err := readItems(filepath.Join(dir, "items.json")); err != nil {
		return nil, err
	} else if ok {
		data.Items = items
	}

	if materials, ok, err := readMaterials(filepath.Join(dir, "materials.json")); err != nil {
		return nil, err
	} else if ok {
		data.Materials = materials
	}

	for _, name := range RequiredRegistries {
		file := filepath.Join(dir, registryFileName(name)+".json")
		entries, ok, err := readEntries(file)
		if err != nil {
			return nil, err
		}
		if !ok {
			data.Registries[name] = fallback.Registry(name)
			continue
		}
		data.Registries[name] = Set{Name: name, Entries: entries}
	}

	return data, nil
}

func registryFileName(registryName string) string {
	parts := strings.Split(registryName, "/")
	last := parts[len(parts)-1]
	return strings.TrimPrefix(last, "minecraft:")
}

type rawEntry struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

func readEntries(path string) ([]Entry, bool, error) {
	raw, ok, err := readFile(path)
	if err != nil || !ok {
		return nil, ok, err
	}
	var list []rawEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	entries := make([]Entry, len(list))
	for i, e := range list {
		entries[i] = Entry{Name: e.Name, Data: e.Data}
	}
	return entries, true, nil
}

type rawBlock struct {
	StateID      int32          `json:"state_id"`
	Name         string         `json:"name"`
	Hardness     *float64       `json:"hardness"`
	Diggable     bool           `json:"diggable"`
	Material     string         `json:"material"`
	HarvestTools map[int32]bool `json:"harvest_tools"`
	Drops        []rawBlockDrop `json:"drops"`
}

type rawBlockDrop struct {
	ItemID   int32 `json:"item_id"`
	MinCount int   `json:"min_count"`
	MaxCount int   `json:"max_count"`
}

func readBlocks(path string) (BlockRegistry, bool, error) {
	raw, ok, err := readFile(path)
	if err != nil || !ok {
		return BlockRegistry{}, ok, err
	}
	var list []rawBlock
	if err := json.Unmarshal(raw, &list); err != nil {
		return BlockRegistry{}, false, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	blocks := make([]Block, len(list))
	for i, b := range list {
		drops := make([]Drop, len(b.Drops))
		for j, d := range b.Drops {
			drops[j] = Drop{ItemID: d.ItemID, MinCount: d.MinCount, MaxCount: d.MaxCount}
		}
		blocks[i] = Block{
			StateID:      b.StateID,
			Name:         b.Name,
			Hardness:     b.Hardness,
			Diggable:     b.Diggable,
			Material:     b.Material,
			HarvestTools: b.HarvestTools,
			Drops:        drops,
		}
	}
	return NewBlockRegistry(blocks), true, nil
}

func readItems(path string) (ItemRegistry, bool, error) {
	raw, ok, err := readFile(path)
	if err != nil || !ok {
		return ItemRegistry{}, ok, err
	}
	var list []Item
	if err := json.Unmarshal(raw, &list); err != nil {
		return ItemRegistry{}, false, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	return NewItemRegistry(list), true, nil
}

func readMaterials(path string) (MaterialRegistry, bool, error) {
	raw, ok, err := readFile(path)
	if err != nil || !ok {
		return nil, ok, err
	}
	var list []Material
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	reg := make(MaterialRegistry, len(list))
	for _, m := range list {
		reg[m.Name] = m
	}
	return reg, true, nil
}

func readFile(path string) ([]byte, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("registry: read %s: %w", path, err)
	}
	return raw, true, nil
}
