package registry

import "encoding/json"

// Baked-in block-state ids used when no registry-data source overrides them.
// Mirrors the spec's reminder that generator/test code must resolve against
// whatever concrete registry is loaded at startup, never a hard-coded
// fixture id (spec §9 open question on the source's test-only 2105 dirt id).
const (
	BlockAir       int32 = 0
	BlockStone     int32 = 1
	BlockGrass     int32 = 2
	BlockDirt      int32 = 3
	BlockBedrock   int32 = 4
	BlockWater     int32 = 5
	BlockSand      int32 = 6
	BlockOakLog    int32 = 7
	BlockOakLeaves int32 = 8
	BlockCoalOre   int32 = 9
	BlockIronOre   int32 = 10
	BlockDiamond   int32 = 11
	BlockSnow      int32 = 12
)

const (
	ItemWoodenPickaxe  int32 = 1001
	ItemStonePickaxe   int32 = 1002
	ItemIronPickaxe    int32 = 1003
	ItemDiamondPickaxe int32 = 1004

	ItemDirt    int32 = BlockDirt + 10000
	ItemStone   int32 = BlockStone + 10000
	ItemSand    int32 = BlockSand + 10000
	ItemOakLog  int32 = BlockOakLog + 10000
	ItemCoalOre int32 = BlockCoalOre + 10000
)

func float64p(v float64) *float64 { return &v }

func defaultMaterials() MaterialRegistry {
	return MaterialRegistry{
		"rock": Material{
			Name: "rock",
			ToolSpeeds: map[int32]float64{
				ItemWoodenPickaxe:  2,
				ItemStonePickaxe:   4,
				ItemIronPickaxe:    6,
				ItemDiamondPickaxe: 8,
			},
		},
		"dirt": Material{
			Name:       "dirt",
			ToolSpeeds: map[int32]float64{},
		},
	}
}

// DefaultData returns a small, self-consistent registry covering exactly the
// blocks/items the bundled default terrain generator and mining logic use.
// It is what the server boots with when no --registry-data source is given,
// and what tests build their fixtures from (spec §9: resolve block ids
// against the loaded registry, never a literal).
func DefaultData() *Data {
	harvestRock := map[int32]bool{
		ItemWoodenPickaxe:  true,
		ItemStonePickaxe:   true,
		ItemIronPickaxe:    true,
		ItemDiamondPickaxe: true,
	}

	blocks := NewBlockRegistry([]Block{
		{StateID: BlockAir, Name: "minecraft:air", Diggable: false},
		{StateID: BlockStone, Name: "minecraft:stone", Hardness: float64p(1.5), Diggable: true, Material: "rock", HarvestTools: harvestRock, Drops: []Drop{{ItemID: ItemStone, MinCount: 1, MaxCount: 1}}},
		{StateID: BlockGrass, Name: "minecraft:grass_block", Hardness: float64p(0.6), Diggable: true, Material: "dirt", Drops: []Drop{{ItemID: ItemDirt, MinCount: 1, MaxCount: 1}}},
		{StateID: BlockDirt, Name: "minecraft:dirt", Hardness: float64p(0.5), Diggable: true, Material: "dirt", Drops: []Drop{{ItemID: ItemDirt, MinCount: 1, MaxCount: 1}}},
		{StateID: BlockBedrock, Name: "minecraft:bedrock", Hardness: nil, Diggable: false},
		{StateID: BlockWater, Name: "minecraft:water", Hardness: nil, Diggable: false},
		{StateID: BlockSand, Name: "minecraft:sand", Hardness: float64p(0.5), Diggable: true, Material: "dirt", Drops: []Drop{{ItemID: ItemSand, MinCount: 1, MaxCount: 1}}},
		{StateID: BlockOakLog, Name: "minecraft:oak_log", Hardness: float64p(2.0), Diggable: true, Material: "dirt", Drops: []Drop{{ItemID: ItemOakLog, MinCount: 1, MaxCount: 1}}},
		{StateID: BlockOakLeaves, Name: "minecraft:oak_leaves", Hardness: float64p(0.2), Diggable: true, Material: "dirt"},
		{StateID: BlockCoalOre, Name: "minecraft:coal_ore", Hardness: float64p(3.0), Diggable: true, Material: "rock", HarvestTools: harvestRock, Drops: []Drop{{ItemID: ItemCoalOre, MinCount: 1, MaxCount: 1}}},
		{StateID: BlockIronOre, Name: "minecraft:iron_ore", Hardness: float64p(3.0), Diggable: true, Material: "rock", HarvestTools: map[int32]bool{ItemStonePickaxe: true, ItemIronPickaxe: true, ItemDiamondPickaxe: true}},
		{StateID: BlockDiamond, Name: "minecraft:diamond_ore", Hardness: float64p(3.0), Diggable: true, Material: "rock", HarvestTools: map[int32]bool{ItemIronPickaxe: true, ItemDiamondPickaxe: true}},
		{StateID: BlockSnow, Name: "minecraft:snow", Hardness: float64p(0.1), Diggable: true, Material: "dirt"},
	})

	items := NewItemRegistry([]Item{
		{ID: ItemWoodenPickaxe, Name: "minecraft:wooden_pickaxe", MaxStack: 1},
		{ID: ItemStonePickaxe, Name: "minecraft:stone_pickaxe", MaxStack: 1},
		{ID: ItemIronPickaxe, Name: "minecraft:iron_pickaxe", MaxStack: 1},
		{ID: ItemDiamondPickaxe, Name: "minecraft:diamond_pickaxe", MaxStack: 1},
		{ID: ItemDirt, Name: "minecraft:dirt", PlacesBlock: BlockDirt, MaxStack: 64},
		{ID: ItemStone, Name: "minecraft:stone", PlacesBlock: BlockStone, MaxStack: 64},
		{ID: ItemSand, Name: "minecraft:sand", PlacesBlock: BlockSand, MaxStack: 64},
		{ID: ItemOakLog, Name: "minecraft:oak_log", PlacesBlock: BlockOakLog, MaxStack: 64},
		{ID: ItemCoalOre, Name: "minecraft:coal_ore", MaxStack: 64},
	})

	registries := map[string]Set{}
	for _, name := range RequiredRegistries {
		registries[name] = Set{Name: name, Entries: defaultEntriesFor(name)}
	}

	return &Data{Registries: registries, Blocks: blocks, Items: items, Materials: defaultMaterials()}
}

func defaultEntriesFor(name string) []Entry {
	raw := func(s string) json.RawMessage { return json.RawMessage(s) }
	switch name {
	case "minecraft:dimension_type":
		return []Entry{{Name: "minecraft:overworld", Data: raw(`{"has_skylight":true,"has_ceiling":false,"min_y":-64,"height":384,"ultrawarm":false,"natural":true}`)}}
	case "minecraft:worldgen/biome":
		return []Entry{{Name: "minecraft:plains", Data: raw(`{"temperature":0.8,"downfall":0.4}`)}}
	case "minecraft:damage_type":
		return []Entry{
			{Name: "minecraft:generic", Data: raw(`{"exhaustion":0.1,"message_id":"generic","scaling":"when_caused_by_living_non_player"}`)},
			{Name: "minecraft:fall", Data: raw(`{"exhaustion":0.0,"message_id":"fall","scaling":"when_caused_by_living_non_player"}`)},
		}
	default:
		// Cosmetic variant registries (cat/chicken/cow/frog/painting/pig/wolf
		// variants) are opaque cosmetics the core doesn't otherwise touch —
		// one entry is enough to satisfy the Configuration-phase contract.
		return []Entry{{Name: name + "/default", Data: raw(`{}`)}}
	}
}
