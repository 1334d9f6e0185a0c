package gen

// Biome is an internal terrain-shaping classification, independent of the
// registry protocol id sent to the client (DefaultGenerator resolves that
// separately against whatever worldgen/biome registry was loaded).
type Biome byte

const (
	BiomeOcean Biome = iota
	BiomePlains
	BiomeForest
	BiomeDesert
	BiomeTaiga
	BiomeMountains
	BiomeBeach
	BiomeJungle
)

func (b Biome) Name() string {
	switch b {
	case BiomeOcean:
		return "minecraft:ocean"
	case BiomeForest:
		return "minecraft:forest"
	case BiomeDesert:
		return "minecraft:desert"
	case BiomeTaiga:
		return "minecraft:taiga"
	case BiomeMountains:
		return "minecraft:windswept_hills"
	case BiomeBeach:
		return "minecraft:beach"
	case BiomeJungle:
		return "minecraft:jungle"
	default:
		return "minecraft:plains"
	}
}

// BiomeGenerator classifies world columns into biomes from two independent
// noise fields (temperature, humidity), the same two-axis approach the
// teacher's default.go names via its per-biome terrain-param switch, rebuilt
// here since the teacher's own BiomeGenerator type body is not present in
// the retrieved snapshot (only referenced from DefaultGenerator).
type BiomeGenerator struct {
	temperature *NoiseGenerator
	humidity    *NoiseGenerator
}

// NewBiomeGenerator creates a biome classifier from a world seed.
func NewBiomeGenerator(seed int64) *BiomeGenerator {
	return &BiomeGenerator{
		temperature: NewNoiseGenerator(seed + 100),
		humidity:    NewNoiseGenerator(seed + 200),
	}
}

// BiomeAt classifies a world column.
func (g *BiomeGenerator) BiomeAt(bx, bz int) Biome {
	nx, nz := float64(bx)/256.0, float64(bz)/256.0
	temp := g.temperature.OctaveNoise2D(nx, nz, 4, 0.5)
	humid := g.humidity.OctaveNoise2D(nx+500, nz+500, 4, 0.5)
	continental := g.temperature.OctaveNoise2D(nx/4, nz/4, 3, 0.5)

	if continental < -0.35 {
		return BiomeOcean
	}
	switch {
	case temp > 0.5 && humid < -0.1:
		return BiomeDesert
	case temp > 0.4 && humid > 0.2:
		return BiomeJungle
	case temp < -0.4:
		return BiomeTaiga
	case continental > 0.55:
		return BiomeMountains
	case humid > 0.3:
		return BiomeForest
	case continental < -0.15:
		return BiomeBeach
	default:
		return BiomePlains
	}
}

// terrainParams returns (amplitude, baseHeight) for terrain noise scaling,
// grounded on the teacher's biomeTerrainParams switch (internal/server/
// world/gen/default.go), re-keyed to this package's Biome enum.
func terrainParams(b Biome, seaLevel float64) (amplitude, baseHeight float64) {
	switch b {
	case BiomeOcean:
		return 8.0, seaLevel - 24
	case BiomePlains:
		return 12.0, seaLevel
	case BiomeForest:
		return 16.0, seaLevel + 2
	case BiomeTaiga:
		return 18.0, seaLevel + 4
	case BiomeDesert:
		return 10.0, seaLevel + 2
	case BiomeJungle:
		return 18.0, seaLevel + 4
	case BiomeMountains:
		return 48.0, seaLevel + 12
	case BiomeBeach:
		return 3.0, seaLevel
	default:
		return 14.0, seaLevel
	}
}

func surfaceLayerDepth(b Biome) int {
	if b == BiomeDesert {
		return 5
	}
	return 4
}
