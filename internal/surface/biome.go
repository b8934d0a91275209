package surface

import "strings"

// Biome is a named environmental preset supplying fixed moisture and
// temperature bias constants.
type Biome int

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeForest
	BiomeSwamp
	BiomeTundra
	BiomeAlpine
)

// String returns the lowercase biome name.
func (b Biome) String() string {
	switch b {
	case BiomeDesert:
		return "desert"
	case BiomeForest:
		return "forest"
	case BiomeSwamp:
		return "swamp"
	case BiomeTundra:
		return "tundra"
	case BiomeAlpine:
		return "alpine"
	default:
		return "plains"
	}
}

// ParseBiome maps a biome name to its value, defaulting to plains.
func ParseBiome(name string) Biome {
	switch strings.ToLower(name) {
	case "desert":
		return BiomeDesert
	case "forest":
		return BiomeForest
	case "swamp":
		return BiomeSwamp
	case "tundra":
		return BiomeTundra
	case "alpine":
		return BiomeAlpine
	default:
		return BiomePlains
	}
}

// MoistureFactor scales the moisture field for the biome.
func (b Biome) MoistureFactor() float64 {
	switch b {
	case BiomeDesert:
		return 0.25
	case BiomeForest:
		return 1.1
	case BiomeSwamp:
		return 1.5
	case BiomeTundra:
		return 0.7
	case BiomeAlpine:
		return 0.8
	default:
		return 1
	}
}

// TemperatureFactor scales the temperature field for the biome.
func (b Biome) TemperatureFactor() float64 {
	switch b {
	case BiomeDesert:
		return 1.4
	case BiomeForest:
		return 1
	case BiomeSwamp:
		return 1.1
	case BiomeTundra:
		return 0.45
	case BiomeAlpine:
		return 0.6
	default:
		return 1
	}
}
