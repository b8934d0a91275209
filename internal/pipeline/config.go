package pipeline

import (
	"strconv"

	"terragen/internal/erosion"
	"terragen/internal/noise"
	"terragen/internal/rivers"
	"terragen/internal/stamp"
	"terragen/internal/surface"
)

// StampRequest is one stamp application scheduled as part of a generation
// run.
type StampRequest struct {
	Stamp string
	Op    stamp.Op
}

// Config is the parameter bundle for a full pipeline run. It arrives fully
// populated from the caller; the pipeline only guards against nil/empty
// collections, not schema errors.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Physical terrain dimensions, used to map stamp world coordinates
	// and to normalize stamp heights.
	WorldSize float64
	MaxHeight float64

	BaseHeight float64
	Falloff    noise.Falloff
	Layers     []noise.Layer

	Stamps []StampRequest

	ErosionEnabled bool
	Geology        erosion.Geology

	RiversEnabled bool
	Rivers        rivers.Params

	Biome         surface.Biome
	SlopeScale    float64
	TextureLayers []surface.LayerDef
	Blend         surface.BlendParams

	// CellBudget bounds how many cells one Step call may process. Zero
	// runs each stage to completion in a single step (synchronous mode).
	CellBudget int
}

// DefaultConfig returns the standard configuration: a 256² grid with two
// noise layers, moderate erosion and a handful of rivers.
func DefaultConfig() Config {
	base := noise.DefaultLayer()
	detail := noise.Layer{
		Kind:        noise.KindRidged,
		Weight:      0.35,
		Frequency:   0.04,
		Amplitude:   1,
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2,
	}
	return Config{
		Width:          256,
		Height:         256,
		Seed:           1337,
		WorldSize:      1024,
		MaxHeight:      120,
		Falloff:        noise.FalloffNone,
		Layers:         []noise.Layer{base, detail},
		ErosionEnabled: true,
		Geology:        erosion.DefaultGeology(),
		RiversEnabled:  true,
		Rivers:         rivers.DefaultParams(),
		Biome:          surface.BiomePlains,
		TextureLayers:  surface.DefaultLayers(),
		Blend:          surface.DefaultBlendParams(),
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys and malformed values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["world_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.WorldSize = parsed
		}
	}
	if v, ok := cfg["max_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.MaxHeight = parsed
		}
	}
	if v, ok := cfg["base_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.BaseHeight = parsed
		}
	}
	if v, ok := cfg["falloff"]; ok {
		switch v {
		case "none":
			c.Falloff = noise.FalloffNone
		case "smooth":
			c.Falloff = noise.FalloffSmoothEdge
		case "island":
			c.Falloff = noise.FalloffPower
		}
	}
	if v, ok := cfg["biome"]; ok {
		c.Biome = surface.ParseBiome(v)
	}
	if v, ok := cfg["erosion"]; ok {
		c.ErosionEnabled = v != "0" && v != "false"
	}
	if v, ok := cfg["erosion_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Geology.Iterations = parsed
		}
	}
	if v, ok := cfg["erosion_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Geology.Strength = parsed
		}
	}
	if v, ok := cfg["rock_hardness"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Geology.RockHardness = parsed
		}
	}
	if v, ok := cfg["erosion_resistance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Geology.Resistance = parsed
		}
	}
	if v, ok := cfg["rivers"]; ok {
		c.RiversEnabled = v != "0" && v != "false"
	}
	if v, ok := cfg["river_source_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Rivers.MinSourceHeight = parsed
		}
	}
	if v, ok := cfg["river_attempts"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rivers.MaxSourceAttempts = parsed
		}
	}
	if v, ok := cfg["cell_budget"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.CellBudget = parsed
		}
	}
	return c
}
