package pipeline

import (
	"fmt"
	"strconv"

	"terragen/internal/core"
)

// Parameters captures the current tunables as a read-only snapshot for
// the CLI describe flag and the preview overlay.
func (p *Pipeline) Parameters() core.ParameterSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	grid := core.ParameterGroup{
		Name:    "grid",
		Summary: fmt.Sprintf("%dx%d cells, %gx%g world units", p.cfg.Width, p.cfg.Height, p.cfg.WorldSize, p.cfg.WorldSize),
		Params: []core.Parameter{
			intParam("w", "Width", p.cfg.Width, "grid cells per row"),
			intParam("h", "Height", p.cfg.Height, "grid rows"),
			{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(p.cfg.Seed, 10), Description: "generation seed"},
			floatParam("world_size", "World size", p.cfg.WorldSize, "world units per grid side"),
			floatParam("max_height", "Max height", p.cfg.MaxHeight, "world units at full elevation"),
			intParam("cell_budget", "Cell budget", p.cfg.CellBudget, "max cells per step, 0 for synchronous"),
		},
	}

	noiseGroup := core.ParameterGroup{
		Name:    "noise",
		Summary: fmt.Sprintf("%d layers", len(p.cfg.Layers)),
		Params: []core.Parameter{
			floatParam("base_height", "Base height", p.cfg.BaseHeight, "offset added after falloff"),
			intParam("falloff", "Falloff", int(p.cfg.Falloff), "radial edge taper mode"),
		},
	}
	for i, layer := range p.cfg.Layers {
		prefix := fmt.Sprintf("layer%d_", i)
		noiseGroup.Params = append(noiseGroup.Params,
			core.Parameter{Key: prefix + "kind", Label: "Kind", Type: core.ParamTypeString, Value: string(layer.Kind)},
			floatParam(prefix+"weight", "Weight", layer.Weight, ""),
			floatParam(prefix+"frequency", "Frequency", layer.Frequency, ""),
			intParam(prefix+"octaves", "Octaves", layer.Octaves, ""),
			floatParam(prefix+"persistence", "Persistence", layer.Persistence, ""),
			floatParam(prefix+"lacunarity", "Lacunarity", layer.Lacunarity, ""),
		)
	}

	geologyGroup := core.ParameterGroup{
		Name:    "erosion",
		Summary: fmt.Sprintf("enabled=%t", p.cfg.ErosionEnabled),
		Params: []core.Parameter{
			boolParam("erosion", "Enabled", p.cfg.ErosionEnabled, ""),
			intParam("erosion_iterations", "Iterations", p.cfg.Geology.Iterations, "delta-accumulation passes"),
			floatParam("erosion_strength", "Strength", p.cfg.Geology.Strength, ""),
			floatParam("rock_hardness", "Rock hardness", p.cfg.Geology.RockHardness, ""),
			floatParam("erosion_resistance", "Resistance", p.cfg.Geology.Resistance, ""),
			floatParam("talus", "Talus", p.cfg.Geology.Talus, "minimum gradient that moves material"),
		},
	}

	riversGroup := core.ParameterGroup{
		Name:    "rivers",
		Summary: fmt.Sprintf("enabled=%t", p.cfg.RiversEnabled),
		Params: []core.Parameter{
			boolParam("rivers", "Enabled", p.cfg.RiversEnabled, ""),
			intParam("river_attempts", "Source attempts", p.cfg.Rivers.MaxSourceAttempts, ""),
			floatParam("river_source_height", "Source height", p.cfg.Rivers.MinSourceHeight, "fraction of observed height range"),
			intParam("river_min_length", "Min path length", p.cfg.Rivers.MinPathLength, ""),
			floatParam("river_depth", "Channel depth", p.cfg.Rivers.ChannelDepth, ""),
			floatParam("river_taper", "Width taper", p.cfg.Rivers.WidthTaper, ""),
		},
	}

	surfaceGroup := core.ParameterGroup{
		Name:    "surface",
		Summary: fmt.Sprintf("biome=%s, %d texture layers", p.cfg.Biome, len(p.cfg.TextureLayers)),
		Params: []core.Parameter{
			{Key: "biome", Label: "Biome", Type: core.ParamTypeString, Value: p.cfg.Biome.String(), Description: "environmental preset"},
			floatParam("slope_scale", "Slope scale", p.cfg.SlopeScale, "vertical exaggeration for slope sampling"),
			floatParam("rock_slope_threshold", "Rock slope threshold", p.cfg.Blend.RockSlopeThreshold, ""),
			floatParam("sharpness", "Sharpness", p.cfg.Blend.Sharpness, "weight contrast exponent"),
		},
	}
	for _, layer := range p.cfg.TextureLayers {
		surfaceGroup.Params = append(surfaceGroup.Params, core.Parameter{
			Key:   "texture_" + layer.Name,
			Label: layer.Name,
			Type:  core.ParamTypeString,
			Value: fmt.Sprintf("height %g..%g strength %g", layer.MinHeight, layer.MaxHeight, layer.Strength),
		})
	}

	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{grid, noiseGroup, geologyGroup, riversGroup, surfaceGroup},
	}
}

func intParam(key, label string, v int, desc string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v), Description: desc}
}

func floatParam(key, label string, v float64, desc string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64), Description: desc}
}

func boolParam(key, label string, v bool, desc string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(v), Description: desc}
}
