package surface

import (
	"math"

	"terragen/internal/core"
)

// Curve maps a normalized in-range position to a weight multiplier.
type Curve func(t float64) float64

// CurveLinear weights the whole range evenly.
func CurveLinear(float64) float64 { return 1 }

// CurveSmooth favors the middle of the range, easing out at both ends.
func CurveSmooth(t float64) float64 {
	return core.SmoothStep(1 - math.Abs(2*core.Clamp01(t)-1))
}

// CurveRising weights the top of the range.
func CurveRising(t float64) float64 { return core.Clamp01(t) }

// CurveFalling weights the bottom of the range.
func CurveFalling(t float64) float64 { return 1 - core.Clamp01(t) }

// LayerDef is one texture layer's scoring rule. Height acts as a hard
// gate; slope, moisture and temperature only penalize, so boundaries stay
// soft.
type LayerDef struct {
	Name string

	MinHeight, MaxHeight           float64
	MinSlope, MaxSlope             float64
	MinMoisture, MaxMoisture       float64
	MinTemperature, MaxTemperature float64

	Curve    Curve
	Strength float64

	// Rock marks the layer that receives the steep-slope override.
	Rock bool
}

// outOfRangePenalty is the multiplier applied when slope, moisture or
// temperature fall outside a layer's range.
const outOfRangePenalty = 0.1

// BlendParams tunes the cross-layer scoring.
type BlendParams struct {
	// RockSlopeThreshold is the slope above which rock layers gain
	// weight proportional to the excess.
	RockSlopeThreshold float64
	// Sharpness is the exponent applied to raw scores before
	// normalization; >1 increases contrast between layers.
	Sharpness float64
}

// DefaultBlendParams returns the standard scoring configuration.
func DefaultBlendParams() BlendParams {
	return BlendParams{RockSlopeThreshold: 0.55, Sharpness: 1.5}
}

// DefaultLayers returns the standard four-layer set: sand, grass, rock and
// snow.
func DefaultLayers() []LayerDef {
	return []LayerDef{
		{
			Name:      "sand",
			MinHeight: 0, MaxHeight: 0.35,
			MinSlope: 0, MaxSlope: 0.4,
			MinMoisture: 0, MaxMoisture: 0.6,
			MinTemperature: 0.3, MaxTemperature: 1,
			Curve: CurveFalling, Strength: 1,
		},
		{
			Name:      "grass",
			MinHeight: 0.2, MaxHeight: 0.75,
			MinSlope: 0, MaxSlope: 0.5,
			MinMoisture: 0.25, MaxMoisture: 1,
			MinTemperature: 0.2, MaxTemperature: 0.9,
			Curve: CurveSmooth, Strength: 1,
		},
		{
			Name:      "rock",
			MinHeight: 0.3, MaxHeight: 1,
			MinSlope: 0.3, MaxSlope: 1,
			MinMoisture: 0, MaxMoisture: 1,
			MinTemperature: 0, MaxTemperature: 1,
			Curve: CurveRising, Strength: 0.8,
			Rock: true,
		},
		{
			Name:      "snow",
			MinHeight: 0.7, MaxHeight: 1,
			MinSlope: 0, MaxSlope: 0.6,
			MinMoisture: 0, MaxMoisture: 1,
			MinTemperature: 0, MaxTemperature: 0.35,
			Curve: CurveRising, Strength: 1,
		},
	}
}

// Blender converts environmental samples into normalized per-layer weight
// vectors.
type Blender struct {
	layers []LayerDef
	params BlendParams
}

// NewBlender builds a blender over the given layer definitions. An empty
// layer list gets a single catch-all layer so weight vectors are never
// zero-length.
func NewBlender(layers []LayerDef, params BlendParams) *Blender {
	if len(layers) == 0 {
		layers = []LayerDef{{
			Name:      "base",
			MaxHeight: 1, MaxSlope: 1, MaxMoisture: 1, MaxTemperature: 1,
			Curve: CurveLinear, Strength: 1,
		}}
	}
	if params.Sharpness <= 0 {
		params.Sharpness = 1
	}
	return &Blender{layers: append([]LayerDef(nil), layers...), params: params}
}

// Layers returns the layer definitions in scoring order.
func (b *Blender) Layers() []LayerDef { return b.layers }

// LayerCount reports how many layers each weight vector carries.
func (b *Blender) LayerCount() int { return len(b.layers) }

// Weights scores every layer for the sample and writes a normalized
// weight vector into out, which must have LayerCount elements. When every
// raw score is zero the weights fall back to a uniform distribution.
func (b *Blender) Weights(sample Sample, out []float64) {
	if len(out) != len(b.layers) {
		return
	}
	total := 0.0
	for i, layer := range b.layers {
		w := b.score(layer, sample)
		out[i] = w
		total += w
	}
	if total <= 0 {
		uniform := 1 / float64(len(out))
		for i := range out {
			out[i] = uniform
		}
		return
	}
	for i := range out {
		out[i] /= total
	}
}

func (b *Blender) score(layer LayerDef, s Sample) float64 {
	w := layer.Strength
	if w < 0 {
		w = 0
	}

	if s.Height < layer.MinHeight || s.Height > layer.MaxHeight {
		w = 0
	} else if layer.Curve != nil {
		span := layer.MaxHeight - layer.MinHeight
		t := 0.0
		if span > 0 {
			t = (s.Height - layer.MinHeight) / span
		}
		w *= math.Max(layer.Curve(t), 0)
	}

	if s.Slope < layer.MinSlope || s.Slope > layer.MaxSlope {
		w *= outOfRangePenalty
	}
	if s.Moisture < layer.MinMoisture || s.Moisture > layer.MaxMoisture {
		w *= outOfRangePenalty
	}
	if s.Temperature < layer.MinTemperature || s.Temperature > layer.MaxTemperature {
		w *= outOfRangePenalty
	}

	if layer.Rock && s.Slope > b.params.RockSlopeThreshold {
		w += (s.Slope - b.params.RockSlopeThreshold) * math.Max(layer.Strength, 0)
	}

	if w > 0 && b.params.Sharpness != 1 {
		w = math.Pow(w, b.params.Sharpness)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0
	}
	return w
}

// FillRows classifies rows [y0, y1) of the height grid and writes
// normalized weights into wg. Grid and weight grid must share dimensions.
func (b *Blender) FillRows(grid *core.HeightGrid, wg *core.WeightGrid, c *Classifier, y0, y1 int) {
	if grid.W != wg.W || grid.H != wg.H || wg.Layers != len(b.layers) {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > grid.H {
		y1 = grid.H
	}
	for y := y0; y < y1; y++ {
		for x := 0; x < grid.W; x++ {
			b.Weights(c.Sample(grid, x, y), wg.WeightsAt(x, y))
		}
	}
}

// Fill classifies and blends the whole grid.
func (b *Blender) Fill(grid *core.HeightGrid, wg *core.WeightGrid, c *Classifier) {
	b.FillRows(grid, wg, c, 0, grid.H)
}
