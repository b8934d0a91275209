package noise

import (
	"math"

	"terragen/internal/core"
)

// Layer is an immutable configuration for one noise contribution. Layers
// are summed, so ordering only affects inspection output.
type Layer struct {
	Kind        Kind
	Weight      float64
	Frequency   float64
	Amplitude   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	OffsetX     float64
	OffsetY     float64
}

// DefaultLayer returns a single mid-frequency Perlin layer.
func DefaultLayer() Layer {
	return Layer{
		Kind:        KindPerlin,
		Weight:      1,
		Frequency:   0.01,
		Amplitude:   1,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// Falloff selects the radial edge-taper curve applied after layer
// summation.
type Falloff int

const (
	// FalloffNone leaves the summed value untouched.
	FalloffNone Falloff = iota
	// FalloffSmoothEdge tapers smoothly to zero at the grid corners.
	FalloffSmoothEdge
	// FalloffPower drops off with the cube of the normalized distance,
	// keeping a broad flat center (island-style shaping).
	FalloffPower
)

// Evaluate returns the height multiplier for a normalized center distance
// in [0,1].
func (f Falloff) Evaluate(dist float64) float64 {
	dist = core.Clamp01(dist)
	switch f {
	case FalloffSmoothEdge:
		return core.SmoothStep(1 - dist)
	case FalloffPower:
		v := 1 - math.Pow(dist, 3.5)
		if v < 0 {
			v = 0
		}
		return v
	default:
		return 1
	}
}

// Field evaluates a weighted sum of layered octave noise. A Field is
// immutable after construction and safe for concurrent sampling.
type Field struct {
	layers     []Layer
	samplers   []Sampler
	falloff    Falloff
	baseHeight float64
	seed       int64
}

// NewField builds a field for the given seed and layer list. Each layer
// receives a decorrelated seed so stacked layers do not repeat each other.
// Layers with non-positive weight are retained for inspection but skipped
// during evaluation.
func NewField(seed int64, layers []Layer) *Field {
	f := &Field{
		layers:   append([]Layer(nil), layers...),
		samplers: make([]Sampler, len(layers)),
		seed:     seed,
	}
	for i, layer := range f.layers {
		f.samplers[i] = NewSampler(layer.Kind, seed+int64(i))
	}
	return f
}

// SetFalloff selects the radial edge taper.
func (f *Field) SetFalloff(k Falloff) { f.falloff = k }

// SetBaseHeight sets the offset added after falloff is applied.
func (f *Field) SetBaseHeight(b float64) { f.baseHeight = b }

// Seed returns the seed the field was built with.
func (f *Field) Seed() int64 { return f.seed }

// Layers returns a copy of the layer configuration.
func (f *Field) Layers() []Layer { return append([]Layer(nil), f.layers...) }

// At evaluates the weighted layer sum at (x, y) without falloff or base
// height. The result is in [0,1]; with no usable layers it degrades to the
// mid-height constant.
func (f *Field) At(x, y float64) float64 {
	var total, weightSum float64
	for i, layer := range f.layers {
		if layer.Weight <= 0 {
			continue
		}
		total += layer.Weight * f.octaveSum(i, layer, x, y)
		weightSum += layer.Weight
	}
	if weightSum <= 0 {
		return 0.5
	}
	return core.SafeHeight(total / weightSum)
}

// Fill writes the complete field into the grid, applying radial falloff
// from the grid center and the base-height offset.
func (f *Field) Fill(grid *core.HeightGrid) {
	f.FillRows(grid, 0, grid.H)
}

// FillRows writes rows [y0, y1) of the field into the grid. Used by the
// pipeline's step-budgeted execution to bound work per tick.
func (f *Field) FillRows(grid *core.HeightGrid, y0, y1 int) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > grid.H {
		y1 = grid.H
	}
	cx := float64(grid.W-1) * 0.5
	cy := float64(grid.H-1) * 0.5
	// Normalize center distance by the half-diagonal so corners land at 1.
	invRadius := 0.0
	if r := math.Hypot(cx, cy); r > 0 {
		invRadius = 1 / r
	}
	cells := grid.Cells()
	for y := y0; y < y1; y++ {
		for x := 0; x < grid.W; x++ {
			v := f.At(float64(x), float64(y))
			dist := math.Hypot(float64(x)-cx, float64(y)-cy) * invRadius
			v = v*f.falloff.Evaluate(dist) + f.baseHeight
			cells[y*grid.W+x] = core.SafeHeight(v)
		}
	}
}

func (f *Field) octaveSum(idx int, layer Layer, x, y float64) float64 {
	octaves := layer.Octaves
	if octaves < 1 {
		octaves = 1
	}
	amp := layer.Amplitude
	if amp == 0 {
		amp = 1
	}
	freq := layer.Frequency
	persistence := layer.Persistence
	if persistence <= 0 {
		persistence = 0.5
	}
	lacunarity := layer.Lacunarity
	if lacunarity <= 0 {
		lacunarity = 2
	}
	sampler := f.samplers[idx]

	var sum, norm float64
	sx := x + layer.OffsetX
	sy := y + layer.OffsetY
	for o := 0; o < octaves; o++ {
		sum += amp * sampler.Sample(sx*freq, sy*freq)
		norm += math.Abs(amp)
		amp *= persistence
		freq *= lacunarity
	}
	if norm <= 0 {
		return 0.5
	}
	return sum / norm
}
