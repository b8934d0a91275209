package core

import "math"

// Size describes the dimensions of a terrain grid.
type Size struct {
	W int
	H int
}

// HeightGrid stores a 2D field of normalized [0,1] elevation samples in
// row-major order. The grid owns its buffer and is never resized after
// construction; stages mutate it in place through bounds-checked accessors
// or the raw Cells slice in hot loops.
type HeightGrid struct {
	W, H int
	data []float64
}

// NewHeightGrid allocates a grid with the given dimensions.
func NewHeightGrid(w, h int) *HeightGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &HeightGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so stages can read/write values directly.
// Callers writing through Cells are responsible for keeping values in [0,1].
func (g *HeightGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *HeightGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *HeightGrid) In(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the height at (x, y), or 0 for out-of-bounds coordinates.
func (g *HeightGrid) At(x, y int) float64 {
	if !g.In(x, y) {
		return 0
	}
	return g.data[y*g.W+x]
}

// Set writes a height value at (x, y), clamping to [0,1]. NaN values are
// replaced with the mid-height fallback so degenerate math never poisons
// the grid. Out-of-bounds writes are ignored.
func (g *HeightGrid) Set(x, y int, v float64) {
	if !g.In(x, y) {
		return
	}
	g.data[y*g.W+x] = SafeHeight(v)
}

// Fill sets every cell to the provided value (clamped).
func (g *HeightGrid) Fill(v float64) {
	v = SafeHeight(v)
	for i := range g.data {
		g.data[i] = v
	}
}

// Clamp re-applies the [0,1] range invariant across the whole grid.
func (g *HeightGrid) Clamp() {
	for i, v := range g.data {
		g.data[i] = SafeHeight(v)
	}
}

// Clone returns an independent copy of the grid.
func (g *HeightGrid) Clone() *HeightGrid {
	c := &HeightGrid{W: g.W, H: g.H, data: make([]float64, len(g.data))}
	copy(c.data, g.data)
	return c
}

// CopyFrom copies cell values from src. Grids of mismatched dimensions are
// rejected so stages that disagree on resolution fail loudly instead of
// writing out of range.
func (g *HeightGrid) CopyFrom(src *HeightGrid) bool {
	if src == nil || src.W != g.W || src.H != g.H {
		return false
	}
	copy(g.data, src.data)
	return true
}

// WeightGrid stores a per-cell vector of texture-layer blend weights in
// row-major order. For every cell the layer weights sum to 1 once the
// blender has run; the grid itself does not enforce that invariant.
type WeightGrid struct {
	W, H   int
	Layers int
	data   []float64
}

// NewWeightGrid allocates a weight grid for w*h cells and the given layer
// count.
func NewWeightGrid(w, h, layers int) *WeightGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if layers <= 0 {
		layers = 1
	}
	return &WeightGrid{W: w, H: h, Layers: layers, data: make([]float64, w*h*layers)}
}

// Cells exposes the backing slice.
func (g *WeightGrid) Cells() []float64 { return g.data }

// WeightsAt returns the mutable weight vector for cell (x, y), or nil for
// out-of-bounds coordinates.
func (g *WeightGrid) WeightsAt(x, y int) []float64 {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return nil
	}
	base := (y*g.W + x) * g.Layers
	return g.data[base : base+g.Layers]
}

// SafeHeight clamps v to [0,1], substituting the mid-height fallback for
// NaN and infinities.
func SafeHeight(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.5
	}
	return Clamp01(v)
}

// Clamp01 clamps v to the [0,1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// SmoothStep applies the cubic 3t²−2t³ easing to t in [0,1].
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}
