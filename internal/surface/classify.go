package surface

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"terragen/internal/core"
)

// Sample is the per-cell tuple of environmental scalars, each normalized
// to [0,1]. Samples are computed on demand and never persisted.
type Sample struct {
	Height      float64
	Slope       float64
	Moisture    float64
	Temperature float64
}

const (
	moistureNoiseFreq = 0.02
	tempNoiseFreq     = 0.005
)

// Classifier derives environmental samples from a height grid and biome
// parameters. It is a pure function of its inputs: the same seed, biome
// and grid always produce the same samples.
type Classifier struct {
	biome      Biome
	slopeScale float64
	moistNoise opensimplex.Noise
	tempNoise  opensimplex.Noise
}

// NewClassifier creates a classifier. slopeScale is the vertical
// exaggeration applied to the normalized height gradient before the atan
// normalization; pass 0 for the default.
func NewClassifier(seed int64, biome Biome, slopeScale float64) *Classifier {
	if slopeScale <= 0 {
		slopeScale = 50
	}
	return &Classifier{
		biome:      biome,
		slopeScale: slopeScale,
		moistNoise: opensimplex.NewNormalized(seed + 11),
		tempNoise:  opensimplex.NewNormalized(seed + 23),
	}
}

// Biome returns the classifier's biome preset.
func (c *Classifier) Biome() Biome { return c.biome }

// Sample computes the environmental tuple for cell (x, y).
func (c *Classifier) Sample(grid *core.HeightGrid, x, y int) Sample {
	height := grid.At(x, y)
	slope := c.slopeAt(grid, x, y)

	fx, fy := float64(x), float64(y)
	moistNoise := c.moistNoise.Eval2(fx*moistureNoiseFreq, fy*moistureNoiseFreq)
	moisture := core.Clamp01((1 - height + moistNoise*0.3) * c.biome.MoistureFactor())

	// Latitude term: 1 at mid-grid, 0 at top/bottom edges.
	latitude := 1.0
	if grid.H > 1 {
		mid := float64(grid.H-1) * 0.5
		latitude = 1 - math.Abs(fy-mid)/mid
	}
	tempNoise := c.tempNoise.Eval2(fx*tempNoiseFreq, fy*tempNoiseFreq)
	temperature := (0.5*(1-height) + 0.3*latitude + 0.2*tempNoise) * c.biome.TemperatureFactor()

	return Sample{
		Height:      height,
		Slope:       slope,
		Moisture:    moisture,
		Temperature: core.Clamp01(temperature),
	}
}

// slopeAt computes the central-difference gradient magnitude at (x, y),
// normalized into [0,1] via atan. Edge cells fall back to one-sided
// differences.
func (c *Classifier) slopeAt(grid *core.HeightGrid, x, y int) float64 {
	gx := halfDiff(grid, x-1, y, x+1, y)
	gy := halfDiff(grid, x, y-1, x, y+1)
	mag := math.Hypot(gx, gy) * c.slopeScale
	return math.Atan(mag) / (math.Pi / 2)
}

func halfDiff(grid *core.HeightGrid, x0, y0, x1, y1 int) float64 {
	span := 2.0
	if !grid.In(x0, y0) {
		x0, y0 = clampCoord(grid, x0, y0)
		span = 1
	}
	if !grid.In(x1, y1) {
		x1, y1 = clampCoord(grid, x1, y1)
		span = 1
	}
	if span == 0 {
		return 0
	}
	return (grid.At(x1, y1) - grid.At(x0, y0)) / span
}

func clampCoord(grid *core.HeightGrid, x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if x >= grid.W {
		x = grid.W - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= grid.H {
		y = grid.H - 1
	}
	return x, y
}
