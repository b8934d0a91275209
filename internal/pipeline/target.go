package pipeline

import "fmt"

// Target is the terrain object that receives finished grids on commit.
// Implementations belong to the embedding application; the pipeline only
// ever hands them row-major value copies.
type Target interface {
	Resolution() (w, h int)
	LayerCount() int
	// SetHeights receives w*h normalized heights in row-major order.
	SetHeights(values []float64) error
	// SetWeights receives w*h*layers normalized weights, layer-innermost.
	SetWeights(values []float64) error
}

// MemoryTarget is an in-memory Target used by the CLI and tests.
type MemoryTarget struct {
	W, H    int
	Layers  int
	Heights []float64
	Weights []float64
}

// NewMemoryTarget allocates a target with the given dimensions.
func NewMemoryTarget(w, h, layers int) *MemoryTarget {
	return &MemoryTarget{W: w, H: h, Layers: layers}
}

// Resolution returns the target's grid dimensions.
func (t *MemoryTarget) Resolution() (int, int) { return t.W, t.H }

// LayerCount returns the number of texture layers the target stores.
func (t *MemoryTarget) LayerCount() int { return t.Layers }

// SetHeights stores the committed height field.
func (t *MemoryTarget) SetHeights(values []float64) error {
	if len(values) != t.W*t.H {
		return fmt.Errorf("target: got %d heights, want %d", len(values), t.W*t.H)
	}
	t.Heights = values
	return nil
}

// SetWeights stores the committed weight field.
func (t *MemoryTarget) SetWeights(values []float64) error {
	if len(values) != t.W*t.H*t.Layers {
		return fmt.Errorf("target: got %d weights, want %d", len(values), t.W*t.H*t.Layers)
	}
	t.Weights = values
	return nil
}
