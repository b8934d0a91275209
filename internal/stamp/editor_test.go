package stamp

import (
	"math"
	"slices"
	"testing"

	"terragen/internal/core"
)

func flatGrid(w, h int, v float64) *core.HeightGrid {
	g := core.NewHeightGrid(w, h)
	g.Fill(v)
	return g
}

func TestApplyOnlyTouchesDisc(t *testing.T) {
	grid := flatGrid(32, 32, 0.4)
	editor := NewEditor(32, 100, nil)
	s := Stamp{
		Name:        "hill",
		Pattern:     NewUniformPattern(8, 1),
		HeightScale: 20,
	}
	op := Op{X: 16, Z: 16, Size: 12, Strength: 1, Blend: BlendAdd}
	if err := editor.Apply(grid, s, op); err != nil {
		t.Fatalf("apply: %v", err)
	}

	radius := op.Size / 2
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			dist := math.Hypot(float64(x)-op.X, float64(y)-op.Z)
			v := grid.At(x, y)
			if dist > radius && v != 0.4 {
				t.Fatalf("cell (%d,%d) outside radius changed to %v", x, y, v)
			}
		}
	}
	if center := grid.At(16, 16); center <= 0.4 {
		t.Fatalf("expected additive stamp to raise the center, got %v", center)
	}
}

func TestApplyZeroStrengthIsNoOp(t *testing.T) {
	grid := flatGrid(16, 16, 0.5)
	before := slices.Clone(grid.Cells())

	history := NewHistory()
	editor := NewEditor(16, 100, history)
	s := Stamp{Name: "spike", Pattern: NewUniformPattern(4, 1), HeightScale: 50}
	if err := editor.Apply(grid, s, Op{X: 8, Z: 8, Size: 8, Strength: 0}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if !slices.Equal(before, grid.Cells()) {
		t.Fatal("zero-strength application modified the grid")
	}
	if history.Len() != 1 {
		t.Fatalf("expected the no-op application to still be recorded, history has %d entries", history.Len())
	}
}

func TestApplySetBlendConverges(t *testing.T) {
	grid := flatGrid(16, 16, 0.9)
	editor := NewEditor(16, 100, nil)
	// Uniform pattern at full value: sample = (0 + 1*50)/100 = 0.5.
	s := Stamp{Name: "plateau", Pattern: NewUniformPattern(4, 1), HeightScale: 50}
	op := Op{X: 8, Z: 8, Size: 10, Strength: 1, Blend: BlendSet}
	if err := editor.Apply(grid, s, op); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if center := grid.At(8, 8); math.Abs(center-0.5) > 1e-9 {
		t.Fatalf("expected full-strength set to pin the center at 0.5, got %v", center)
	}
	// Partway out the falloff leaves values between original and sample.
	edge := grid.At(8+4, 8)
	if edge <= 0.5 || edge >= 0.9 {
		t.Fatalf("expected blended edge between 0.5 and 0.9, got %v", edge)
	}
}

func TestApplySubtractLowersWithinRange(t *testing.T) {
	grid := flatGrid(16, 16, 0.2)
	editor := NewEditor(16, 100, nil)
	s := Stamp{Name: "crater", Pattern: NewUniformPattern(4, 1), HeightScale: 60}
	if err := editor.Apply(grid, s, Op{X: 8, Z: 8, Size: 10, Strength: 1, Blend: BlendSubtract}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	for i, v := range grid.Cells() {
		if v < 0 || v > 0.2 {
			t.Fatalf("cell %d left valid range after subtract: %v", i, v)
		}
	}
	if center := grid.At(8, 8); center != 0 {
		t.Fatalf("expected deep subtract to clamp the center at 0, got %v", center)
	}
}

func TestApplyNilPatternRecordsOnly(t *testing.T) {
	grid := flatGrid(8, 8, 0.3)
	before := slices.Clone(grid.Cells())
	history := NewHistory()
	editor := NewEditor(8, 100, history)
	if err := editor.Apply(grid, Stamp{Name: "ghost"}, Op{X: 4, Z: 4, Size: 4, Strength: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !slices.Equal(before, grid.Cells()) {
		t.Fatal("pattern-less stamp modified the grid")
	}
	if history.Len() != 1 {
		t.Fatalf("expected 1 recorded operation, got %d", history.Len())
	}
}

func TestApplyNilGrid(t *testing.T) {
	editor := NewEditor(8, 100, nil)
	err := editor.Apply(nil, Stamp{Name: "x"}, Op{})
	if err != ErrNilGrid {
		t.Fatalf("expected ErrNilGrid, got %v", err)
	}
}

func TestApplySizeClampedToStampBounds(t *testing.T) {
	grid := flatGrid(64, 64, 0.4)
	editor := NewEditor(64, 100, nil)
	s := Stamp{
		Name:        "mesa",
		Pattern:     NewUniformPattern(4, 1),
		HeightScale: 30,
		MinSize:     16,
		MaxSize:     24,
	}
	// Requested size far below MinSize; the clamped radius is 8.
	if err := editor.Apply(grid, s, Op{X: 32, Z: 32, Size: 2, Strength: 1, Blend: BlendAdd}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if v := grid.At(32+6, 32); v <= 0.4 {
		t.Fatalf("expected cell inside clamped radius to rise, got %v", v)
	}
	if v := grid.At(32+13, 32); v != 0.4 {
		t.Fatalf("expected cell outside clamped radius unchanged, got %v", v)
	}
}
