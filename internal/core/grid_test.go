package core

import (
	"math"
	"testing"
)

func TestHeightGridClampsOnSet(t *testing.T) {
	g := NewHeightGrid(4, 4)
	g.Set(1, 1, 2.5)
	if got := g.At(1, 1); got != 1 {
		t.Fatalf("expected over-range write to clamp to 1, got %v", got)
	}
	g.Set(2, 2, -0.5)
	if got := g.At(2, 2); got != 0 {
		t.Fatalf("expected under-range write to clamp to 0, got %v", got)
	}
	g.Set(3, 3, math.NaN())
	if got := g.At(3, 3); got != 0.5 {
		t.Fatalf("expected NaN write to fall back to 0.5, got %v", got)
	}
}

func TestHeightGridOutOfBoundsAccess(t *testing.T) {
	g := NewHeightGrid(3, 3)
	g.Fill(0.7)
	g.Set(-1, 0, 1)
	g.Set(0, 5, 1)
	if got := g.At(-1, 0); got != 0 {
		t.Fatalf("expected out-of-bounds read to return 0, got %v", got)
	}
	for i, v := range g.Cells() {
		if v != 0.7 {
			t.Fatalf("cell %d mutated by out-of-bounds write: %v", i, v)
		}
	}
}

func TestHeightGridCopyFromRejectsMismatch(t *testing.T) {
	dst := NewHeightGrid(4, 4)
	src := NewHeightGrid(3, 4)
	if dst.CopyFrom(src) {
		t.Fatal("expected CopyFrom to reject mismatched dimensions")
	}
	src = NewHeightGrid(4, 4)
	src.Fill(0.25)
	if !dst.CopyFrom(src) {
		t.Fatal("expected CopyFrom to accept matching dimensions")
	}
	if got := dst.At(2, 2); got != 0.25 {
		t.Fatalf("expected copied value 0.25, got %v", got)
	}
}

func TestWeightGridVectorAccess(t *testing.T) {
	wg := NewWeightGrid(3, 2, 4)
	weights := wg.WeightsAt(2, 1)
	if len(weights) != 4 {
		t.Fatalf("expected 4 weights per cell, got %d", len(weights))
	}
	weights[0] = 1
	if wg.WeightsAt(2, 1)[0] != 1 {
		t.Fatal("expected WeightsAt to return a mutable view")
	}
	if wg.WeightsAt(3, 0) != nil {
		t.Fatal("expected nil for out-of-bounds cell")
	}
}

func TestSafeHeight(t *testing.T) {
	if got := SafeHeight(math.Inf(1)); got != 0.5 {
		t.Fatalf("expected +Inf to map to 0.5, got %v", got)
	}
	if got := SafeHeight(0.3); got != 0.3 {
		t.Fatalf("expected in-range value to pass through, got %v", got)
	}
	if got := SafeHeight(-2); got != 0 {
		t.Fatalf("expected negative value to clamp to 0, got %v", got)
	}
}

func TestSmoothStepEndpoints(t *testing.T) {
	if got := SmoothStep(0); got != 0 {
		t.Fatalf("SmoothStep(0) = %v, want 0", got)
	}
	if got := SmoothStep(1); got != 1 {
		t.Fatalf("SmoothStep(1) = %v, want 1", got)
	}
	if got := SmoothStep(0.5); got != 0.5 {
		t.Fatalf("SmoothStep(0.5) = %v, want 0.5", got)
	}
}
