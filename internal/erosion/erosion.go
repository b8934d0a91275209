// Package erosion relaxes a height field by moving material from cells to
// their lower neighbors, approximating hydraulic/thermal transport.
package erosion

import "terragen/internal/core"

// Geology holds the tunables for one erosion run. It is immutable for the
// duration of the run.
type Geology struct {
	Iterations   int
	Strength     float64
	RockHardness float64
	Resistance   float64
	// Talus is the minimum per-cell gradient that triggers transport;
	// near-flat terrain is left alone.
	Talus float64
}

// DefaultGeology returns a moderate erosion configuration.
func DefaultGeology() Geology {
	return Geology{
		Iterations:   30,
		Strength:     0.3,
		RockHardness: 1,
		Resistance:   0.2,
		Talus:        0.0005,
	}
}

// Simulator applies iterative erosion passes to a height grid. Each pass
// reads a snapshot and accumulates deltas before applying them, so results
// are independent of cell visit order. Scratch buffers are reused between
// passes.
type Simulator struct {
	geo      Geology
	snapshot []float64
	deltas   []float64
}

// NewSimulator builds a simulator for the given geology settings.
func NewSimulator(geo Geology) *Simulator {
	return &Simulator{geo: geo}
}

// Geology returns the settings the simulator was built with.
func (s *Simulator) Geology() Geology { return s.geo }

// Apply runs the configured number of passes. Zero iterations is a no-op.
func (s *Simulator) Apply(grid *core.HeightGrid) {
	for i := 0; i < s.geo.Iterations; i++ {
		s.Pass(grid)
	}
}

// Pass runs a single erosion pass. Boundary cells are non-draining: no
// material is transported off-grid.
func (s *Simulator) Pass(grid *core.HeightGrid) {
	w, h := grid.W, grid.H
	total := w * h
	if total == 0 {
		return
	}
	rate := s.rate()
	if rate <= 0 {
		return
	}
	if len(s.snapshot) != total {
		s.snapshot = make([]float64, total)
		s.deltas = make([]float64, total)
	}
	cells := grid.Cells()
	copy(s.snapshot, cells)
	for i := range s.deltas {
		s.deltas[i] = 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			height := s.snapshot[idx]
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					nIdx := ny*w + nx
					diff := height - s.snapshot[nIdx]
					if diff <= s.geo.Talus {
						continue
					}
					dist := 1.0
					if dx != 0 && dy != 0 {
						dist = sqrt2
					}
					// Move toward equilibrium; /2 targets the midpoint,
					// /8 spreads the budget across the neighborhood.
					transfer := (diff / 2) * rate / (8 * dist)
					s.deltas[idx] -= transfer
					s.deltas[nIdx] += transfer
				}
			}
		}
	}

	for i := 0; i < total; i++ {
		cells[i] = core.SafeHeight(s.snapshot[i] + s.deltas[i])
	}
}

// rate folds strength, resistance and hardness into one transport factor.
func (s *Simulator) rate() float64 {
	hardness := s.geo.RockHardness
	if hardness < 0.01 {
		hardness = 0.01
	}
	resistance := core.Clamp01(s.geo.Resistance)
	rate := s.geo.Strength * (1 - resistance) / hardness
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

const sqrt2 = 1.4142135623730951
