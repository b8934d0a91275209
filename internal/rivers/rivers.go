// Package rivers finds high-elevation source cells and carves descending
// channels along steepest-descent paths.
package rivers

import "terragen/internal/core"

// Params tunes river carving. MinSourceHeight is a fraction of the grid's
// observed height range, not an absolute height; it is deliberately a
// runtime parameter rather than a constant.
type Params struct {
	MaxSourceAttempts int
	MinSourceHeight   float64
	MinPathLength     int
	ChannelDepth      float64
	// WidthTaper scales how quickly the channel deepens downstream:
	// 0 carves a constant-depth channel, 1 starts at quarter depth and
	// reaches full depth at the river mouth.
	WidthTaper float64
	Seed       int64
}

// DefaultParams returns a configuration that produces a few medium rivers
// on a 512-class grid.
func DefaultParams() Params {
	return Params{
		MaxSourceAttempts: 64,
		MinSourceHeight:   0.4,
		MinPathLength:     12,
		ChannelDepth:      0.05,
		WidthTaper:        0.6,
		Seed:              1,
	}
}

// Carver traces and carves river channels on a height grid.
type Carver struct {
	params Params
	rng    *core.RNG
}

// NewCarver builds a carver with its own deterministic RNG.
func NewCarver(params Params) *Carver {
	return &Carver{params: params, rng: core.NewRNG(params.Seed)}
}

// Carve searches for viable sources and carves one channel per accepted
// source. It returns the number of rivers carved; zero sources leave the
// grid untouched and the caller may retry with relaxed thresholds.
// Carving only ever lowers cells.
func (c *Carver) Carve(grid *core.HeightGrid) int {
	w, h := grid.W, grid.H
	if w < 3 || h < 3 {
		return 0
	}
	threshold := c.sourceThreshold(grid)
	carved := 0
	for attempt := 0; attempt < c.params.MaxSourceAttempts; attempt++ {
		x := c.rng.IntN(w)
		y := c.rng.IntN(h)
		if !c.isSource(grid, x, y, threshold) {
			continue
		}
		path := tracePath(grid, x, y)
		if len(path) < c.params.MinPathLength {
			continue
		}
		c.carvePath(grid, path)
		carved++
	}
	return carved
}

// sourceThreshold converts the configured range fraction into an absolute
// height for this grid.
func (c *Carver) sourceThreshold(grid *core.HeightGrid) float64 {
	cells := grid.Cells()
	min, max := cells[0], cells[0]
	for _, v := range cells {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min + core.Clamp01(c.params.MinSourceHeight)*(max-min)
}

// isSource accepts cells above the threshold that are local maxima of
// their 8-neighborhood.
func (c *Carver) isSource(grid *core.HeightGrid, x, y int, threshold float64) bool {
	height := grid.At(x, y)
	if height < threshold {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !grid.In(nx, ny) {
				continue
			}
			if grid.At(nx, ny) > height {
				return false
			}
		}
	}
	return true
}

// tracePath walks downhill to the lowest 8-connected neighbor until a
// local minimum or the grid edge stops it.
func tracePath(grid *core.HeightGrid, x, y int) []int {
	w := grid.W
	path := []int{y*w + x}
	maxSteps := grid.W * grid.H
	for step := 0; step < maxSteps; step++ {
		height := grid.At(x, y)
		bestX, bestY := x, y
		best := height
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if !grid.In(nx, ny) {
					continue
				}
				if v := grid.At(nx, ny); v < best {
					best = v
					bestX, bestY = nx, ny
				}
			}
		}
		if bestX == x && bestY == y {
			break // local minimum
		}
		x, y = bestX, bestY
		path = append(path, y*w+x)
	}
	return path
}

// carvePath lowers every path cell by a depth that grows downstream,
// clamping so channel heights stay monotonically non-increasing along the
// path.
func (c *Carver) carvePath(grid *core.HeightGrid, path []int) {
	cells := grid.Cells()
	taper := core.Clamp01(c.params.WidthTaper)
	prev := 2.0 // above any valid height
	n := len(path)
	for i, idx := range path {
		progress := 0.0
		if n > 1 {
			progress = float64(i) / float64(n-1)
		}
		depth := c.params.ChannelDepth * ((1 - taper) + taper*(0.25+0.75*progress))
		target := cells[idx] - depth
		if target > prev {
			target = prev
		}
		if target > cells[idx] {
			target = cells[idx]
		}
		target = core.SafeHeight(target)
		cells[idx] = target
		prev = target
	}
}
