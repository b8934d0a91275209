package stamp

import (
	"errors"
	"math"

	"terragen/internal/core"
)

// ErrNilGrid is reported when an application targets a missing grid.
var ErrNilGrid = errors.New("stamp: nil height grid")

// Op describes one requested stamp application in world coordinates.
type Op struct {
	X        float64 // world position of the stamp center
	Z        float64
	Size     float64 // world diameter of the affected disc
	Strength float64
	Rotation float64 // degrees
	Blend    BlendMode
}

// Editor applies stamps onto a height grid. World coordinates are mapped
// to grid cells through the terrain's physical size, and stamp heights are
// normalized through its maximum height.
type Editor struct {
	worldSize float64 // world units per grid side
	maxHeight float64 // world units at grid value 1.0
	history   *History
}

// NewEditor creates an editor for a terrain with the given physical
// dimensions. The history may be nil when auditing is not wanted.
func NewEditor(worldSize, maxHeight float64, history *History) *Editor {
	if worldSize <= 0 {
		worldSize = 1
	}
	if maxHeight <= 0 {
		maxHeight = 1
	}
	return &Editor{worldSize: worldSize, maxHeight: maxHeight, history: history}
}

// Apply blends the stamp into the grid at the operation's position. Cells
// strictly outside the stamp's circular radius are never touched. A stamp
// without a pattern contributes nothing but the operation is still
// recorded for auditing. The caller serializes overlapping applications;
// Apply itself never runs concurrently with another mutation of the grid.
func (e *Editor) Apply(grid *core.HeightGrid, s Stamp, op Op) error {
	if grid == nil {
		return ErrNilGrid
	}
	if e.history != nil {
		e.history.Record(s.Name, op)
	}
	if s.Pattern == nil || op.Strength == 0 || op.Size <= 0 {
		return nil
	}

	size := op.Size
	if s.MaxSize > 0 {
		if size < s.MinSize {
			size = s.MinSize
		}
		if size > s.MaxSize {
			size = s.MaxSize
		}
	}

	scale := float64(grid.W) / e.worldSize
	centerX := op.X * scale
	centerZ := op.Z * scale
	radius := size * 0.5 * scale
	if radius <= 0 {
		return nil
	}

	minX := int(math.Floor(centerX - radius))
	maxX := int(math.Ceil(centerX + radius))
	minZ := int(math.Floor(centerZ - radius))
	maxZ := int(math.Ceil(centerZ + radius))
	if minX < 0 {
		minX = 0
	}
	if minZ < 0 {
		minZ = 0
	}
	if maxX >= grid.W {
		maxX = grid.W - 1
	}
	if maxZ >= grid.H {
		maxZ = grid.H - 1
	}

	rotation := float32(op.Rotation)
	cells := grid.Cells()
	for z := minZ; z <= maxZ; z++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - centerX
			dz := float64(z) - centerZ
			dist := math.Hypot(dx, dz)
			if dist > radius {
				continue
			}

			u := float32(0.5 + 0.5*dx/radius)
			v := float32(0.5 + 0.5*dz/radius)
			gray := float64(s.Pattern.BilinearRotated(u, v, rotation))

			// World units, then back into the grid's normalized range.
			sample := (s.BaseHeight + gray*s.HeightScale) / e.maxHeight

			falloff := core.SmoothStep(1 - dist/radius)
			k := op.Strength * falloff

			idx := z*grid.W + x
			cells[idx] = core.SafeHeight(blend(op.Blend, cells[idx], sample, k))
		}
	}
	return nil
}

func blend(mode BlendMode, original, sample, k float64) float64 {
	switch mode {
	case BlendSubtract:
		return original - sample*k
	case BlendMultiply:
		return core.Lerp(original, original*sample, k)
	case BlendSet:
		return core.Lerp(original, sample, k)
	case BlendMax:
		// Biases toward raising terrain, good for peaks.
		return core.Lerp(original, math.Max(original, original+sample*k), k)
	case BlendMin:
		return core.Lerp(original, math.Min(original, sample), k)
	default: // BlendAdd
		return original + sample*k
	}
}
