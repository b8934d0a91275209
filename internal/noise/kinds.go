package noise

import (
	"math"
	"sort"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Kind identifies a noise basis function.
type Kind string

const (
	KindPerlin   Kind = "perlin"
	KindSimplex  Kind = "simplex"
	KindRidged   Kind = "ridged"
	KindCellular Kind = "cellular"
	KindVoronoi  Kind = "voronoi"
	KindValue    Kind = "value"
)

// Sampler produces a normalized [0,1] noise value for a 2D coordinate.
// Samplers are deterministic for a given seed and safe for concurrent reads
// once constructed.
type Sampler interface {
	Sample(x, y float64) float64
}

// Factory constructs a Sampler from a seed.
type Factory func(seed int64) Sampler

var kinds = map[Kind]Factory{}

// RegisterKind adds a sampler factory under the provided kind name.
func RegisterKind(kind Kind, f Factory) {
	if kind == "" || f == nil {
		return
	}
	kinds[kind] = f
}

// Kinds returns the registered kind names in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewSampler builds a sampler for the given kind. Unknown kinds fall back
// to Perlin so a malformed layer degrades instead of crashing a run.
func NewSampler(kind Kind, seed int64) Sampler {
	f, ok := kinds[kind]
	if !ok {
		f = kinds[KindPerlin]
	}
	return f(seed)
}

func init() {
	RegisterKind(KindPerlin, func(seed int64) Sampler {
		return &perlinSampler{p: perlin.NewPerlin(2, 2, 3, seed)}
	})
	RegisterKind(KindSimplex, func(seed int64) Sampler {
		return &simplexSampler{n: opensimplex.NewNormalized(seed)}
	})
	RegisterKind(KindRidged, func(seed int64) Sampler {
		return &ridgedSampler{inner: &perlinSampler{p: perlin.NewPerlin(2, 2, 3, seed)}}
	})
	RegisterKind(KindCellular, func(seed int64) Sampler {
		return &cellSampler{seed: seed}
	})
	RegisterKind(KindVoronoi, func(seed int64) Sampler {
		return &cellSampler{seed: seed, voronoi: true}
	})
	RegisterKind(KindValue, func(seed int64) Sampler {
		return &valueSampler{seed: seed}
	})
}

type perlinSampler struct {
	p *perlin.Perlin
}

func (s *perlinSampler) Sample(x, y float64) float64 {
	// Noise2D is in [-1,1]; remap to [0,1].
	return clampUnit((s.p.Noise2D(x, y) + 1) * 0.5)
}

type simplexSampler struct {
	n opensimplex.Noise
}

func (s *simplexSampler) Sample(x, y float64) float64 {
	return clampUnit(s.n.Eval2(x, y))
}

// ridgedSampler inverts the distance from mid-value, producing sharp
// ridgelines where the base noise crosses 0.5.
type ridgedSampler struct {
	inner Sampler
}

func (s *ridgedSampler) Sample(x, y float64) float64 {
	n := s.inner.Sample(x, y)
	return clampUnit(1 - math.Abs(2*n-1))
}

// cellSampler partitions space into a unit grid of jittered feature points.
// In cellular mode it returns the distance to the nearest point; in voronoi
// mode it returns the hashed value associated with that point. Jitter is
// derived purely from cell coordinates and the seed, so no permutation
// state is needed.
type cellSampler struct {
	seed    int64
	voronoi bool
}

func (s *cellSampler) Sample(x, y float64) float64 {
	ix := int64(math.Floor(x))
	iy := int64(math.Floor(y))

	best := math.MaxFloat64
	var bestHash uint64
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			cx := ix + dx
			cy := iy + dy
			h := cellHash(cx, cy, s.seed)
			px := float64(cx) + hashUnit(h)
			py := float64(cy) + hashUnit(h>>21)
			ddx := x - px
			ddy := y - py
			d := ddx*ddx + ddy*ddy
			if d < best {
				best = d
				bestHash = h
			}
		}
	}
	if s.voronoi {
		return hashUnit(bestHash >> 7)
	}
	return clampUnit(math.Sqrt(best))
}

// valueSampler interpolates hashed lattice-corner values with smoothstep
// easing. Blockier than gradient noise but cheap, useful as a coarse base
// layer.
type valueSampler struct {
	seed int64
}

func (s *valueSampler) Sample(x, y float64) float64 {
	ix := int64(math.Floor(x))
	iy := int64(math.Floor(y))
	fx := x - float64(ix)
	fy := y - float64(iy)
	tx := fx * fx * (3 - 2*fx)
	ty := fy * fy * (3 - 2*fy)

	c00 := hashUnit(cellHash(ix, iy, s.seed))
	c10 := hashUnit(cellHash(ix+1, iy, s.seed))
	c01 := hashUnit(cellHash(ix, iy+1, s.seed))
	c11 := hashUnit(cellHash(ix+1, iy+1, s.seed))

	top := c00 + (c10-c00)*tx
	bottom := c01 + (c11-c01)*tx
	return clampUnit(top + (bottom-top)*ty)
}

// cellHash mixes cell coordinates and the seed into a well-distributed
// 64-bit value (splitmix64 finalizer).
func cellHash(cx, cy, seed int64) uint64 {
	h := uint64(cx)*0x9E3779B97F4A7C15 ^ uint64(cy)*0xC2B2AE3D27D4EB4F ^ uint64(seed)
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return h
}

// hashUnit folds a hash into [0,1).
func hashUnit(h uint64) float64 {
	return float64(h&0x1FFFFF) / float64(0x200000)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
