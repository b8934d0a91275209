package stamp

import (
	"image"
	"math"

	"github.com/chewxy/math32"
)

// Pattern is a square grayscale height sample source. Values are stored as
// float32 in [0,1]; stamps are read-only at apply time so a Pattern is safe
// to share between operations.
type Pattern struct {
	size int
	data []float32
}

// NewPattern allocates a size×size pattern filled with zeros.
func NewPattern(size int) *Pattern {
	if size <= 0 {
		size = 1
	}
	return &Pattern{size: size, data: make([]float32, size*size)}
}

// NewUniformPattern returns a pattern with every texel set to value.
func NewUniformPattern(size int, value float32) *Pattern {
	p := NewPattern(size)
	for i := range p.data {
		p.data[i] = value
	}
	return p
}

// PatternFromImage converts an image into a square pattern using the
// luminance of each pixel. Non-square images are cropped to the top-left
// square.
func PatternFromImage(img image.Image) *Pattern {
	bounds := img.Bounds()
	size := bounds.Dx()
	if bounds.Dy() < size {
		size = bounds.Dy()
	}
	p := NewPattern(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Rec. 601 luma over 16-bit channels.
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			p.data[y*size+x] = float32(lum / 65535)
		}
	}
	return p
}

// Size returns the pattern's edge length in texels.
func (p *Pattern) Size() int { return p.size }

// Texels exposes the backing slice for direct population.
func (p *Pattern) Texels() []float32 { return p.data }

// Bilinear samples the pattern at normalized UV coordinates. Coordinates
// outside [0,1] are clamped to the edge texels.
func (p *Pattern) Bilinear(u, v float32) float32 {
	if p.size == 1 {
		return p.data[0]
	}
	fx := clamp32(u, 0, 1) * float32(p.size-1)
	fy := clamp32(v, 0, 1) * float32(p.size-1)
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= p.size {
		x1 = p.size - 1
	}
	if y1 >= p.size {
		y1 = p.size - 1
	}
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	top := lerp32(p.data[y0*p.size+x0], p.data[y0*p.size+x1], tx)
	bottom := lerp32(p.data[y1*p.size+x0], p.data[y1*p.size+x1], tx)
	return lerp32(top, bottom, ty)
}

// BilinearRotated samples the pattern after rotating the UV around the
// pattern center by the given angle in degrees.
func (p *Pattern) BilinearRotated(u, v, degrees float32) float32 {
	if degrees == 0 {
		return p.Bilinear(u, v)
	}
	rad := degrees * (math.Pi / 180)
	sin, cos := math32.Sincos(rad)
	du := u - 0.5
	dv := v - 0.5
	ru := du*cos - dv*sin + 0.5
	rv := du*sin + dv*cos + 0.5
	return p.Bilinear(ru, rv)
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp32(a, b, t float32) float32 { return a + (b-a)*t }
