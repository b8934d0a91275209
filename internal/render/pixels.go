// Package render converts terrain grids into RGBA pixel buffers for the
// preview window and PNG export.
package render

import (
	"image/color"

	hsluv "github.com/hsluv/hsluv-go"

	"terragen/internal/core"
)

// Hypsometric bands, in normalized height.
const (
	seaLevel   = 0.30
	shoreLevel = 0.36
	grassLevel = 0.62
	rockLevel  = 0.82
)

// HeightColor maps a normalized height to a hypsometric tint: deep blues
// under sea level, sand at the shore, green midlands, gray rock, white
// peaks.
func HeightColor(v float64) color.RGBA {
	v = core.Clamp01(v)
	var hue, sat, light float64
	switch {
	case v < seaLevel:
		t := v / seaLevel
		hue, sat, light = 250, 80, 15+30*t
	case v < shoreLevel:
		t := (v - seaLevel) / (shoreLevel - seaLevel)
		hue, sat, light = 70, 45, 65+8*t
	case v < grassLevel:
		t := (v - shoreLevel) / (grassLevel - shoreLevel)
		hue, sat, light = 120, 55, 50-14*t
	case v < rockLevel:
		t := (v - grassLevel) / (rockLevel - grassLevel)
		hue, sat, light = 80, 12, 38+22*t
	default:
		t := (v - rockLevel) / (1 - rockLevel)
		hue, sat, light = 240, 4, 82+16*t
	}
	r, g, b := hsluv.HsluvToRGB(hue, sat, light)
	return color.RGBA{
		R: uint8(r * 0xff),
		G: uint8(g * 0xff),
		B: uint8(b * 0xff),
		A: 0xff,
	}
}

// FillHeightRGBA converts height cells into RGBA pixels in buf, which must
// hold 4 bytes per cell.
func FillHeightRGBA(buf []byte, cells []float64) {
	if len(buf) < 4*len(cells) {
		return
	}
	for i, v := range cells {
		c := HeightColor(v)
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// LayerPalette builds n distinct layer colors by stepping the hue wheel.
func LayerPalette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		r, g, b := hsluv.HsluvToRGB(float64(i)*360/float64(n)+20, 70, 55)
		out[i] = color.RGBA{
			R: uint8(r * 0xff),
			G: uint8(g * 0xff),
			B: uint8(b * 0xff),
			A: 0xff,
		}
	}
	return out
}

// FillWeightRGBA paints each cell with its layers' palette colors mixed by
// weight. The palette must have one entry per layer; short palettes clear
// the buffer to transparent black.
func FillWeightRGBA(buf []byte, wg *core.WeightGrid, palette []color.RGBA) {
	total := wg.W * wg.H
	if len(buf) < 4*total {
		return
	}
	if len(palette) < wg.Layers {
		for i := 0; i < 4*total; i++ {
			buf[i] = 0
		}
		return
	}
	cells := wg.Cells()
	for i := 0; i < total; i++ {
		weights := cells[i*wg.Layers : (i+1)*wg.Layers]
		var r, g, b float64
		for l, w := range weights {
			c := palette[l]
			r += w * float64(c.R)
			g += w * float64(c.G)
			b += w * float64(c.B)
		}
		base := i * 4
		buf[base+0] = clampByte(r)
		buf[base+1] = clampByte(g)
		buf[base+2] = clampByte(b)
		buf[base+3] = 0xff
	}
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
