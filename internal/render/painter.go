//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"terragen/internal/core"
)

// GridPainter uploads terrain grids into a single reused ebiten image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// BlitHeights draws the height grid with the hypsometric ramp.
func (gp *GridPainter) BlitHeights(dst *ebiten.Image, grid *core.HeightGrid, scale int) {
	if grid == nil || grid.W != gp.w || grid.H != gp.h {
		return
	}
	FillHeightRGBA(gp.buf, grid.Cells())
	gp.flush(dst, scale)
}

// BlitWeights draws the weight grid mixed through the given palette.
func (gp *GridPainter) BlitWeights(dst *ebiten.Image, wg *core.WeightGrid, palette []color.RGBA, scale int) {
	if wg == nil || wg.W != gp.w || wg.H != gp.h {
		return
	}
	FillWeightRGBA(gp.buf, wg, palette)
	gp.flush(dst, scale)
}

func (gp *GridPainter) flush(dst *ebiten.Image, scale int) {
	gp.img.ReplacePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
