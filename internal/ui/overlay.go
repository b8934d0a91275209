//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"terragen/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// Overlay draws the parameter panel on top of the terrain view. Tab
// toggles visibility.
type Overlay struct {
	provider parameterProvider
	visible  bool
	pixel    *ebiten.Image
}

// NewOverlay constructs an overlay reading parameters from the provider.
func NewOverlay(provider parameterProvider) *Overlay {
	o := &Overlay{provider: provider}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.RGBA{A: 0xb0})
	return o
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the panel when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.provider == nil {
		return
	}
	snapshot := o.provider.Parameters()

	const lineHeight = 14
	lines := 0
	for _, group := range snapshot.Groups {
		lines += 1 + len(group.Params)
	}
	panelH := lineHeight*lines + 12

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(260, float64(panelH))
	screen.DrawImage(o.pixel, op)

	face := basicfont.Face7x13
	y := 16
	for _, group := range snapshot.Groups {
		header := group.Name
		if group.Summary != "" {
			header += "  (" + group.Summary + ")"
		}
		text.Draw(screen, header, face, 8, y, color.RGBA{R: 0xff, G: 0xd7, B: 0x6e, A: 0xff})
		y += lineHeight
		for _, param := range group.Params {
			text.Draw(screen, "  "+param.Key+" = "+param.Value, face, 8, y, color.White)
			y += lineHeight
		}
	}
}
