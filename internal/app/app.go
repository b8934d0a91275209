//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"terragen/internal/pipeline"
	"terragen/internal/render"
	"terragen/internal/ui"
)

// Game adapts a terrain pipeline to the ebiten.Game interface. Generation
// advances incrementally each frame so the window stays responsive while
// the terrain fills in.
type Game struct {
	pipe    *pipeline.Pipeline
	painter *render.GridPainter
	overlay *ui.Overlay

	scale       int
	paused      bool
	tickOnce    bool
	showWeights bool
	seed        int64
}

// New constructs a Game for the provided pipeline.
func New(pipe *pipeline.Pipeline, scale int, seed int64) *Game {
	cfg := pipe.Config()
	return &Game{
		pipe:    pipe,
		painter: render.NewGridPainter(cfg.Width, cfg.Height),
		overlay: ui.NewOverlay(pipe),
		scale:   scale,
		seed:    seed,
	}
}

// Reset starts a fresh generation run with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.pipe.Cancel()
	if err := g.pipe.Start(seed); err != nil {
		return
	}
	g.tickOnce = false
}

// Update handles per-frame input and advances the pipeline.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.showWeights = !g.showWeights
	}

	g.overlay.Update()

	if g.pipe.Running() && (!g.paused || g.tickOnce) {
		g.pipe.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current terrain state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.showWeights && g.pipe.Done() {
		wg := g.pipe.Weights()
		g.painter.BlitWeights(screen, wg, render.LayerPalette(wg.Layers), g.scale)
	} else if heights := g.pipe.Heights(); heights != nil {
		g.painter.BlitHeights(screen, heights, g.scale)
	}
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.pipe.Config()
	return cfg.Width * g.scale, cfg.Height * g.scale
}
