// Package pipeline sequences the terrain stages (noise, stamps, erosion,
// rivers, surface classification) over shared grids, with optional
// step-budgeted execution and an injectable compute collaborator.
package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"terragen/internal/core"
	"terragen/internal/erosion"
	"terragen/internal/noise"
	"terragen/internal/rivers"
	"terragen/internal/stamp"
	"terragen/internal/surface"
)

var (
	// ErrRunInFlight is reported when Start or ApplyStamp collides with a
	// generation run that is still advancing.
	ErrRunInFlight = errors.New("pipeline: generation already in flight")
	// ErrNotStarted is reported when Step or Commit is called before any
	// run has produced grids.
	ErrNotStarted = errors.New("pipeline: no generation started")
	// ErrNoTarget is reported when Commit is handed a nil target.
	ErrNoTarget = errors.New("pipeline: nil commit target")
)

type stage int

const (
	stageIdle stage = iota
	stageNoise
	stageStamps
	stageErosion
	stageRivers
	stageSurface
	stageDone
)

// Pipeline owns the height and weight grids and drives the generation
// stages over them. All exported methods are safe for concurrent use; at
// most one generation run is in flight at a time and stamp applications
// are serialized against it.
type Pipeline struct {
	mu sync.Mutex

	cfg     Config
	compute Compute
	bank    *stamp.Bank
	history *stamp.History
	editor  *stamp.Editor

	field      *noise.Field
	sim        *erosion.Simulator
	carver     *rivers.Carver
	classifier *surface.Classifier
	blender    *surface.Blender

	height  *core.HeightGrid
	weights *core.WeightGrid

	seed int64

	stage    stage
	row      int
	pass     int
	stampIdx int
	carved   int
}

// Option configures a pipeline at construction time.
type Option func(*Pipeline)

// WithCompute injects an accelerated-compute collaborator. Without it all
// stages run locally on the calling goroutine.
func WithCompute(c Compute) Option {
	return func(p *Pipeline) { p.compute = c }
}

// WithBank supplies the stamp catalog used to resolve stamp requests.
func WithBank(b *stamp.Bank) Option {
	return func(p *Pipeline) { p.bank = b }
}

// New builds a pipeline for the given configuration. Grids are allocated
// lazily on the first Start.
func New(cfg Config, opts ...Option) *Pipeline {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	p := &Pipeline{
		cfg:     cfg,
		history: stamp.NewHistory(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bank == nil {
		p.bank = stamp.NewBank()
	}
	p.editor = stamp.NewEditor(cfg.WorldSize, cfg.MaxHeight, p.history)
	return p
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config { return p.cfg }

// Heights returns the working height grid, nil before the first run.
func (p *Pipeline) Heights() *core.HeightGrid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}

// Weights returns the working weight grid, nil before the first run.
func (p *Pipeline) Weights() *core.WeightGrid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.weights
}

// History returns the append-only stamp application log.
func (p *Pipeline) History() *stamp.History { return p.history }

// Bank returns the stamp catalog.
func (p *Pipeline) Bank() *stamp.Bank { return p.bank }

// Rivers reports how many rivers the last completed run carved.
func (p *Pipeline) Rivers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.carved
}

// Seed returns the seed of the current or last run.
func (p *Pipeline) Seed() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seed
}

// Running reports whether a generation run is in flight.
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage != stageIdle && p.stage != stageDone
}

// Done reports whether the last run has finished all stages.
func (p *Pipeline) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage == stageDone
}

// Start begins a new generation run with the given seed. A zero seed
// falls back to the configured one. Starting while a run is in flight
// fails with ErrRunInFlight; the caller cancels explicitly if a restart
// is wanted.
func (p *Pipeline) Start(seed int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stage != stageIdle && p.stage != stageDone {
		return ErrRunInFlight
	}
	if seed == 0 {
		seed = p.cfg.Seed
	}
	p.seed = seed

	p.field = noise.NewField(seed, p.cfg.Layers)
	p.field.SetFalloff(p.cfg.Falloff)
	p.field.SetBaseHeight(p.cfg.BaseHeight)

	p.sim = erosion.NewSimulator(p.cfg.Geology)

	riverParams := p.cfg.Rivers
	if riverParams.Seed == 0 {
		riverParams.Seed = seed + 101
	}
	p.carver = rivers.NewCarver(riverParams)

	p.classifier = surface.NewClassifier(seed, p.cfg.Biome, p.cfg.SlopeScale)
	p.blender = surface.NewBlender(p.cfg.TextureLayers, p.cfg.Blend)

	if p.height == nil || p.height.W != p.cfg.Width || p.height.H != p.cfg.Height {
		p.height = core.NewHeightGrid(p.cfg.Width, p.cfg.Height)
	}
	layers := p.blender.LayerCount()
	if p.weights == nil || p.weights.W != p.cfg.Width || p.weights.H != p.cfg.Height || p.weights.Layers != layers {
		p.weights = core.NewWeightGrid(p.cfg.Width, p.cfg.Height, layers)
	}

	p.stage = stageNoise
	p.row = 0
	p.pass = 0
	p.stampIdx = 0
	p.carved = 0
	return nil
}

// Cancel abandons the in-flight run. Grids keep whatever partial state
// the stages produced so far; the next Start overwrites them.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stage != stageIdle && p.stage != stageDone {
		p.stage = stageIdle
	}
}

// Step advances the in-flight run by at most the configured cell budget
// and reports whether the run has finished. With a zero budget each stage
// completes within a single step.
func (p *Pipeline) Step() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.stage {
	case stageIdle:
		return false, ErrNotStarted
	case stageDone:
		return true, nil
	case stageNoise:
		p.stepNoise()
	case stageStamps:
		p.stepStamps()
	case stageErosion:
		p.stepErosion()
	case stageRivers:
		p.carved = p.carver.Carve(p.height)
		p.advance(stageSurface)
	case stageSurface:
		p.stepSurface()
	}
	return p.stage == stageDone, nil
}

// Generate runs a complete synchronous generation: Start plus Step until
// done.
func (p *Pipeline) Generate(seed int64) error {
	if err := p.Start(seed); err != nil {
		return err
	}
	for {
		done, err := p.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// ApplyStamp blends a named stamp into the height grid. Applications are
// rejected while a generation run is in flight and are serialized against
// each other.
func (p *Pipeline) ApplyStamp(name string, op stamp.Op) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stage != stageIdle && p.stage != stageDone {
		return ErrRunInFlight
	}
	if p.height == nil {
		return ErrNotStarted
	}
	s, ok := p.bank.Get(name)
	if !ok {
		return fmt.Errorf("pipeline: unknown stamp %q", name)
	}
	var applyErr error
	p.offload(TaskStamp, "stamp "+name, func() error {
		applyErr = p.editor.Apply(p.height, s, op)
		return applyErr
	})
	return applyErr
}

// Commit copies the finished grids into the target terrain object. The
// grids remain owned by the pipeline; the target receives value copies.
func (p *Pipeline) Commit(t Target) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t == nil {
		return ErrNoTarget
	}
	if p.height == nil || p.weights == nil {
		return ErrNotStarted
	}
	tw, th := t.Resolution()
	if tw != p.height.W || th != p.height.H {
		return fmt.Errorf("pipeline: target resolution %dx%d does not match grid %dx%d",
			tw, th, p.height.W, p.height.H)
	}
	if t.LayerCount() != p.weights.Layers {
		return fmt.Errorf("pipeline: target carries %d texture layers, grid has %d",
			t.LayerCount(), p.weights.Layers)
	}
	if err := t.SetHeights(append([]float64(nil), p.height.Cells()...)); err != nil {
		return fmt.Errorf("pipeline: commit heights: %w", err)
	}
	if err := t.SetWeights(append([]float64(nil), p.weights.Cells()...)); err != nil {
		return fmt.Errorf("pipeline: commit weights: %w", err)
	}
	return nil
}

// rowsPerStep converts the cell budget into whole rows, minimum one.
func (p *Pipeline) rowsPerStep() int {
	rows := p.cfg.CellBudget / p.cfg.Width
	if rows < 1 {
		rows = 1
	}
	return rows
}

// advance moves to the next stage, skipping disabled ones.
func (p *Pipeline) advance(next stage) {
	p.row = 0
	if next == stageErosion && (!p.cfg.ErosionEnabled || p.cfg.Geology.Iterations <= 0) {
		next = stageRivers
	}
	if next == stageRivers && !p.cfg.RiversEnabled {
		next = stageSurface
	}
	p.stage = next
}

func (p *Pipeline) stepNoise() {
	if p.cfg.CellBudget <= 0 {
		field, grid := p.field, p.height
		p.offload(TaskNoise, "layered noise fill", func() error {
			field.Fill(grid)
			return nil
		})
		p.row = grid.H
	} else {
		end := p.row + p.rowsPerStep()
		if end > p.height.H {
			end = p.height.H
		}
		p.field.FillRows(p.height, p.row, end)
		p.row = end
	}
	if p.row >= p.height.H {
		p.advance(stageStamps)
	}
}

// stepStamps applies one scheduled stamp per step. Unknown stamp names
// are skipped rather than aborting the run.
func (p *Pipeline) stepStamps() {
	for p.stampIdx < len(p.cfg.Stamps) {
		req := p.cfg.Stamps[p.stampIdx]
		p.stampIdx++
		s, ok := p.bank.Get(req.Stamp)
		if !ok {
			continue
		}
		editor, grid := p.editor, p.height
		p.offload(TaskStamp, "stamp "+req.Stamp, func() error {
			return editor.Apply(grid, s, req.Op)
		})
		return
	}
	p.advance(stageErosion)
}

func (p *Pipeline) stepErosion() {
	if p.cfg.CellBudget <= 0 {
		sim, grid := p.sim, p.height
		p.offload(TaskErosion, "erosion passes", func() error {
			sim.Apply(grid)
			return nil
		})
		p.pass = p.cfg.Geology.Iterations
	} else {
		p.sim.Pass(p.height)
		p.pass++
	}
	if p.pass >= p.cfg.Geology.Iterations {
		p.advance(stageRivers)
	}
}

func (p *Pipeline) stepSurface() {
	if p.cfg.CellBudget <= 0 {
		p.blender.Fill(p.height, p.weights, p.classifier)
		p.row = p.height.H
	} else {
		end := p.row + p.rowsPerStep()
		if end > p.height.H {
			end = p.height.H
		}
		p.blender.FillRows(p.height, p.weights, p.classifier, p.row, end)
		p.row = end
	}
	if p.row >= p.height.H {
		p.row = 0
		p.stage = stageDone
	}
}
