package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terragen/internal/stamp"
	"terragen/internal/surface"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 48
	cfg.Geology.Iterations = 5
	return cfg
}

func TestGenerateProducesValidTerrain(t *testing.T) {
	pipe := New(testConfig())
	require.NoError(t, pipe.Generate(7))
	require.True(t, pipe.Done())

	for i, v := range pipe.Heights().Cells() {
		require.Falsef(t, v < 0 || v > 1 || math.IsNaN(v), "height cell %d out of range: %v", i, v)
	}
	wg := pipe.Weights()
	for y := 0; y < wg.H; y++ {
		for x := 0; x < wg.W; x++ {
			sum := 0.0
			for _, w := range wg.WeightsAt(x, y) {
				sum += w
			}
			require.InDeltaf(t, 1.0, sum, 1e-9, "weights at (%d,%d)", x, y)
		}
	}
}

func TestStartRejectsInFlightRun(t *testing.T) {
	cfg := testConfig()
	cfg.CellBudget = cfg.Width // one row per step
	pipe := New(cfg)

	require.NoError(t, pipe.Start(3))
	done, err := pipe.Step()
	require.NoError(t, err)
	require.False(t, done)

	assert.ErrorIs(t, pipe.Start(4), ErrRunInFlight)
	assert.ErrorIs(t, pipe.ApplyStamp("any", stamp.Op{}), ErrRunInFlight)

	pipe.Cancel()
	assert.False(t, pipe.Running())
	assert.NoError(t, pipe.Start(4))
}

func TestStepBeforeStart(t *testing.T) {
	pipe := New(testConfig())
	_, err := pipe.Step()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestBudgetedMatchesSynchronous(t *testing.T) {
	sync := New(testConfig())
	require.NoError(t, sync.Generate(11))

	cfg := testConfig()
	cfg.CellBudget = cfg.Width * 3
	budgeted := New(cfg)
	require.NoError(t, budgeted.Start(11))
	steps := 0
	for {
		done, err := budgeted.Step()
		require.NoError(t, err)
		if done {
			break
		}
		steps++
		require.Less(t, steps, 100000, "budgeted run failed to terminate")
	}

	assert.Greater(t, steps, 1, "budgeted run should take multiple steps")
	assert.Equal(t, sync.Heights().Cells(), budgeted.Heights().Cells(),
		"execution mode must not change the result")
	assert.Equal(t, sync.Weights().Cells(), budgeted.Weights().Cells())
}

func TestSeedDeterminism(t *testing.T) {
	a := New(testConfig())
	b := New(testConfig())
	require.NoError(t, a.Generate(21))
	require.NoError(t, b.Generate(21))
	assert.Equal(t, a.Heights().Cells(), b.Heights().Cells())
	assert.Equal(t, a.Weights().Cells(), b.Weights().Cells())

	c := New(testConfig())
	require.NoError(t, c.Generate(22))
	assert.NotEqual(t, a.Heights().Cells(), c.Heights().Cells())
}

type recordingCompute struct {
	kinds  []TaskKind
	reject bool
	fail   bool
}

func (c *recordingCompute) Submit(t Task) bool {
	c.kinds = append(c.kinds, t.Kind)
	if c.reject {
		return false
	}
	if c.fail {
		t.OnComplete(false)
		return true
	}
	err := t.Run()
	t.OnComplete(err == nil)
	return true
}

func TestComputeCollaboratorReceivesTasks(t *testing.T) {
	compute := &recordingCompute{}
	pipe := New(testConfig(), WithCompute(compute))
	require.NoError(t, pipe.Generate(5))
	assert.Contains(t, compute.kinds, TaskNoise)
	assert.Contains(t, compute.kinds, TaskErosion)
}

func TestComputeFailureFallsBackToLocal(t *testing.T) {
	local := New(testConfig())
	require.NoError(t, local.Generate(9))

	for name, compute := range map[string]Compute{
		"rejecting": &recordingCompute{reject: true},
		"failing":   &recordingCompute{fail: true},
	} {
		pipe := New(testConfig(), WithCompute(compute))
		require.NoError(t, pipe.Generate(9), name)
		assert.Equal(t, local.Heights().Cells(), pipe.Heights().Cells(),
			"%s collaborator must not change the result", name)
	}
}

func TestScheduledStampsApplied(t *testing.T) {
	bank := stamp.NewBank()
	require.NoError(t, bank.Register(stamp.Stamp{
		Name:        "hill",
		Pattern:     stamp.NewUniformPattern(8, 1),
		HeightScale: 40,
	}))

	cfg := testConfig()
	cfg.ErosionEnabled = false
	cfg.RiversEnabled = false
	cfg.Stamps = []StampRequest{
		{Stamp: "hill", Op: stamp.Op{X: 512, Z: 512, Size: 300, Strength: 1, Blend: stamp.BlendAdd}},
		{Stamp: "missing", Op: stamp.Op{}},
	}
	pipe := New(cfg, WithBank(bank))
	require.NoError(t, pipe.Generate(5))

	plain := New(func() Config {
		c := testConfig()
		c.ErosionEnabled = false
		c.RiversEnabled = false
		return c
	}())
	require.NoError(t, plain.Generate(5))

	center := pipe.Heights().At(24, 24)
	assert.Greater(t, center, plain.Heights().At(24, 24), "scheduled stamp should raise the center")
	assert.Equal(t, 1, pipe.History().Len(), "only resolvable stamp requests are applied and recorded")
}

func TestApplyStampAfterRun(t *testing.T) {
	bank := stamp.NewBank()
	require.NoError(t, bank.Register(stamp.Stamp{
		Name:        "crater",
		Pattern:     stamp.NewUniformPattern(8, 1),
		HeightScale: 40,
	}))
	pipe := New(testConfig(), WithBank(bank))
	require.NoError(t, pipe.Generate(2))

	assert.Error(t, pipe.ApplyStamp("bogus", stamp.Op{}))
	require.NoError(t, pipe.ApplyStamp("crater", stamp.Op{X: 512, Z: 512, Size: 200, Strength: 1, Blend: stamp.BlendSubtract}))
	assert.Equal(t, 1, pipe.History().Len())
}

func TestCommit(t *testing.T) {
	pipe := New(testConfig())

	assert.ErrorIs(t, pipe.Commit(nil), ErrNoTarget)
	assert.ErrorIs(t, pipe.Commit(NewMemoryTarget(48, 48, 4)), ErrNotStarted)

	require.NoError(t, pipe.Generate(13))

	wrongSize := NewMemoryTarget(32, 32, 4)
	assert.Error(t, pipe.Commit(wrongSize))
	wrongLayers := NewMemoryTarget(48, 48, 2)
	assert.Error(t, pipe.Commit(wrongLayers))

	target := NewMemoryTarget(48, 48, pipe.Weights().Layers)
	require.NoError(t, pipe.Commit(target))
	assert.Equal(t, pipe.Heights().Cells(), target.Heights)
	assert.Equal(t, pipe.Weights().Cells(), target.Weights)
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                  "96",
		"h":                  "64",
		"seed":               "99",
		"biome":              "tundra",
		"erosion":            "false",
		"erosion_iterations": "12",
		"river_attempts":     "5",
		"cell_budget":        "1024",
		"bogus":              "ignored",
		"max_height":         "not-a-number",
	})
	assert.Equal(t, 96, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, surface.BiomeTundra, cfg.Biome)
	assert.False(t, cfg.ErosionEnabled)
	assert.Equal(t, 12, cfg.Geology.Iterations)
	assert.Equal(t, 5, cfg.Rivers.MaxSourceAttempts)
	assert.Equal(t, 1024, cfg.CellBudget)
	assert.Equal(t, DefaultConfig().MaxHeight, cfg.MaxHeight, "malformed values keep defaults")
}

func TestParametersSnapshot(t *testing.T) {
	pipe := New(testConfig())
	snapshot := pipe.Parameters()
	require.NotEmpty(t, snapshot.Groups)

	names := map[string]bool{}
	for _, group := range snapshot.Groups {
		names[group.Name] = true
	}
	for _, want := range []string{"grid", "noise", "erosion", "rivers", "surface"} {
		assert.Truef(t, names[want], "missing parameter group %q", want)
	}
}
