package app

import "flag"

// Config represents the command-line parameters for the preview window.
type Config struct {
	Width      int
	Height     int
	Scale      int
	TPS        int
	Seed       int64
	Biome      string
	StampDir   string
	CellBudget int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:      256,
		Height:     256,
		Scale:      3,
		TPS:        60,
		Seed:       1337,
		Biome:      "plains",
		CellBudget: 16384,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "terrain grid width")
	fs.IntVar(&c.Height, "h", c.Height, "terrain grid height")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for terrain generation")
	fs.StringVar(&c.Biome, "biome", c.Biome, "biome preset (plains, desert, forest, swamp, tundra, alpine)")
	fs.StringVar(&c.StampDir, "stamps", c.StampDir, "directory of PNG stamp patterns to load")
	fs.IntVar(&c.CellBudget, "cell-budget", c.CellBudget, "max cells processed per tick, 0 for synchronous")
}
