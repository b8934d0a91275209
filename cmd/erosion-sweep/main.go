// Command erosion-sweep runs the erosion simulator across a cartesian
// grid of geology settings and reports which combinations smooth the most
// relief while preserving large-scale structure.
package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"terragen/internal/core"
	"terragen/internal/erosion"
	"terragen/internal/noise"
)

type paramSet struct {
	iterations int
	strength   float64
	hardness   float64
	resistance float64
	talus      float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("iters=%d strength=%.2f hardness=%.2f resistance=%.2f talus=%.4f",
		p.iterations, p.strength, p.hardness, p.resistance, p.talus)
}

type scenarioResult struct {
	params paramSet

	reliefBefore     float64
	reliefAfter      float64
	ruggednessBefore float64
	ruggednessAfter  float64
	massDrift        float64
	elapsed          time.Duration
}

// smoothing is the fraction of small-scale ruggedness removed.
func (r scenarioResult) smoothing() float64 {
	if r.ruggednessBefore <= 0 {
		return 0
	}
	return 1 - r.ruggednessAfter/r.ruggednessBefore
}

func main() {
	size := flag.Int("size", 192, "grid edge length")
	seed := flag.Int64("seed", 99, "noise seed shared by every scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 10, "how many results to print")
	flag.Parse()

	base := core.NewHeightGrid(*size, *size)
	field := noise.NewField(*seed, []noise.Layer{
		noise.DefaultLayer(),
		{Kind: noise.KindRidged, Weight: 0.5, Frequency: 0.05, Amplitude: 1, Octaves: 3, Persistence: 0.5, Lacunarity: 2},
	})
	field.Fill(base)

	iterationOptions := []int{10, 30, 60}
	strengthOptions := []float64{0.15, 0.3, 0.5}
	hardnessOptions := []float64{0.5, 1.0, 2.0}
	resistanceOptions := []float64{0.0, 0.2, 0.5}
	talusOptions := []float64{0.0002, 0.0005, 0.002}

	var sets []paramSet
	for _, iters := range iterationOptions {
		for _, strength := range strengthOptions {
			for _, hardness := range hardnessOptions {
				for _, resistance := range resistanceOptions {
					for _, talus := range talusOptions {
						sets = append(sets, paramSet{
							iterations: iters,
							strength:   strength,
							hardness:   hardness,
							resistance: resistance,
							talus:      talus,
						})
					}
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %dx%d grid)\n", len(sets), *workers, *size, *size)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool { return all[i].smoothing() > all[j].smoothing() })

	fmt.Printf("Completed in %v\n\n", elapsed)
	limit := *top
	if limit > len(all) {
		limit = len(all)
	}
	for i := 0; i < limit; i++ {
		res := all[i]
		fmt.Printf("%2d. smoothing=%.1f%% relief %.3f->%.3f drift=%.5f in %v\n    %s\n",
			i+1, res.smoothing()*100, res.reliefBefore, res.reliefAfter, res.massDrift, res.elapsed, res.params)
	}
}

func runScenario(base *core.HeightGrid, params paramSet) scenarioResult {
	grid := base.Clone()
	res := scenarioResult{
		params:           params,
		reliefBefore:     relief(base),
		ruggednessBefore: ruggedness(base),
	}

	sim := erosion.NewSimulator(erosion.Geology{
		Iterations:   params.iterations,
		Strength:     params.strength,
		RockHardness: params.hardness,
		Resistance:   params.resistance,
		Talus:        params.talus,
	})

	start := time.Now()
	sim.Apply(grid)
	res.elapsed = time.Since(start)

	res.reliefAfter = relief(grid)
	res.ruggednessAfter = ruggedness(grid)
	res.massDrift = math.Abs(mean(grid) - mean(base))
	return res
}

// relief is the observed height range.
func relief(grid *core.HeightGrid) float64 {
	cells := grid.Cells()
	min, max := cells[0], cells[0]
	for _, v := range cells {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}

// ruggedness is the mean absolute height difference between horizontal
// neighbors, a cheap proxy for small-scale surface roughness.
func ruggedness(grid *core.HeightGrid) float64 {
	cells := grid.Cells()
	sum := 0.0
	count := 0
	for y := 0; y < grid.H; y++ {
		row := y * grid.W
		for x := 1; x < grid.W; x++ {
			sum += math.Abs(cells[row+x] - cells[row+x-1])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func mean(grid *core.HeightGrid) float64 {
	cells := grid.Cells()
	sum := 0.0
	for _, v := range cells {
		sum += v
	}
	return sum / float64(len(cells))
}
