// Command terragen generates a terrain headlessly and writes the height
// and texture-weight fields as PNG images.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"terragen/internal/pipeline"
	"terragen/internal/render"
	"terragen/internal/stamp"
	"terragen/internal/surface"
)

func main() {
	var (
		width    = flag.Int("w", 256, "terrain grid width")
		height   = flag.Int("h", 256, "terrain grid height")
		seed     = flag.Int64("seed", 1337, "generation seed")
		biome    = flag.String("biome", "plains", "biome preset")
		stampDir = flag.String("stamps", "", "directory of PNG stamp patterns")
		outDir   = flag.String("o", ".", "output directory")
		set      = flag.String("set", "", "comma-separated key=value config overrides")
		describe = flag.Bool("describe", false, "print the effective parameters and exit")
	)
	flag.Parse()

	cfg := pipeline.FromMap(parseSet(*set))
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.Biome = surface.ParseBiome(*biome)

	bank := stamp.NewBank()
	if *stampDir != "" {
		n, err := bank.LoadDir(*stampDir)
		if err != nil {
			log.Fatalf("load stamps: %v", err)
		}
		log.Printf("loaded %d stamps from %s", n, *stampDir)
	}

	pipe := pipeline.New(cfg,
		pipeline.WithBank(bank),
		pipeline.WithCompute(pipeline.LocalCompute{}),
	)

	if *describe {
		printParameters(pipe)
		return
	}

	start := time.Now()
	if err := pipe.Generate(*seed); err != nil {
		log.Fatal(err)
	}
	log.Printf("generated %dx%d terrain in %v (%d rivers)", cfg.Width, cfg.Height, time.Since(start), pipe.Rivers())

	target := pipeline.NewMemoryTarget(cfg.Width, cfg.Height, pipe.Weights().Layers)
	if err := pipe.Commit(target); err != nil {
		log.Fatal(err)
	}

	heightPath := filepath.Join(*outDir, "height.png")
	if err := render.WritePNG(heightPath, render.HeightImage(pipe.Heights())); err != nil {
		log.Fatal(err)
	}
	weightPath := filepath.Join(*outDir, "weights.png")
	if err := render.WritePNG(weightPath, render.WeightImage(pipe.Weights())); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s and %s", heightPath, weightPath)
}

func parseSet(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func printParameters(pipe *pipeline.Pipeline) {
	snapshot := pipe.Parameters()
	for _, group := range snapshot.Groups {
		if group.Summary != "" {
			fmt.Printf("%s (%s)\n", group.Name, group.Summary)
		} else {
			fmt.Println(group.Name)
		}
		for _, param := range group.Params {
			if param.Description != "" {
				fmt.Printf("  %-22s %-12s %s\n", param.Key, param.Value, param.Description)
				continue
			}
			fmt.Printf("  %-22s %s\n", param.Key, param.Value)
		}
	}
}
