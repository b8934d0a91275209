//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"terragen/internal/app"
	"terragen/internal/pipeline"
	"terragen/internal/stamp"
	"terragen/internal/surface"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.Width = cfg.Width
	pipeCfg.Height = cfg.Height
	pipeCfg.Seed = cfg.Seed
	pipeCfg.Biome = surface.ParseBiome(cfg.Biome)
	pipeCfg.CellBudget = cfg.CellBudget

	bank := stamp.NewBank()
	if cfg.StampDir != "" {
		n, err := bank.LoadDir(cfg.StampDir)
		if err != nil {
			log.Fatalf("load stamps: %v", err)
		}
		log.Printf("loaded %d stamps from %s", n, cfg.StampDir)
	}

	pipe := pipeline.New(pipeCfg, pipeline.WithBank(bank))
	if err := pipe.Start(cfg.Seed); err != nil {
		log.Fatal(err)
	}

	game := app.New(pipe, cfg.Scale, cfg.Seed)

	ebiten.SetWindowTitle("terragen")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
