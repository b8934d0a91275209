package render

import (
	"testing"

	"terragen/internal/core"
)

func TestHeightColorBands(t *testing.T) {
	water := HeightColor(0.1)
	if water.B <= water.R {
		t.Fatalf("expected deep water to be blue, got %+v", water)
	}
	grass := HeightColor(0.5)
	if grass.G <= grass.B {
		t.Fatalf("expected midlands to be green, got %+v", grass)
	}
	snow := HeightColor(0.95)
	if snow.R < 180 || snow.G < 180 || snow.B < 180 {
		t.Fatalf("expected peaks to be near white, got %+v", snow)
	}
	if a := HeightColor(0.3).A; a != 0xff {
		t.Fatalf("expected opaque output, alpha %d", a)
	}
}

func TestFillHeightRGBABufferLayout(t *testing.T) {
	cells := []float64{0, 0.5, 1}
	buf := make([]byte, 4*len(cells))
	FillHeightRGBA(buf, cells)
	for i := range cells {
		if buf[i*4+3] != 0xff {
			t.Fatalf("pixel %d not opaque", i)
		}
	}
	short := make([]byte, 4)
	FillHeightRGBA(short, cells) // must not panic on undersized buffers
}

func TestLayerPaletteDistinct(t *testing.T) {
	palette := LayerPalette(4)
	if len(palette) != 4 {
		t.Fatalf("expected 4 colors, got %d", len(palette))
	}
	for i := 0; i < len(palette); i++ {
		for j := i + 1; j < len(palette); j++ {
			if palette[i] == palette[j] {
				t.Fatalf("palette colors %d and %d identical", i, j)
			}
		}
	}
	if LayerPalette(0) != nil {
		t.Fatal("expected nil palette for zero layers")
	}
}

func TestFillWeightRGBAMixesByWeight(t *testing.T) {
	wg := core.NewWeightGrid(1, 1, 2)
	weights := wg.WeightsAt(0, 0)
	weights[0] = 1
	weights[1] = 0

	palette := LayerPalette(2)
	buf := make([]byte, 4)
	FillWeightRGBA(buf, wg, palette)
	if buf[0] != palette[0].R || buf[1] != palette[0].G || buf[2] != palette[0].B {
		t.Fatalf("full-weight cell should take layer 0's color, got %v", buf[:3])
	}

	weights[0] = 0.5
	weights[1] = 0.5
	mixed := make([]byte, 4)
	FillWeightRGBA(mixed, wg, palette)
	if mixed[0] == buf[0] && mixed[1] == buf[1] && mixed[2] == buf[2] {
		t.Fatal("mixed weights should blend colors")
	}
}
