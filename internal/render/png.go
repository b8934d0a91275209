package render

import (
	"image"
	"image/png"
	"os"

	"terragen/internal/core"
)

// HeightImage renders the height grid as a hypsometric RGBA image.
func HeightImage(grid *core.HeightGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.W, grid.H))
	FillHeightRGBA(img.Pix, grid.Cells())
	return img
}

// WeightImage renders the weight grid using the standard layer palette.
func WeightImage(wg *core.WeightGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, wg.W, wg.H))
	FillWeightRGBA(img.Pix, wg, LayerPalette(wg.Layers))
	return img
}

// WritePNG encodes the image to a file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
