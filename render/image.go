package render

import (
	"image"

	"github.com/tilebound/wfc/wfc"
)

// Image renders the current Wave to a one-pixel-per-cell RGBA image
// using pal. Callers that want a larger raster should scale the result
// themselves (see Upscale).
func Image(s *wfc.State, pal Palette) *image.RGBA {
	w, h := s.OutputDimensions()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, pal.cellColor(s, x, y))
		}
	}
	return img
}
