package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Upscale resizes src by an integer factor using nearest-neighbor
// interpolation, so that pattern edges stay crisp rather than blurred.
// The teacher only ever draws the PPU's native-resolution framebuffer
// straight into an ebiten.Image (console/bus.go's Draw), relying on
// ebiten's own window scaling; a generated wave benefits from an
// explicit, factor-controlled upscale before that handoff.
func Upscale(src *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
