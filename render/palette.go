// Package render turns a wfc.State's Wave into pixels, either for an
// ebiten window, a tcell terminal, or a flat image.RGBA a caller can
// encode to PNG. Image and the palette helpers only read the State;
// Window.Update and Terminal.Run advance it by calling State.Step.
package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tilebound/wfc/wfc"
)

// Palette maps the dense cell values packed into a pattern's top-left
// corner (0..15) to a display color. Index 0 is always black so an
// exemplar that never assigns meaning to "0" still renders sensibly.
type Palette [16]colorful.Color

// DefaultPalette assigns each of the 16 possible cell values an evenly
// spaced hue around the color wheel, grounded on the same HSV-sweep
// approach the teacher's PPU palette table uses for NES color indices
// (ppu/ppu.go), but computed instead of hand-transcribed since cell
// identity here is exemplar-defined rather than a fixed console palette.
func DefaultPalette() Palette {
	var p Palette
	p[0] = colorful.Color{R: 0, G: 0, B: 0}
	for i := 1; i < 16; i++ {
		hue := 360.0 * float64(i) / 15.0
		p[i] = colorful.Hsv(hue, 0.65, 0.95)
	}
	return p
}

// cellColor returns the color for one allowed-pattern-set at a cell.
// A decided cell (one allowed pattern) uses its color directly; an
// undecided cell blends every still-allowed pattern's color in Lab
// space, so partially-collapsed regions show a soft average instead of
// flickering between saturated extremes.
func (p Palette) cellColor(s *wfc.State, x, y int) color.Color {
	allowed := s.ReadCell(x, y)
	if len(allowed) == 0 {
		return color.RGBA{R: 255, G: 0, B: 255, A: 255} // contradiction marker
	}

	cols := make([]colorful.Color, len(allowed))
	for i, idx := range allowed {
		cell := uint8((s.PatternTile(idx) >> 12) & 0xF)
		cols[i] = p[cell]
	}
	return BlendAverage(cols...).Clamped()
}

// BlendAverage perceptually averages colors in CIE-Lab space via a
// running BlendLab accumulation: each new color is blended into the
// running mean with weight 1/(i+1), which is exactly the incremental
// definition of an arithmetic mean, so the result doesn't depend on the
// order colors are presented in.
func BlendAverage(colors ...colorful.Color) colorful.Color {
	if len(colors) == 0 {
		return colorful.Color{}
	}
	blend := colors[0]
	for i := 1; i < len(colors); i++ {
		blend = blend.BlendLab(colors[i], 1.0/float64(i+1))
	}
	return blend
}
