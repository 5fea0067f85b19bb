// Package wave holds the mutable per-cell possibility bitmaps that the
// observer and propagator read and narrow down.
package wave

import (
	"math/bits"

	"github.com/tilebound/wfc/pattern"
)

// Wave is one possibility bitmap per output cell, row-major over the
// output grid. Every bitmap starts all-ones over [0, numPatterns).
type Wave struct {
	width, height int
	numPatterns   int
	rowBytes      int
	data          []byte
}

// New allocates a Wave for an outW x outH output grid over numPatterns
// patterns, with every cell's bitmap set to all-ones.
func New(outW, outH, numPatterns int) *Wave {
	rb := (numPatterns + 7) / 8
	w := &Wave{
		width:       outW,
		height:      outH,
		numPatterns: numPatterns,
		rowBytes:    rb,
		data:        make([]byte, outW*outH*rb),
	}
	w.ResetAll()
	return w
}

// ResetAll sets every cell's bitmap back to all-ones over [0, numPatterns).
func (w *Wave) ResetAll() {
	for i := range w.data {
		w.data[i] = 0xFF
	}
	w.maskTrailingBits()
}

// maskTrailingBits clears any bits >= numPatterns in the last byte of
// every cell's row, so PopCount and Weight never see phantom patterns.
func (w *Wave) maskTrailingBits() {
	extra := w.numPatterns % 8
	if extra == 0 || w.rowBytes == 0 {
		return
	}
	lastMask := byte(1<<uint(extra)) - 1
	for cell := 0; cell < w.width*w.height; cell++ {
		base := cell * w.rowBytes
		w.data[base+w.rowBytes-1] &= lastMask
	}
}

func (w *Wave) cellOffset(x, y int) int {
	return (x + y*w.width) * w.rowBytes
}

// Row returns the raw bitmap bytes for the cell at (x, y). Callers must
// not retain the slice past the next mutation of the Wave.
func (w *Wave) Row(x, y int) []byte {
	base := w.cellOffset(x, y)
	return w.data[base : base+w.rowBytes]
}

// Allowed reports whether pattern p is still possible at (x, y).
func (w *Wave) Allowed(x, y, p int) bool {
	base := w.cellOffset(x, y)
	return w.data[base+p/8]&(1<<uint(p%8)) != 0
}

// Clear removes pattern p from the possibility set at (x, y).
func (w *Wave) Clear(x, y, p int) {
	base := w.cellOffset(x, y)
	w.data[base+p/8] &^= 1 << uint(p%8)
}

// PopCountAllowed returns the number of patterns still allowed at (x, y).
func (w *Wave) PopCountAllowed(x, y int) int {
	n := 0
	for _, b := range w.Row(x, y) {
		n += bits.OnesCount8(b)
	}
	return n
}

// Weight returns the count-weighted entropy surrogate for (x, y): the sum
// of patterns[p].Count over every pattern p still allowed there. Only
// relative ordering between cells matters, so this stands in for a true
// Shannon entropy.
func (w *Wave) Weight(x, y int, patterns *pattern.Table) uint64 {
	var total uint64
	row := w.Row(x, y)
	for byteIdx, b := range row {
		if b == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) == 0 {
				continue
			}
			p := byteIdx*8 + bit
			total += uint64(patterns.At(p).Count)
		}
	}
	return total
}

// Width returns the output grid width.
func (w *Wave) Width() int { return w.width }

// Height returns the output grid height.
func (w *Wave) Height() int { return w.height }

// NumPatterns returns the size of the pattern universe this Wave tracks.
func (w *Wave) NumPatterns() int { return w.numPatterns }

// RowBytes returns the number of bytes in one cell's bitmap.
func (w *Wave) RowBytes() int { return w.rowBytes }

// SolePattern returns the single allowed pattern at (x, y) and true, or
// (0, false) if the cell is not decided (zero or more than one allowed).
func (w *Wave) SolePattern(x, y int) (int, bool) {
	found := -1
	row := w.Row(x, y)
	for byteIdx, b := range row {
		if b == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) == 0 {
				continue
			}
			if found != -1 {
				return 0, false
			}
			found = byteIdx*8 + bit
		}
	}
	if found == -1 {
		return 0, false
	}
	return found, true
}
