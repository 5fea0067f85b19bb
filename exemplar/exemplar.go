// Package exemplar is an external collaborator: it loads the small
// categorical raster the core's pattern table is extracted from, either
// from a PNG (distinct colors mapped to dense cell indices) or a plain
// text grid (one hex nibble per cell, as in spec.md's literal scenario
// notation). It has no part in the core's invariants.
package exemplar

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"strings"

	"github.com/tilebound/wfc/tile"
)

// Grid is a loaded exemplar: a flat row-major array of cells plus its
// dimensions.
type Grid struct {
	Width, Height int
	Cells         []uint8
}

// Load reads path and dispatches on its extension: ".png" decodes an
// image, anything else is parsed as a text grid.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exemplar: couldn't open %q: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return loadPNG(f)
	}
	return loadText(f)
}

// loadPNG decodes an image and maps each distinct RGBA color to a dense
// cell index in first-seen row-major order. More than 16 distinct colors
// is a precondition violation: cells must fit in tile.CellBits bits.
func loadPNG(r *os.File) (*Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("exemplar: decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("exemplar: image has zero dimension")
	}

	cells := make([]uint8, w*h)
	byColor := make(map[color.RGBA]uint8)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r32, g32, b32, a32 := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := color.RGBA{R: uint8(r32 >> 8), G: uint8(g32 >> 8), B: uint8(b32 >> 8), A: uint8(a32 >> 8)}

			idx, ok := byColor[c]
			if !ok {
				if len(byColor) >= (1 << tile.CellBits) {
					return nil, fmt.Errorf("exemplar: image has more than %d distinct colors", 1<<tile.CellBits)
				}
				idx = uint8(len(byColor))
				byColor[c] = idx
			}
			cells[x+y*w] = idx
		}
	}

	return &Grid{Width: w, Height: h, Cells: cells}, nil
}

// loadText parses one hex nibble per cell, rows separated by newlines,
// matching spec.md's literal exemplar notation (e.g. "0000 / 0111 / 0121
// / 0111" written as four lines of "0000", "0111", "0121", "0111").
func loadText(r *os.File) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	var rows []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("exemplar: reading text grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("exemplar: text grid is empty")
	}

	width := len(rows[0])
	cells := make([]uint8, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("exemplar: row %d has length %d, want %d", y, len(row), width)
		}
		for x, ch := range row {
			v, err := hexNibble(ch)
			if err != nil {
				return nil, fmt.Errorf("exemplar: row %d col %d: %w", y, x, err)
			}
			cells = append(cells, v)
		}
	}

	return &Grid{Width: width, Height: len(rows), Cells: cells}, nil
}

func hexNibble(ch rune) (uint8, error) {
	switch {
	case ch >= '0' && ch <= '9':
		return uint8(ch - '0'), nil
	case ch >= 'a' && ch <= 'f':
		return uint8(ch-'a') + 10, nil
	case ch >= 'A' && ch <= 'F':
		return uint8(ch-'A') + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", ch)
	}
}
