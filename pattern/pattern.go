// Package pattern extracts the dense table of unique 2x2 patterns found
// in an exemplar raster, with per-pattern occurrence counts.
package pattern

import (
	"fmt"

	"github.com/tilebound/wfc/tile"
)

// Pattern is a unique tile value together with its dense table index and
// the number of toroidal positions in the exemplar where it occurs.
type Pattern struct {
	Index uint32
	Count uint32
	Tile  tile.Tile
}

// Table is the dense, index-ordered set of patterns extracted from an
// exemplar. Index order is fixed by extraction order (row-major,
// first-seen) and must never be re-sorted: the CompatibilityIndex and
// every Wave bitmap key off Table indices.
type Table struct {
	patterns []Pattern
	byTile   map[tile.Tile]uint32
}

// Len returns the number of distinct patterns in the table.
func (t *Table) Len() int { return len(t.patterns) }

// At returns the pattern at dense index i.
func (t *Table) At(i int) Pattern { return t.patterns[i] }

// IndexOf returns the dense index of tl, if present.
func (t *Table) IndexOf(tl tile.Tile) (uint32, bool) {
	i, ok := t.byTile[tl]
	return i, ok
}

type exemplarGrid struct {
	w, h int
	data []uint8
}

func (g *exemplarGrid) Width() int         { return g.w }
func (g *exemplarGrid) Height() int        { return g.h }
func (g *exemplarGrid) At(x, y int) uint8  { return g.data[x+y*g.w] }

// Extract walks the exemplar in row-major order (y outer, x inner),
// reading a toroidally-wrapped 2x2 tile at every position, and builds a
// dense pattern table: the first time a tile value is seen it gets the
// next index and a count of 1; subsequent occurrences just bump that
// pattern's count. This order is mandated by spec.md so that indices (and
// therefore every downstream bitmap) are reproducible across
// implementations.
func Extract(width, height int, cells []uint8) (*Table, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pattern: exemplar dimensions must be positive, got %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("pattern: exemplar has %d cells, want %d (%dx%d)", len(cells), width*height, width, height)
	}
	for i, c := range cells {
		if c&^tile.CellMask != 0 {
			return nil, fmt.Errorf("pattern: cell %d value %#x exceeds %d-bit range", i, c, tile.CellBits)
		}
	}

	g := &exemplarGrid{w: width, h: height, data: cells}
	t := &Table{byTile: make(map[tile.Tile]uint32)}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tl := tile.At(g, tile.Pos{X: x, Y: y})

			if idx, ok := t.byTile[tl]; ok {
				t.patterns[idx].Count++
				continue
			}

			idx := uint32(len(t.patterns))
			t.patterns = append(t.patterns, Pattern{Index: idx, Count: 1, Tile: tl})
			t.byTile[tl] = idx
		}
	}

	return t, nil
}
