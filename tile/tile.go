// Package tile implements the packed 2x2 pattern codec: mask, shift and
// overlap-test operations on the 16-bit nibble-packed Tile value.
//
// A Tile holds four 4-bit cells packed MSB-first in window order
// (0,0),(1,0),(0,1),(1,1):
//
//	15            0
//	cccc cccc cccc cccc
//	(0,0)(1,0)(0,1)(1,1)
package tile

const (
	// CellBits is the width, in bits, of a single packed cell (B in spec.md).
	CellBits = 4
	// CellMask isolates the low CellBits bits of a cell value.
	CellMask = (1 << CellBits) - 1
	// N is the side length of the pattern window.
	N = 2
)

// Tile is a packed NxN window of cells.
type Tile uint16

// Pos is an integer grid coordinate.
type Pos struct {
	X, Y int
}

// windowOffsets gives the read order used to pack a Tile: each offset is
// shifted in after the previous one, so offset 0 ends up in the most
// significant nibble. This order is fixed by spec.md and must match
// Mask/Shift's nibble accounting.
var windowOffsets = [N * N]Pos{
	{0, 0},
	{1, 0},
	{0, 1},
	{1, 1},
}

// Grid is anything At can sample with toroidal wrap.
type Grid interface {
	At(x, y int) uint8
	Width() int
	Height() int
}

// At reads the 2x2 window rooted at pos from g, wrapping toroidally, and
// packs it MSB-first into a Tile. Cell values must already fit in
// CellBits; callers validate that at ingestion (see pattern.Extract).
func At(g Grid, pos Pos) Tile {
	var t Tile
	w, h := g.Width(), g.Height()
	for _, off := range windowOffsets {
		x := wrapAxis(pos.X+off.X, w)
		y := wrapAxis(pos.Y+off.Y, h)
		t = (t << CellBits) | Tile(g.At(x, y)&CellMask)
	}
	return t
}

func wrapAxis(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// maskTable maps (sign of adj.X, sign of adj.Y) to the bitmask of nibbles
// kept in the overlap region, per spec.md's Tile Codec mask table.
var maskTable = map[Pos]Tile{
	{1, 0}:  0x0F0F, // (1,0),(1,1)
	{-1, 0}: 0xF0F0, // (0,0),(0,1)
	{0, 1}:  0x00FF, // (0,1),(1,1)
	{0, -1}: 0xFF00, // (0,0),(1,0)
	{1, 1}:  0x000F, // (1,1)
	{-1, -1}: 0xF000, // (0,0)
	{1, -1}: 0x0F00, // (1,0)
	{-1, 1}: 0x00F0, // (0,1)
	{0, 0}:  0xFFFF,
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Mask returns the subset of tile's nibbles that constitute the overlap
// region when a neighbour sits at offset adj.
func Mask(t Tile, adj Pos) Tile {
	m, ok := maskTable[Pos{sign(adj.X), sign(adj.Y)}]
	if !ok {
		panic("tile: adjacency offset out of range")
	}
	return t & m
}

// Shift translates a masked tile's nibbles by adj, expressed in nibble
// units: +-1 in X is 4 bits, +-1 in Y is 8 bits. A positive offset shifts
// left (toward more significant nibbles); negative shifts right.
func Shift(t Tile, adj Pos) Tile {
	n := adj.X*CellBits + adj.Y*(CellBits*N)
	switch {
	case n > 0:
		return t << uint(n)
	case n < 0:
		return t >> uint(-n)
	default:
		return t
	}
}

// Overlap reports whether placing pattern b at offset adj from a cell
// holding pattern a keeps the overlapping sub-window consistent: the
// region of a overlapping with b at offset adj, translated into b's
// frame, must equal the corresponding region of b.
func Overlap(a, b Tile, adj Pos) bool {
	return Shift(Mask(a, adj), adj) == Mask(b, Pos{-adj.X, -adj.Y})
}
