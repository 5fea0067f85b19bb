// Package adjacency defines the fixed 8-neighbourhood used by the
// propagator and compatibility index: a reproducible ordering of offsets,
// each direction's opposite, and toroidal wrapping.
package adjacency

import "github.com/tilebound/wfc/tile"

// Dir identifies one of the 8 directions. The zero value is the first in
// the fixed ordering; values must never be reordered or renumbered once
// published, since CompatibilityIndex bit positions key off Dir's
// numeric value.
type Dir uint8

const (
	UpLeft Dir = iota
	Up
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	NumDirs
)

var names = map[Dir]string{
	UpLeft: "UpLeft", Up: "Up", UpRight: "UpRight", Right: "Right",
	DownRight: "DownRight", Down: "Down", DownLeft: "DownLeft", Left: "Left",
}

func (d Dir) String() string {
	if n, ok := names[d]; ok {
		return n
	}
	return "Dir(?)"
}

// offsets is the fixed ordering mandated by spec.md: {(-1,-1), (-1,0),
// (-1,1), (0,1), (1,1), (1,0), (1,-1), (0,-1)}. The names above don't read
// as a literal compass (Up is (-1,0), not (0,-1)) because they're carried
// over from the ordering's origin rather than chosen for directionality;
// what matters is the fixed order, not the label.
var offsets = [NumDirs]tile.Pos{
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
}

// Offset returns the (dx, dy) offset for direction d.
func Offset(d Dir) tile.Pos {
	return offsets[d]
}

// Opposite returns the direction whose offset is the negation of d's:
// offset(Opposite(d)) == -offset(d). The fixed ordering happens to place
// every direction's opposite exactly NumDirs/2 positions further around,
// not at the mirrored end of the list.
func Opposite(d Dir) Dir {
	return (d + NumDirs/2) % NumDirs
}

// Wrap returns pos+offset, wrapped toroidally into [0,width) x [0,height).
func Wrap(pos, offset tile.Pos, width, height int) tile.Pos {
	x := pos.X + offset.X
	if x < 0 {
		x += width
	}
	x %= width

	y := pos.Y + offset.Y
	if y < 0 {
		y += height
	}
	y %= height

	return tile.Pos{X: x, Y: y}
}
