// Package compat builds and queries the compatibility index: a dense
// bitmap answering, for a pattern p placed next to direction d, which
// patterns q are permitted there.
//
// The index is materialised as a flat byte array rather than a sparse
// structure because the pattern universe is small (tens to low hundreds)
// and the propagator's inner loop needs cheap bitwise OR across an
// "any supporter" set — exactly the tradeoff mos6502's flat opcode table
// makes over a more "structured" dispatch.
package compat

import (
	"math/bits"

	"github.com/tilebound/wfc/adjacency"
	"github.com/tilebound/wfc/pattern"
	"github.com/tilebound/wfc/tile"
)

// Index is the Patterns x 8 x Patterns compatibility bitmap.
type Index struct {
	numPatterns int
	rowBytes    int // ceil(numPatterns/8), one pattern's worth of bits
	data        []byte
}

func rowBytes(numPatterns int) int {
	return (numPatterns + 7) / 8
}

func (idx *Index) offset(p int, d adjacency.Dir) int {
	stride := idx.rowBytes * int(adjacency.NumDirs)
	return p*stride + int(d)*idx.rowBytes
}

// Allowed reports whether placing pattern q at direction d from a cell
// holding pattern p keeps the patterns mutually consistent.
func (idx *Index) Allowed(p int, d adjacency.Dir, q int) bool {
	base := idx.offset(p, d)
	return idx.data[base+q/8]&(1<<uint(q%8)) != 0
}

func (idx *Index) set(p int, d adjacency.Dir, q int) {
	base := idx.offset(p, d)
	idx.data[base+q/8] |= 1 << uint(q%8)
}

// NumPatterns returns the size of the pattern universe this index covers.
func (idx *Index) NumPatterns() int { return idx.numPatterns }

// RowBytes returns the number of bytes in one (pattern, direction) row —
// i.e. one bit per pattern, rounded up.
func (idx *Index) RowBytes() int { return idx.rowBytes }

// Supporters returns the raw row bitmap of patterns q for which
// Allowed(p, d, q) holds, as a byte slice of length RowBytes(). Callers
// must not mutate the returned slice.
func (idx *Index) Supporters(p int, d adjacency.Dir) []byte {
	base := idx.offset(p, d)
	return idx.data[base : base+idx.rowBytes]
}

// Build constructs the compatibility index for every pair of patterns in
// the table, across all 8 directions. It exploits the index's symmetry
// (Allowed(p,d,q) == Allowed(q,opp(d),p)) to do half the tilesOverlap
// work: for p <= q it computes the bit once and sets both entries.
func Build(patterns *pattern.Table) *Index {
	n := patterns.Len()
	rb := rowBytes(n)
	idx := &Index{
		numPatterns: n,
		rowBytes:    rb,
		data:        make([]byte, n*int(adjacency.NumDirs)*rb),
	}

	for p := 0; p < n; p++ {
		pt := patterns.At(p).Tile
		for d := adjacency.Dir(0); d < adjacency.NumDirs; d++ {
			off := adjacency.Offset(d)
			opp := adjacency.Opposite(d)
			for q := p; q < n; q++ {
				qt := patterns.At(q).Tile
				if tile.Overlap(pt, qt, off) {
					idx.set(p, d, q)
					idx.set(q, opp, p)
				}
			}
		}
	}

	return idx
}

// PopCount8 returns the number of set bits in a single supporter row byte
// slice, summed across the slice. Exposed for tests and for callers that
// want an entropy-style count without walking individual bits.
func PopCount8(row []byte) int {
	n := 0
	for _, b := range row {
		n += bits.OnesCount8(b)
	}
	return n
}

// OrRows ORs src into dst in place; both must have the same length
// (Index.RowBytes()). This is the "union of supporters" step the
// propagator performs once per (source cell, direction).
func OrRows(dst, src []byte) {
	for i := range dst {
		dst[i] |= src[i]
	}
}
