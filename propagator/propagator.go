// Package propagator implements worklist-driven constraint propagation:
// after a cell collapses, remove neighbour pattern bits no longer
// supported by the current Wave, fanning out until the wave reaches a
// fixpoint or a contradiction is found.
package propagator

import (
	"github.com/tilebound/wfc/adjacency"
	"github.com/tilebound/wfc/compat"
	"github.com/tilebound/wfc/tile"
	"github.com/tilebound/wfc/wave"
)

// Outcome is the result of a Propagate call.
type Outcome int

const (
	// Done means propagation reached a fixpoint with no contradiction.
	Done Outcome = iota
	// Restart means some cell's possibility set went empty.
	Restart
)

// Worklist is the LIFO stack of cells pending re-propagation. It's
// allocated once (capacity = output width * height, per spec.md's
// resource model) and reused across every Propagate call so propagation
// never allocates on the hot path.
type Worklist struct {
	items []tile.Pos
}

// NewWorklist allocates an empty worklist with room for capacity items
// without growing.
func NewWorklist(capacity int) *Worklist {
	return &Worklist{items: make([]tile.Pos, 0, capacity)}
}

func (wl *Worklist) push(p tile.Pos) {
	wl.items = append(wl.items, p)
}

func (wl *Worklist) pop() tile.Pos {
	n := len(wl.items) - 1
	p := wl.items[n]
	wl.items = wl.items[:n]
	return p
}

func (wl *Worklist) empty() bool {
	return len(wl.items) == 0
}

// reset clears the worklist without shrinking its backing array.
func (wl *Worklist) reset() {
	wl.items = wl.items[:0]
}

// Scratch is a reusable supporter-union buffer, sized to one compat.Index
// row (RowBytes), reused across Propagate calls for the same reason as
// Worklist.
type Scratch struct {
	buf []byte
}

// NewScratch allocates a Scratch sized for idx.
func NewScratch(idx *compat.Index) *Scratch {
	return &Scratch{buf: make([]byte, idx.RowBytes())}
}

// Propagate pushes origin onto wl (reset first) and, while it's
// non-empty, pops a cell and checks every one of its 8 neighbours: for
// each neighbour, the set of patterns it still allows is intersected
// with the union of supporter bitmaps (OR'd across every pattern still
// allowed at the popped cell) for that direction, using scratch as the
// union accumulator. If the neighbour's bitmap actually shrank, it's
// pushed for its own re-propagation. If it goes empty, propagation stops
// immediately with Restart.
//
// Worklist order (LIFO) and adjacency iteration order are both fixed so
// the trajectory of intermediate states is deterministic, even though the
// final fixpoint doesn't depend on either choice.
func Propagate(w *wave.Wave, idx *compat.Index, origin tile.Pos, wl *Worklist, scratch *Scratch) Outcome {
	wl.reset()
	wl.push(origin)

	for !wl.empty() {
		cur := wl.pop()

		for d := adjacency.Dir(0); d < adjacency.NumDirs; d++ {
			nb := adjacency.Wrap(cur, adjacency.Offset(d), w.Width(), w.Height())

			buf := scratch.buf
			for i := range buf {
				buf[i] = 0
			}
			for p := 0; p < idx.NumPatterns(); p++ {
				if w.Allowed(cur.X, cur.Y, p) {
					compat.OrRows(buf, idx.Supporters(p, d))
				}
			}

			changed := false
			empty := true
			nbRow := w.Row(nb.X, nb.Y)
			for i := range nbRow {
				before := nbRow[i]
				after := before & buf[i]
				if after != before {
					changed = true
				}
				if after != 0 {
					empty = false
				}
				nbRow[i] = after
			}

			if empty {
				return Restart
			}
			if changed {
				wl.push(nb)
			}
		}
	}

	return Done
}
