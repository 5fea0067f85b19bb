// Package observer implements the observe half of the observe/propagate
// loop: scanning the Wave for the most constrained undecided cell and
// collapsing it to one pattern, weighted by pattern frequency.
package observer

import (
	"github.com/tilebound/wfc/pattern"
	"github.com/tilebound/wfc/rng"
	"github.com/tilebound/wfc/tile"
	"github.com/tilebound/wfc/wave"
)

// Outcome is the result of a single Observe call.
type Outcome int

const (
	// Continue means a cell was collapsed; Pos names it so the caller
	// can propagate from there.
	Continue Outcome = iota
	// Finished means every cell is already decided.
	Finished
	// Restart means a contradiction (empty bitmap) was found.
	Restart
)

// Result is the outcome of one Observe call.
type Result struct {
	Outcome Outcome
	Pos     tile.Pos
}

// Scratch is a reusable pair of buffers collapse uses to build the
// allowed-pattern-ids/counts arrays it hands to rng.WeightedPick, sized
// once to patterns.Len() and reused across every Observe call so
// collapsing never allocates on the step hot path.
type Scratch struct {
	ids    []int
	counts []uint32
}

// NewScratch allocates a Scratch sized for patterns.
func NewScratch(patterns *pattern.Table) *Scratch {
	return &Scratch{
		ids:    make([]int, 0, patterns.Len()),
		counts: make([]uint32, 0, patterns.Len()),
	}
}

// Observe scans w in row-major order for the lowest-weight cell among
// those with more than one allowed pattern, breaking ties uniformly at
// random via reservoir sampling, then collapses that cell to a single
// pattern chosen with count-weighted probability and clears every other
// bit there.
//
// Cells with exactly one allowed pattern are skipped for selection
// purposes but still checked for contradiction (weight 0): a decided cell
// can never have weight 0 since every pattern's count is strictly
// positive, so this only ever fires for genuinely empty bitmaps.
func Observe(w *wave.Wave, patterns *pattern.Table, r *rng.Xorshift32, scratch *Scratch) Result {
	res := rng.NewReservoir(r)
	minWeight := ^uint64(0)
	any := false

	width, height := w.Width(), w.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			weight := w.Weight(x, y, patterns)
			if weight == 0 {
				return Result{Outcome: Restart, Pos: tile.Pos{X: x, Y: y}}
			}

			if w.PopCountAllowed(x, y) <= 1 {
				continue
			}

			any = true
			idx := x + y*width
			switch {
			case weight < minWeight:
				minWeight = weight
				res = rng.NewReservoir(r)
				res.Offer(idx)
			case weight == minWeight:
				res.Offer(idx)
			}
		}
	}

	if !any {
		return Result{Outcome: Finished}
	}

	flat, ok := res.Value()
	if !ok {
		// Unreachable: any == true implies at least one Offer happened.
		return Result{Outcome: Finished}
	}
	pos := tile.Pos{X: flat % width, Y: flat / width}

	collapse(w, patterns, r, pos, scratch)

	return Result{Outcome: Continue, Pos: pos}
}

// collapse picks one allowed pattern at pos with probability proportional
// to its exemplar count, and clears every other allowed pattern there.
// Iteration is in ascending pattern-index order so the draw's meaning
// doesn't depend on map/slice iteration order elsewhere in the program.
// scratch's ids/counts are rebuilt in place (no allocation) and handed to
// rng.WeightedPick, which does the actual proportional draw.
func collapse(w *wave.Wave, patterns *pattern.Table, r *rng.Xorshift32, pos tile.Pos, scratch *Scratch) {
	ids := scratch.ids[:0]
	counts := scratch.counts[:0]
	var total uint64
	for p := 0; p < patterns.Len(); p++ {
		if !w.Allowed(pos.X, pos.Y, p) {
			continue
		}
		ids = append(ids, p)
		c := patterns.At(p).Count
		counts = append(counts, c)
		total += uint64(c)
	}

	chosen := ids[rng.WeightedPick(r, counts, total)]

	for _, p := range ids {
		if p != chosen {
			w.Clear(pos.X, pos.Y, p)
		}
	}
}
