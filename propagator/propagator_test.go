package propagator

import (
	"testing"

	"github.com/tilebound/wfc/adjacency"
	"github.com/tilebound/wfc/compat"
	"github.com/tilebound/wfc/pattern"
	"github.com/tilebound/wfc/tile"
	"github.com/tilebound/wfc/wave"
)

func TestPropagateS2SingleStepFinishes(t *testing.T) {
	tbl, err := pattern.Extract(2, 2, []uint8{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	idx := compat.Build(tbl)
	w := wave.New(4, 4, tbl.Len())
	wl := NewWorklist(w.Width() * w.Height())
	scratch := NewScratch(idx)

	// Only one pattern exists, so the wave is already decided everywhere;
	// propagating from any origin must never contradict.
	if out := Propagate(w, idx, tile.Pos{X: 0, Y: 0}, wl, scratch); out != Done {
		t.Fatalf("Propagate = %v, want Done", out)
	}
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			if _, ok := w.SolePattern(x, y); !ok {
				t.Errorf("(%d,%d) not decided after propagation", x, y)
			}
		}
	}
}

func TestPropagateNeverGainsBits(t *testing.T) {
	tbl, err := pattern.Extract(4, 4, []uint8{
		0, 0, 0, 0,
		0, 1, 1, 1,
		0, 1, 2, 1,
		0, 1, 1, 1,
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	idx := compat.Build(tbl)
	w := wave.New(6, 6, tbl.Len())
	wl := NewWorklist(w.Width() * w.Height())
	scratch := NewScratch(idx)

	before := snapshot(w)

	// Collapse one cell by hand to something other than "all patterns".
	w.Clear(2, 2, 0)
	Propagate(w, idx, tile.Pos{X: 2, Y: 2}, wl, scratch)

	after := snapshot(w)
	for i := range before {
		// after must be a subset of before: no bit may reappear.
		if after[i]&^before[i] != 0 {
			t.Fatalf("byte %d gained bits: before %08b after %08b", i, before[i], after[i])
		}
	}
}

func snapshot(w *wave.Wave) []byte {
	buf := make([]byte, 0, w.Width()*w.Height()*w.RowBytes())
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			buf = append(buf, w.Row(x, y)...)
		}
	}
	return buf
}

func TestPropagateArcConsistencyAtFixpoint(t *testing.T) {
	tbl, err := pattern.Extract(2, 2, []uint8{0, 1, 1, 0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	idx := compat.Build(tbl)
	w := wave.New(4, 4, tbl.Len())
	wl := NewWorklist(w.Width() * w.Height())
	scratch := NewScratch(idx)

	// Collapse (0,0) to pattern 0 and propagate to a fixpoint.
	for p := 1; p < tbl.Len(); p++ {
		w.Clear(0, 0, p)
	}
	if out := Propagate(w, idx, tile.Pos{X: 0, Y: 0}, wl, scratch); out == Restart {
		t.Fatal("unexpected contradiction")
	}

	checkArcConsistent(t, w, idx)
}

// checkArcConsistent verifies spec.md invariant 1: every allowed pattern
// at every cell has, in every direction, at least one supporter still
// allowed at the corresponding neighbour.
func checkArcConsistent(t *testing.T, w *wave.Wave, idx *compat.Index) {
	t.Helper()
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			for p := 0; p < idx.NumPatterns(); p++ {
				if !w.Allowed(x, y, p) {
					continue
				}
				for d := adjacency.Dir(0); d < adjacency.NumDirs; d++ {
					nb := adjacency.Wrap(tile.Pos{X: x, Y: y}, adjacency.Offset(d), w.Width(), w.Height())
					supported := false
					for q := 0; q < idx.NumPatterns(); q++ {
						if w.Allowed(nb.X, nb.Y, q) && idx.Allowed(p, d, q) {
							supported = true
							break
						}
					}
					if !supported {
						t.Errorf("cell (%d,%d) pattern %d has no supporter at neighbour (%d,%d) dir %v", x, y, p, nb.X, nb.Y, d)
					}
				}
			}
		}
	}
}
