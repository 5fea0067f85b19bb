package observer

import (
	"testing"

	"github.com/tilebound/wfc/pattern"
	"github.com/tilebound/wfc/rng"
	"github.com/tilebound/wfc/wave"
)

func TestObserveFinishedWhenAllDecided(t *testing.T) {
	tbl, err := pattern.Extract(2, 2, []uint8{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	w := wave.New(2, 2, tbl.Len())
	r, _ := rng.New(7)

	res := Observe(w, tbl, r, NewScratch(tbl))
	if res.Outcome != Finished {
		t.Fatalf("Outcome = %v, want Finished (single pattern, every cell trivially decided)", res.Outcome)
	}
}

func TestObserveRestartOnContradiction(t *testing.T) {
	tbl, err := pattern.Extract(2, 2, []uint8{0, 1, 1, 0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	w := wave.New(1, 1, tbl.Len())
	w.Clear(0, 0, 0)
	w.Clear(0, 0, 1)
	w.Clear(0, 0, 2)
	w.Clear(0, 0, 3)
	r, _ := rng.New(7)

	res := Observe(w, tbl, r, NewScratch(tbl))
	if res.Outcome != Restart {
		t.Fatalf("Outcome = %v, want Restart", res.Outcome)
	}
}

func TestObserveCollapsesToSinglePattern(t *testing.T) {
	tbl, err := pattern.Extract(4, 4, []uint8{
		0, 0, 0, 0,
		0, 1, 1, 1,
		0, 1, 2, 1,
		0, 1, 1, 1,
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	w := wave.New(3, 3, tbl.Len())
	r, _ := rng.New(42)

	res := Observe(w, tbl, r, NewScratch(tbl))
	if res.Outcome != Continue {
		t.Fatalf("Outcome = %v, want Continue", res.Outcome)
	}
	if _, ok := w.SolePattern(res.Pos.X, res.Pos.Y); !ok {
		t.Errorf("cell (%d,%d) was not left with exactly one allowed pattern", res.Pos.X, res.Pos.Y)
	}
}

func TestObserveDeterministic(t *testing.T) {
	cells := []uint8{
		0, 0, 0, 0,
		0, 1, 1, 1,
		0, 1, 2, 1,
		0, 1, 1, 1,
	}
	run := func() (int, int, int) {
		tbl, err := pattern.Extract(4, 4, cells)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		w := wave.New(5, 5, tbl.Len())
		r, _ := rng.New(123)
		res := Observe(w, tbl, r, NewScratch(tbl))
		p, _ := w.SolePattern(res.Pos.X, res.Pos.Y)
		return res.Pos.X, res.Pos.Y, p
	}
	x1, y1, p1 := run()
	x2, y2, p2 := run()
	if x1 != x2 || y1 != y2 || p1 != p2 {
		t.Errorf("non-deterministic: (%d,%d,%d) vs (%d,%d,%d)", x1, y1, p1, x2, y2, p2)
	}
}
