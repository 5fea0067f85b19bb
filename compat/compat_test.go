package compat

import (
	"testing"

	"github.com/tilebound/wfc/adjacency"
	"github.com/tilebound/wfc/pattern"
)

func buildS1(t *testing.T) (*pattern.Table, *Index) {
	t.Helper()
	cells := []uint8{
		0, 0, 0, 0,
		0, 1, 1, 1,
		0, 1, 2, 1,
		0, 1, 1, 1,
	}
	tbl, err := pattern.Extract(4, 4, cells)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return tbl, Build(tbl)
}

func TestIndexSymmetry(t *testing.T) {
	tbl, idx := buildS1(t)
	n := tbl.Len()
	for p := 0; p < n; p++ {
		for d := adjacency.Dir(0); d < adjacency.NumDirs; d++ {
			for q := 0; q < n; q++ {
				got := idx.Allowed(p, d, q)
				want := idx.Allowed(q, adjacency.Opposite(d), p)
				if got != want {
					t.Errorf("Allowed(%d,%v,%d)=%v but Allowed(%d,%v,%d)=%v", p, d, q, got, q, adjacency.Opposite(d), p, want)
				}
			}
		}
	}
}

func TestIndexSelfConsistency(t *testing.T) {
	tbl, idx := buildS1(t)
	n := tbl.Len()
	for p := 0; p < n; p++ {
		for d := adjacency.Dir(0); d < adjacency.NumDirs; d++ {
			found := false
			for q := 0; q < n; q++ {
				if idx.Allowed(p, d, q) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("pattern %d has no supporter in direction %v", p, d)
			}
		}
	}
}

func TestIndexS2SingleTileAllOnes(t *testing.T) {
	tbl, err := pattern.Extract(2, 2, []uint8{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	idx := Build(tbl)
	if idx.NumPatterns() != 1 {
		t.Fatalf("got %d patterns, want 1", idx.NumPatterns())
	}
	for d := adjacency.Dir(0); d < adjacency.NumDirs; d++ {
		if !idx.Allowed(0, d, 0) {
			t.Errorf("direction %v: pattern 0 not self-compatible", d)
		}
	}
}

func TestIndexS3CheckerboardDiagonalForcesEquality(t *testing.T) {
	tbl, err := pattern.Extract(2, 2, []uint8{0, 1, 1, 0})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	idx := Build(tbl)
	n := tbl.Len()
	if n != 4 {
		t.Fatalf("got %d patterns, want 4", n)
	}
	for _, d := range []adjacency.Dir{adjacency.UpLeft, adjacency.DownRight} {
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				if idx.Allowed(p, d, q) && p != q {
					t.Errorf("direction %v: pattern %d compatible with distinct pattern %d, want only self", d, p, q)
				}
			}
		}
	}
}
