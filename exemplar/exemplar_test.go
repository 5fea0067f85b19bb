package exemplar

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadTextGrid(t *testing.T) {
	path := writeTemp(t, "checker.txt", "01\n10\n")

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Width != 2 || g.Height != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", g.Width, g.Height)
	}
	want := []uint8{0, 1, 1, 0}
	for i := range want {
		if g.Cells[i] != want[i] {
			t.Errorf("cell %d = %d, want %d", i, g.Cells[i], want[i])
		}
	}
}

func TestLoadTextGridHexNibbles(t *testing.T) {
	path := writeTemp(t, "s6.txt", "0000\n0111\n0121\n0111\n")

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Width != 4 || g.Height != 4 {
		t.Fatalf("dims = %dx%d, want 4x4", g.Width, g.Height)
	}
	if g.Cells[2*4+2] != 2 {
		t.Errorf("center cell = %d, want 2", g.Cells[2*4+2])
	}
}

func TestLoadTextGridRejectsRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.txt", "01\n1\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestLoadTextGridRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.txt", "")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestLoadTextGridRejectsInvalidDigit(t *testing.T) {
	path := writeTemp(t, "bad.txt", "0g\n10\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid hex digit")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
