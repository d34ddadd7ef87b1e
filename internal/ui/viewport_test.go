package ui

import (
	"bytes"
	"testing"
)

func TestDetectViewportFallsBackToEnv(t *testing.T) {
	t.Setenv("COLUMNS", "100")
	v := DetectViewport(&bytes.Buffer{}, 8)
	if v.Columns != 100 {
		t.Fatalf("columns = %d, want 100", v.Columns)
	}
	if v.WidthPixels() != 800 {
		t.Fatalf("pixels = %v, want 800", v.WidthPixels())
	}
}

func TestDetectViewportDefault(t *testing.T) {
	t.Setenv("COLUMNS", "garbage")
	if v := DetectViewport(&bytes.Buffer{}, 8); v.Columns != FallbackColumns {
		t.Fatalf("columns = %d, want %d", v.Columns, FallbackColumns)
	}
}

func TestViewportCells(t *testing.T) {
	v := Viewport{Columns: 80, PixelsPerCell: 8}
	cases := map[float64]int{0: 1, 7.9: 1, 8: 1, 100: 12, 936: 117}
	for px, want := range cases {
		if got := v.Cells(px); got != want {
			t.Fatalf("Cells(%v) = %d, want %d", px, got, want)
		}
	}
}

func TestIsTerminalWriterBuffer(t *testing.T) {
	if IsTerminalWriter(&bytes.Buffer{}) {
		t.Fatalf("buffer is not a terminal")
	}
}
