// File: internal/ui/viewport.go
// Brief: Internal ui package implementation for 'viewport width'.

package ui

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// FallbackColumns is used when the output is not a terminal and $COLUMNS is unset.
const FallbackColumns = 120

type fdProvider interface {
	Fd() uintptr
}

// IsTerminalWriter reports whether w writes to a terminal.
func IsTerminalWriter(w io.Writer) bool {
	if v, ok := w.(fdProvider); ok {
		return term.IsTerminal(int(v.Fd()))
	}
	return false
}

// TerminalWidth reports the width in cells of the terminal behind w.
func TerminalWidth(w io.Writer) (int, bool) {
	if v, ok := w.(fdProvider); ok {
		if cols, _, err := term.GetSize(int(v.Fd())); err == nil && cols > 0 {
			return cols, true
		}
	}
	return 0, false
}

// Viewport converts between terminal cells and grid pixels.
type Viewport struct {
	Columns       int
	PixelsPerCell float64
}

// DetectViewport measures the terminal behind w, falling back to $COLUMNS
// and then FallbackColumns.
func DetectViewport(w io.Writer, pixelsPerCell float64) Viewport {
	cols, ok := TerminalWidth(w)
	if !ok {
		cols = columnsFromEnv()
	}
	return Viewport{Columns: cols, PixelsPerCell: pixelsPerCell}
}

// WidthPixels is the container width handed to the allocator.
func (v Viewport) WidthPixels() float64 {
	return float64(v.Columns) * v.PixelsPerCell
}

// Cells converts a pixel width to whole terminal cells, never below 1.
func (v Viewport) Cells(px float64) int {
	if v.PixelsPerCell <= 0 {
		return max(1, int(px))
	}
	return max(1, int(px/v.PixelsPerCell))
}

func columnsFromEnv() int {
	if raw := strings.TrimSpace(os.Getenv("COLUMNS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return FallbackColumns
}
