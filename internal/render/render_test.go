package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/ui"
	"github.com/pmezard/go-difflib/difflib"
)

func assertText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	t.Fatalf("output mismatch:\n%s", diff)
}

func tripColumns() []grid.ColumnConfig {
	return []grid.ColumnConfig{
		{Key: "trip", Label: "Trip", Type: grid.ColumnText},
		{Key: "status", Type: grid.ColumnBadge},
	}
}

func tripRows() []grid.Row {
	return []grid.Row{
		{
			"trip":   grid.String("Lyon to Turin"),
			"status": grid.Wrap(grid.String("Confirmed"), map[string]any{"color": "green"}),
		},
		{
			"trip":   grid.String("Geneva to Milan via Simplon Pass"),
			"status": grid.Null(),
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, Table{
		Columns:  tripColumns(),
		Widths:   grid.Widths{"trip": 160, "status": 120},
		Rows:     tripRows(),
		Viewport: ui.Viewport{Columns: 80, PixelsPerCell: 8},
	})
	if err != nil {
		t.Fatalf("write table: %v", err)
	}
	want := fmt.Sprintf("%-20s%s\n", "TRIP", "STATUS") +
		fmt.Sprintf("%-20s%s\n", "Lyon to Turin", "Confirmed") +
		fmt.Sprintf("%-20s%s\n", "Geneva to Milan vi…", "-")
	assertText(t, want, buf.String())
}

func TestWriteTableReservedColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, Table{
		Columns:        tripColumns(),
		Widths:         grid.Widths{"trip": 64, "status": 120},
		Rows:           tripRows()[:1],
		Viewport:       ui.Viewport{Columns: 80, PixelsPerCell: 8},
		ShowCheckboxes: true,
		RowActions:     true,
	})
	if err != nil {
		t.Fatalf("write table: %v", err)
	}
	want := fmt.Sprintf("%-6s%-8s%-15s%s\n", "", "TRIP", "STATUS", "ACTIONS") +
		fmt.Sprintf("%-6s%-8s%-15s%s\n", "[ ]", "Lyon t…", "Confirmed", "...")
	assertText(t, want, buf.String())
}

func TestWriteTableBadgeColors(t *testing.T) {
	render := func(badges bool) string {
		var buf bytes.Buffer
		err := WriteTable(&buf, Table{
			Columns:     tripColumns(),
			Widths:      grid.Widths{"trip": 160, "status": 120},
			Rows:        tripRows(),
			Viewport:    ui.Viewport{Columns: 80, PixelsPerCell: 8},
			Colorize:    true,
			BadgeColors: badges,
		})
		if err != nil {
			t.Fatalf("write table: %v", err)
		}
		return buf.String()
	}
	colored := render(true)
	if !strings.Contains(colored, "\x1b[32mConfirmed\x1b[") {
		t.Fatalf("expected green badge, got %q", colored)
	}
	if !strings.Contains(colored, "\x1b[1mTRIP\x1b[") {
		t.Fatalf("expected bold header, got %q", colored)
	}
	if plain := render(false); strings.Contains(plain, "\x1b[32m") {
		t.Fatalf("badge colours should be off, got %q", plain)
	}
}

func TestWriteTableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, Table{
		Columns:   tripColumns()[:1],
		Widths:    grid.Widths{"trip": 160},
		Rows:      tripRows()[:1],
		Viewport:  ui.Viewport{Columns: 80, PixelsPerCell: 8},
		NoHeaders: true,
	})
	if err != nil {
		t.Fatalf("write table: %v", err)
	}
	assertText(t, "Lyon to Turin\n", buf.String())
}

func TestTrimToWidth(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"x", 0, ""},
		{"wide", 1, "…"},
	}
	for _, tc := range cases {
		if got := trimToWidth(tc.in, tc.width); got != tc.want {
			t.Fatalf("trimToWidth(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestWidthReport(t *testing.T) {
	req := grid.WidthRequest{Columns: tripColumns(), ContainerWidth: 500}
	widths := grid.Allocate(req)
	vp := ui.Viewport{Columns: 62, PixelsPerCell: 8}
	report := NewWidthReport(req, widths, vp)
	if report.Available != 436 {
		t.Fatalf("available = %v, want 436", report.Available)
	}
	if len(report.Columns) != 2 {
		t.Fatalf("expected two entries, got %d", len(report.Columns))
	}
	for _, e := range report.Columns {
		if e.Pixels != widths[e.Column] || e.Cells != vp.Cells(widths[e.Column]) {
			t.Fatalf("entry %+v disagrees with widths %v", e, widths)
		}
	}
	if report.Columns[1].Minimum != 100 {
		t.Fatalf("badge minimum = %v", report.Columns[1].Minimum)
	}
	var buf bytes.Buffer
	if err := WriteWidthReport(&buf, report); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(buf.String(), "container 500 px, available 436 px") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestWidthReportAlignsWideColumnKeys(t *testing.T) {
	report := WidthReport{Container: 400, Available: 336, Total: 336, Columns: []WidthEntry{
		{Column: "行程", Type: grid.ColumnText, Minimum: 80, Pixels: 200, Cells: 25},
		{Column: "trip", Type: grid.ColumnText, Minimum: 80, Pixels: 136, Cells: 17},
	}}
	var buf bytes.Buffer
	if err := WriteWidthReport(&buf, report); err != nil {
		t.Fatalf("write report: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if want := "行程" + strings.Repeat(" ", 20) + " text"; !strings.HasPrefix(lines[1], want) {
		t.Fatalf("wide key row = %q, want prefix %q", lines[1], want)
	}
	if want := "trip" + strings.Repeat(" ", 20) + " text"; !strings.HasPrefix(lines[2], want) {
		t.Fatalf("ascii key row = %q, want prefix %q", lines[2], want)
	}
}

func TestEncodeKeepsWrappedCells(t *testing.T) {
	doc := RowsDocument{
		Columns:   []string{"trip", "status"},
		Rows:      tripRows()[:1],
		Total:     1,
		PageCount: 1,
	}
	var js bytes.Buffer
	if err := Encode(&js, "json", doc); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"value": "Confirmed"`) {
		t.Fatalf("json lost the wrapper:\n%s", js.String())
	}
	var ym bytes.Buffer
	if err := Encode(&ym, "yaml", doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "value: Confirmed") || !strings.Contains(ym.String(), "color: green") {
		t.Fatalf("yaml lost the wrapper:\n%s", ym.String())
	}
	if err := Encode(&bytes.Buffer{}, "xml", doc); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
