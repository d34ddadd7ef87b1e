package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/ui"
	"github.com/mattn/go-runewidth"
	"sigs.k8s.io/yaml"
)

// RowsDocument is the machine-readable form of a processed page.
type RowsDocument struct {
	Columns   []string    `json:"columns"`
	Rows      []grid.Row  `json:"rows"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	PageCount int         `json:"pageCount"`
	Widths    grid.Widths `json:"widths,omitempty"`
}

// WidthEntry is one row of the width report.
type WidthEntry struct {
	Column  string          `json:"column"`
	Type    grid.ColumnType `json:"type"`
	Minimum float64         `json:"minimum"`
	Pixels  float64         `json:"pixels"`
	Cells   int             `json:"cells"`
}

// WidthReport lists the allocation for each column in display order.
type WidthReport struct {
	Container float64      `json:"container"`
	Available float64      `json:"available"`
	Total     float64      `json:"total"`
	Columns   []WidthEntry `json:"columns"`
}

// NewWidthReport pairs the allocated widths with the columns they belong to.
func NewWidthReport(req grid.WidthRequest, widths grid.Widths, vp ui.Viewport) WidthReport {
	report := WidthReport{
		Container: req.ContainerWidth,
		Available: grid.AvailableWidth(req.ContainerWidth, req.ShowCheckboxes, req.Plugins),
		Total:     widths.Total(),
	}
	for _, col := range req.Columns {
		report.Columns = append(report.Columns, WidthEntry{
			Column:  col.Key,
			Type:    col.Type,
			Minimum: grid.TypeMinimum(col.Type),
			Pixels:  widths[col.Key],
			Cells:   vp.Cells(widths[col.Key]),
		})
	}
	return report
}

// WriteWidthReport prints the report as an aligned text table.
func WriteWidthReport(out io.Writer, report WidthReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %8s %10s %6s\n", padCell("COLUMN", 24), padCell("TYPE", 16), "MINIMUM", "PIXELS", "CELLS")
	for _, e := range report.Columns {
		fmt.Fprintf(&b, "%s %s %8s %10s %6d\n",
			padCell(e.Column, 24), padCell(string(e.Type), 16), formatPixels(e.Minimum), formatPixels(e.Pixels), e.Cells)
	}
	fmt.Fprintf(&b, "container %s px, available %s px, allocated %s px\n",
		formatPixels(report.Container), formatPixels(report.Available), formatPixels(report.Total))
	_, err := io.WriteString(out, b.String())
	return err
}

// padCell trims s to width terminal cells and pads it with spaces to exactly
// that display width.
func padCell(s string, width int) string {
	return runewidth.FillRight(trimToWidth(s, width), width)
}

func formatPixels(px float64) string {
	return grid.Number(px).Text()
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EncodeYAML writes v as YAML. Values go through their JSON encoding first,
// so wrapped cells keep their {"value": ...} shape.
func EncodeYAML(out io.Writer, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = out.Write(raw)
	return err
}

// Encode dispatches on format ("json" or "yaml").
func Encode(out io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		return EncodeJSON(out, v)
	case "yaml":
		return EncodeYAML(out, v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
