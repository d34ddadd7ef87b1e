// Package render prints processed grid rows as a terminal table or as
// JSON/YAML documents.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/ui"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const (
	nullText    = "-"
	checkboxBox = "[ ]"
	actionsText = "..."
)

// Table describes one terminal rendering of the grid.
type Table struct {
	Columns        []grid.ColumnConfig
	Widths         grid.Widths
	Rows           []grid.Row
	Viewport       ui.Viewport
	ShowCheckboxes bool
	RowActions     bool
	NoHeaders      bool
	// Colorize enables ANSI styling (bold headers, badge colours).
	Colorize bool
	// BadgeColors colours badge cells from their "color" metadata.
	BadgeColors bool
}

type tableColumn struct {
	header string
	cells  int
	value  func(grid.Row) (plain string, styled string)
}

// WriteTable renders t to out. Every column takes the number of terminal
// cells its pixel width covers; values that do not fit are cut with an
// ellipsis.
func WriteTable(out io.Writer, t Table) error {
	cols := t.layout()
	var b strings.Builder
	if !t.NoHeaders {
		plain := make([]string, len(cols))
		styled := make([]string, len(cols))
		bold := t.style(color.Bold)
		for i, c := range cols {
			plain[i] = trimToWidth(c.header, c.cells-1)
			styled[i] = plain[i]
			if plain[i] != "" {
				styled[i] = bold(plain[i])
			}
		}
		writeLine(&b, cols, plain, styled)
	}
	for _, row := range t.Rows {
		plain := make([]string, len(cols))
		styled := make([]string, len(cols))
		for i, c := range cols {
			plain[i], styled[i] = c.value(row)
		}
		writeLine(&b, cols, plain, styled)
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func (t Table) layout() []tableColumn {
	var cols []tableColumn
	if t.ShowCheckboxes {
		cols = append(cols, tableColumn{
			cells: t.Viewport.Cells(grid.CheckboxAllowance),
			value: func(grid.Row) (string, string) { return checkboxBox, checkboxBox },
		})
	}
	for _, col := range t.Columns {
		col := col
		cells := t.Viewport.Cells(t.Widths[col.Key])
		cols = append(cols, tableColumn{
			header: strings.ToUpper(col.Title()),
			cells:  cells,
			value: func(row grid.Row) (string, string) {
				cell := row.Get(col.Key)
				plain := trimToWidth(displayText(cell), cells-1)
				return plain, t.styleCell(col, cell, plain)
			},
		})
	}
	if t.RowActions {
		cells := t.Viewport.Cells(grid.ActionsAllowance)
		cols = append(cols, tableColumn{
			header: "ACTIONS",
			cells:  cells,
			value:  func(grid.Row) (string, string) { return actionsText, actionsText },
		})
	}
	return cols
}

func writeLine(b *strings.Builder, cols []tableColumn, plain, styled []string) {
	var line strings.Builder
	for i, c := range cols {
		line.WriteString(styled[i])
		if i == len(cols)-1 {
			break
		}
		pad := c.cells - runewidth.StringWidth(plain[i])
		if pad < 1 {
			pad = 1
		}
		line.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteString("\n")
}

func displayText(c grid.Cell) string {
	if c.IsNull() {
		return nullText
	}
	text := strings.ReplaceAll(c.Text(), "\n", " ")
	return strings.TrimSpace(text)
}

var badgePalette = map[string]color.Attribute{
	"green":   color.FgGreen,
	"success": color.FgGreen,
	"red":     color.FgRed,
	"danger":  color.FgRed,
	"error":   color.FgRed,
	"yellow":  color.FgYellow,
	"warning": color.FgYellow,
	"orange":  color.FgYellow,
	"blue":    color.FgBlue,
	"info":    color.FgBlue,
	"cyan":    color.FgCyan,
	"magenta": color.FgMagenta,
	"purple":  color.FgMagenta,
	"gray":    color.FgHiBlack,
	"grey":    color.FgHiBlack,
}

func (t Table) styleCell(col grid.ColumnConfig, cell grid.Cell, plain string) string {
	if !t.Colorize || !t.BadgeColors || col.Type != grid.ColumnBadge || !cell.Wrapped {
		return plain
	}
	name, _ := cell.Meta["color"].(string)
	attr, ok := badgePalette[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return plain
	}
	return t.style(attr)(plain)
}

func (t Table) style(attrs ...color.Attribute) func(...interface{}) string {
	if !t.Colorize {
		return fmt.Sprint
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

func trimToWidth(s string, width int) string {
	s = strings.TrimSpace(s)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}
