package dataset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/tripgrid/internal/grid"
)

func TestLoadYAMLDataset(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "trips.yaml"), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Columns) != 4 || len(ds.Rows) != 3 {
		t.Fatalf("unexpected shape: %d columns, %d rows", len(ds.Columns), len(ds.Rows))
	}
	if ds.Columns[3].Type != grid.ColumnExpandableCount || ds.Columns[3].Width != 110 {
		t.Fatalf("seats column = %+v", ds.Columns[3])
	}
	status := ds.Rows[0].Get("status")
	if !status.Wrapped || status.Text() != "Confirmed" || status.Meta["color"] != "green" {
		t.Fatalf("wrapped status = %+v", status)
	}
	if seats, ok := ds.Rows[1].Get("seats").Float(); !ok || seats != 12 {
		t.Fatalf("seats = %v, %v", seats, ok)
	}
	if !ds.Rows[2].Get("status").IsNull() {
		t.Fatalf("expected null status")
	}
	if got := ds.Rows[0].Get("departure"); got.Kind() != grid.KindString {
		t.Fatalf("quoted date should stay a string, got %v", got.Kind())
	}
}

func TestLoadJSONRowsArray(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "rows.json"), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Columns) != 0 || len(ds.Rows) != 3 {
		t.Fatalf("unexpected shape: %+v", ds)
	}
	if ds.Rows[0].Get("active").Kind() != grid.KindBool {
		t.Fatalf("active should decode as bool")
	}
	if ds.Rows[1].Get("price").Kind() != grid.KindString {
		t.Fatalf("quoted price should stay a string")
	}
	if ds.Rows[2] == nil {
		t.Fatalf("empty row should decode to an empty map")
	}
	cols := InferColumns(ds.Rows)
	if got := strings.Join(grid.ColumnKeys(cols), ","); got != "active,notes,price,trip" {
		t.Fatalf("inferred columns = %s", got)
	}
}

func TestLoadStdin(t *testing.T) {
	ds, err := Load("-", strings.NewReader(`{"rows": [{"trip": "Basel"}]}`))
	if err != nil {
		t.Fatalf("load stdin: %v", err)
	}
	if len(ds.Rows) != 1 || ds.Rows[0].Get("trip").Text() != "Basel" {
		t.Fatalf("rows = %+v", ds.Rows)
	}
}

func TestLoadColumns(t *testing.T) {
	cols, err := LoadColumns(filepath.Join("testdata", "columns.json"))
	if err != nil {
		t.Fatalf("load columns: %v", err)
	}
	if len(cols) != 2 || cols[1].Type != grid.ColumnEditableText || cols[1].Width != 130 {
		t.Fatalf("columns = %+v", cols)
	}
	if cols[0].Title() != "Trip" {
		t.Fatalf("title = %s", cols[0].Title())
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Load("trips.csv", nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeRejectsBadColumns(t *testing.T) {
	cases := map[string]string{
		"missing key": "columns:\n  - type: text\n",
		"duplicate":   "columns:\n  - key: a\n  - key: a\n",
		"negative":    "columns:\n  - key: a\n    width: -1\n",
	}
	for name, doc := range cases {
		if _, err := Decode([]byte(doc), FormatYAML); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	ds, err := Decode([]byte(""), FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Fatalf("expected no rows")
	}
}
