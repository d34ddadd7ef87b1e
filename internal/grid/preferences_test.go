package grid

import (
	"reflect"
	"testing"
)

func TestVisibleColumnsOrderAndHidden(t *testing.T) {
	cols := []ColumnConfig{{Key: "trip"}, {Key: "status"}, {Key: "driver"}, {Key: "eta"}, {Key: "stops"}}
	prefs := Preferences{
		ColumnOrder:   []string{"eta", "ghost", "trip", "eta"},
		HiddenColumns: []string{"driver", "missing"},
	}
	got := ColumnKeys(VisibleColumns(cols, prefs))
	want := []string{"eta", "trip", "status", "stops"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestVisibleColumnsWithoutPreferences(t *testing.T) {
	cols := []ColumnConfig{{Key: "a"}, {Key: "b"}}
	if got := ColumnKeys(VisibleColumns(cols, Preferences{})); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}

func TestPreferencesCopyOnWrite(t *testing.T) {
	base := Preferences{ColumnWidths: map[string]float64{"a": 100}}
	next := base.WithColumnWidth("b", 200)
	if _, ok := base.ColumnWidths["b"]; ok {
		t.Fatalf("WithColumnWidth mutated the receiver")
	}
	if next.ColumnWidths["a"] != 100 || next.ColumnWidths["b"] != 200 {
		t.Fatalf("unexpected widths %v", next.ColumnWidths)
	}

	hidden := base.WithHidden("b", true).WithHidden("a", true)
	if !reflect.DeepEqual(hidden.HiddenColumns, []string{"a", "b"}) {
		t.Fatalf("hidden = %v", hidden.HiddenColumns)
	}
	shown := hidden.WithHidden("a", false).WithHidden("b", false)
	if shown.HiddenColumns != nil {
		t.Fatalf("expected no hidden columns, got %v", shown.HiddenColumns)
	}
	if !(Preferences{}).IsZero() || next.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
