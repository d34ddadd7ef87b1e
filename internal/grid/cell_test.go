package grid

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCellTextFormatting(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
	}{
		{"null", Null(), ""},
		{"string", String("Open"), "Open"},
		{"integer", Number(80), "80"},
		{"fraction", Number(2.5), "2.5"},
		{"negative zero", Number(math.Copysign(0, -1)), "0"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"nan", Number(math.NaN()), "NaN"},
		{"large exponent", Number(1e21), "1e+21"},
		{"large mantissa", Number(123e25), "1.23e+27"},
		{"below 1e21", Number(1e20), "100000000000000000000"},
		{"small exponent", Number(1e-7), "1e-7"},
		{"small mantissa", Number(-1.5e-7), "-1.5e-7"},
		{"micro", Number(0.000001), "0.000001"},
		{"wrapped", Wrap(String("Closed"), map[string]any{"color": "red"}), "Closed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cell.Text(); got != tc.want {
				t.Fatalf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCellNumericCoercion(t *testing.T) {
	cases := []struct {
		cell Cell
		want float64
	}{
		{String("30"), 30},
		{String(" 42 "), 42},
		{String(""), 0},
		{String("1e3"), 1000},
		{String("0x10"), 16},
		{Bool(true), 1},
		{Bool(false), 0},
		{Null(), 0},
		{Number(-7.5), -7.5},
	}
	for _, tc := range cases {
		if got := tc.cell.Numeric(); got != tc.want {
			t.Fatalf("Numeric(%#v) = %v, want %v", tc.cell.Value(), got, tc.want)
		}
	}
	for _, raw := range []string{"abc", "12px", "1_000", "nan", "inf"} {
		if got := String(raw).Numeric(); !math.IsNaN(got) {
			t.Fatalf("Numeric(%q) = %v, want NaN", raw, got)
		}
	}
	if got := String("Infinity").Numeric(); !math.IsInf(got, 1) {
		t.Fatalf("Numeric(Infinity) = %v", got)
	}
}

func TestCellEqualIsStrict(t *testing.T) {
	if String("1").Equal(Number(1)) {
		t.Fatalf("string and number must not be equal")
	}
	if !Number(1).Equal(Number(1)) {
		t.Fatalf("equal numbers should be equal")
	}
	if Number(math.NaN()).Equal(Number(math.NaN())) {
		t.Fatalf("NaN must not equal itself")
	}
	if !Null().Equal(Null()) {
		t.Fatalf("nulls should be equal")
	}
	if !Wrap(String("a"), nil).Equal(String("a")) {
		t.Fatalf("wrapping must not affect equality")
	}
}

func TestCellUnmarshalJSON(t *testing.T) {
	var row map[string]Cell
	payload := `{"id":1,"status":{"value":"Open","color":"green"},"note":null,"paid":true,"eta":{"value":null}}`
	if err := json.Unmarshal([]byte(payload), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f, ok := row["id"].Float(); !ok || f != 1 {
		t.Fatalf("id = %#v", row["id"].Value())
	}
	status := row["status"]
	if !status.Wrapped || status.Text() != "Open" {
		t.Fatalf("status = %+v", status)
	}
	if status.Meta["color"] != "green" {
		t.Fatalf("status meta = %v", status.Meta)
	}
	if !row["note"].IsNull() {
		t.Fatalf("note should be null")
	}
	if row["paid"].Kind() != KindBool {
		t.Fatalf("paid kind = %s", row["paid"].Kind())
	}
	if !row["eta"].Wrapped || !row["eta"].IsNull() {
		t.Fatalf("eta should be a wrapped null")
	}
}

func TestCellMarshalJSONKeepsWrapper(t *testing.T) {
	in := Wrap(Number(3), map[string]any{"label": "3 stops"})
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Cell
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Wrapped || !out.Equal(in) || out.Meta["label"] != "3 stops" {
		t.Fatalf("wrapper lost: %s -> %+v", raw, out)
	}
}

func TestCellOfPlainMapWithoutValueIsText(t *testing.T) {
	c := CellOf(map[string]any{"lat": 1.5})
	if c.Wrapped || c.Kind() != KindString {
		t.Fatalf("expected stringified cell, got %+v", c)
	}
}
