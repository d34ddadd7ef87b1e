// cell.go defines the tagged cell value stored at each row/column intersection.

// Package grid implements the SmartGrid data pipeline: row filtering and
// sorting, visible column resolution, and pixel width allocation for the
// trip, route and product tables.
package grid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the scalar held by a Cell.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Cell is the value held by one row at one column key. Wrapped cells carry
// display metadata next to the scalar; every comparison uses the scalar only.
type Cell struct {
	kind    Kind
	str     string
	num     float64
	boolean bool

	// Wrapped reports that the cell was supplied as {"value": ..., ...}.
	Wrapped bool
	// Meta holds the wrapper's remaining fields (labels, colours, links).
	Meta map[string]any
}

// Null returns the empty cell.
func Null() Cell { return Cell{} }

// String returns a cell holding s.
func String(s string) Cell { return Cell{kind: KindString, str: s} }

// Number returns a cell holding f.
func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

// Bool returns a cell holding b.
func Bool(b bool) Cell { return Cell{kind: KindBool, boolean: b} }

// Wrap marks c as a wrapped value with the given display metadata.
func Wrap(c Cell, meta map[string]any) Cell {
	c.Wrapped = true
	c.Meta = meta
	return c
}

// Kind reports which scalar the cell holds.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Float returns the numeric payload and whether the cell is a number.
func (c Cell) Float() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// Text renders the scalar the way the grid displays and searches it. Null
// renders as the empty string.
func (c Cell) Text() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return formatNumber(c.num)
	case KindBool:
		return strconv.FormatBool(c.boolean)
	default:
		return ""
	}
}

func (c Cell) String() string { return c.Text() }

// Equal reports strict equality of the scalars: same kind and same value.
// NaN is never equal to anything, itself included.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindString:
		return c.str == o.str
	case KindNumber:
		return c.num == o.num
	case KindBool:
		return c.boolean == o.boolean
	default:
		return true
	}
}

// Numeric coerces the scalar to a number: null and blank strings are 0,
// booleans are 0 or 1, unparsable strings are NaN.
func (c Cell) Numeric() float64 {
	switch c.kind {
	case KindNumber:
		return c.num
	case KindBool:
		if c.boolean {
			return 1
		}
		return 0
	case KindString:
		s := strings.TrimSpace(c.str)
		if s == "" {
			return 0
		}
		return parseNumber(s)
	default:
		return 0
	}
}

// Value returns the scalar as a plain Go value (nil, string, float64, bool).
func (c Cell) Value() any {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return c.num
	case KindBool:
		return c.boolean
	default:
		return nil
	}
}

// CellOf converts a decoded JSON/YAML value into a Cell. Maps carrying a
// "value" key become wrapped cells; other composite values are stringified.
func CellOf(v any) Cell {
	switch t := v.(type) {
	case nil:
		return Null()
	case Cell:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}
		return Number(f)
	case map[string]any:
		inner, ok := t["value"]
		if !ok {
			return String(fmt.Sprint(t))
		}
		meta := make(map[string]any, len(t)-1)
		for k, val := range t {
			if k == "value" {
				continue
			}
			meta[k] = val
		}
		if len(meta) == 0 {
			meta = nil
		}
		return Wrap(CellOf(inner), meta)
	default:
		return String(fmt.Sprint(t))
	}
}

// UnmarshalJSON decodes scalars and {"value": ...} wrappers.
func (c *Cell) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*c = CellOf(normalizeNumbers(raw))
	return nil
}

// MarshalJSON writes the scalar, or the wrapper object for wrapped cells.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Wrapped {
		return json.Marshal(c.jsonScalar())
	}
	out := make(map[string]any, len(c.Meta)+1)
	for k, v := range c.Meta {
		out[k] = v
	}
	out["value"] = c.jsonScalar()
	return json.Marshal(out)
}

func (c Cell) jsonScalar() any {
	if c.kind == KindNumber && (math.IsNaN(c.num) || math.IsInf(c.num, 0)) {
		return nil
	}
	return c.Value()
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	default:
		return v
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		// Exponent form for very large or small magnitudes, with the
		// exponent unpadded: 1e+21, 1e-7.
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "_") || strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return math.NaN()
	}
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return float64(n)
		}
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}
