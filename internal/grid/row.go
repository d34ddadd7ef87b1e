package grid

import "sort"

// Row maps column keys to cells. A key that is absent reads as Null.
type Row map[string]Cell

// Get returns the cell at key, or Null when the row has none.
func (r Row) Get(key string) Cell {
	if r == nil {
		return Null()
	}
	return r[key]
}

// Keys returns the row's keys in lexical order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the row. Cells are values; wrapper
// metadata maps are shared.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RowFromMap builds a row from decoded JSON/YAML values.
func RowFromMap(m map[string]any) Row {
	row := make(Row, len(m))
	for k, v := range m {
		row[k] = CellOf(v)
	}
	return row
}
