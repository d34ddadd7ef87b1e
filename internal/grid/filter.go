package grid

import "strings"

// Operator names a column filter comparison.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpGT         Operator = "gt"
	OpLT         Operator = "lt"
	OpGTE        Operator = "gte"
	OpLTE        Operator = "lte"
)

// FilterConfig restricts rows to those whose cell at Column satisfies
// Operator against Value. An empty Operator means contains.
type FilterConfig struct {
	Column   string   `json:"column"`
	Value    Cell     `json:"value"`
	Operator Operator `json:"operator,omitempty"`
}

type matchFunc func(cell, want Cell) bool

// matchers is the single dispatch point for operators. An operator missing
// from this table matches every row (fail open, intentional).
var matchers = map[Operator]matchFunc{
	OpEquals:     textMatch(func(have, want string) bool { return have == want }),
	OpContains:   textMatch(strings.Contains),
	OpStartsWith: textMatch(strings.HasPrefix),
	OpEndsWith:   textMatch(strings.HasSuffix),
	OpGT:         numericMatch(func(have, want float64) bool { return have > want }),
	OpLT:         numericMatch(func(have, want float64) bool { return have < want }),
	OpGTE:        numericMatch(func(have, want float64) bool { return have >= want }),
	OpLTE:        numericMatch(func(have, want float64) bool { return have <= want }),
}

func textMatch(cmp func(have, want string) bool) matchFunc {
	return func(cell, want Cell) bool {
		return cmp(strings.ToLower(cell.Text()), strings.ToLower(want.Text()))
	}
}

// NaN on either side fails every comparison.
func numericMatch(cmp func(have, want float64) bool) matchFunc {
	return func(cell, want Cell) bool {
		return cmp(cell.Numeric(), want.Numeric())
	}
}

// KnownOperator reports whether op has a dedicated comparison.
func KnownOperator(op Operator) bool {
	_, ok := matchers[op.orDefault()]
	return ok
}

// Operators lists the supported operators in display order.
func Operators() []Operator {
	return []Operator{OpEquals, OpContains, OpStartsWith, OpEndsWith, OpGT, OpLT, OpGTE, OpLTE}
}

func (op Operator) orDefault() Operator {
	if op == "" {
		return OpContains
	}
	return op
}

// Matches reports whether row passes the filter. A row without a value at
// the filter's column never passes, whatever the operator.
func (f FilterConfig) Matches(row Row) bool {
	cell := row.Get(f.Column)
	if cell.IsNull() {
		return false
	}
	match, ok := matchers[f.Operator.orDefault()]
	if !ok {
		// Unknown operator: fail open.
		return true
	}
	return match(cell, f.Value)
}

// MatchesAll reports whether row passes every filter.
func MatchesAll(row Row, filters []FilterConfig) bool {
	for _, f := range filters {
		if !f.Matches(row) {
			return false
		}
	}
	return true
}

// MatchesGlobal reports whether any of the given keys holds a value whose
// text contains needle, ignoring case. needle must already be lowercased.
func MatchesGlobal(row Row, keys []string, needle string) bool {
	for _, key := range keys {
		if strings.Contains(strings.ToLower(row.Get(key).Text()), needle) {
			return true
		}
	}
	return false
}
