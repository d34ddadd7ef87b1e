package grid

import (
	"math"
	"sort"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps "asc"/"desc" (any case, "ascending"/"descending" too)
// to a Direction. Anything else is ascending.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// SortConfig orders rows by the cell at Column.
type SortConfig struct {
	Column    string    `json:"column" yaml:"column"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Compare orders two cells under a total order: Null first, then numbers
// compared numerically, then strings and booleans by the lexical order of
// their displayed text. Cells that are Equal compare as 0; NaN sorts before
// every other number.
func Compare(a, b Cell) int {
	if a.Equal(b) {
		return 0
	}
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankNull:
		return 0
	case rankNumber:
		return compareFloat(a.num, b.num)
	default:
		return strings.Compare(a.Text(), b.Text())
	}
}

const (
	rankNull = iota
	rankNumber
	rankText
)

func sortRank(c Cell) int {
	switch c.Kind() {
	case KindNull:
		return rankNull
	case KindNumber:
		return rankNumber
	default:
		return rankText
	}
}

func compareFloat(x, y float64) int {
	xNaN, yNaN := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return -1
	case yNaN:
		return 1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// SortRows stably sorts rows in place by cfg. Rows comparing equal keep
// their relative order in both directions.
func SortRows(rows []Row, cfg SortConfig) {
	desc := cfg.Direction == Descending
	sort.SliceStable(rows, func(i, j int) bool {
		c := Compare(rows[i].Get(cfg.Column), rows[j].Get(cfg.Column))
		if desc {
			return c > 0
		}
		return c < 0
	})
}
