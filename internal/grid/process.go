package grid

import "strings"

// ProcessOptions carries the grid state applied by Process.
type ProcessOptions struct {
	// GlobalFilter keeps rows where any column contains the text, ignoring case.
	GlobalFilter string
	// Filters must all pass for a row to stay.
	Filters []FilterConfig
	// Sort orders the surviving rows; nil keeps input order.
	Sort *SortConfig
	// Columns are the keys searched by GlobalFilter. When empty every key
	// present in a row is searched.
	Columns []ColumnConfig
	// ServerDriven means a remote fetch already filtered and sorted the rows.
	ServerDriven bool
}

// ProcessStats counts rows after each pass.
type ProcessStats struct {
	Input        int
	AfterGlobal  int
	AfterFilters int
	Sorted       bool
	ServerDriven bool
}

// Process applies the global filter, the column filters and the sort, in
// that order, and returns the resulting rows. The input slice is never
// reordered; in server-driven mode it is returned as is.
func Process(rows []Row, opts ProcessOptions) []Row {
	out, _ := ProcessWithStats(rows, opts)
	return out
}

// ProcessWithStats is Process plus per-pass row counts.
func ProcessWithStats(rows []Row, opts ProcessOptions) ([]Row, ProcessStats) {
	stats := ProcessStats{Input: len(rows)}
	if opts.ServerDriven {
		stats.AfterGlobal = len(rows)
		stats.AfterFilters = len(rows)
		stats.ServerDriven = true
		return rows, stats
	}

	out := make([]Row, len(rows))
	copy(out, rows)

	if opts.GlobalFilter != "" {
		needle := strings.ToLower(opts.GlobalFilter)
		keys := ColumnKeys(opts.Columns)
		out = keep(out, func(r Row) bool {
			if len(keys) == 0 {
				return MatchesGlobal(r, r.Keys(), needle)
			}
			return MatchesGlobal(r, keys, needle)
		})
	}
	stats.AfterGlobal = len(out)

	if len(opts.Filters) > 0 {
		out = keep(out, func(r Row) bool { return MatchesAll(r, opts.Filters) })
	}
	stats.AfterFilters = len(out)

	if opts.Sort != nil && opts.Sort.Column != "" {
		SortRows(out, *opts.Sort)
		stats.Sorted = true
	}
	return out, stats
}

// keep filters rows in place; rows must be a private copy.
func keep(rows []Row, pred func(Row) bool) []Row {
	n := 0
	for _, r := range rows {
		if pred(r) {
			rows[n] = r
			n++
		}
	}
	for i := n; i < len(rows); i++ {
		rows[i] = nil
	}
	return rows[:n]
}

// Paginate returns page (zero based) of rows. A non-positive size returns
// every row; pages past the end are empty.
func Paginate(rows []Row, page, size int) []Row {
	if size <= 0 {
		return rows
	}
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(rows) {
		return []Row{}
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns how many pages of size hold n rows.
func PageCount(n, size int) int {
	if size <= 0 || n == 0 {
		return 1
	}
	return (n + size - 1) / size
}
