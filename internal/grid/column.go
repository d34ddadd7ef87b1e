package grid

import "strings"

// ColumnType selects how a column is displayed and how narrow it may get.
type ColumnType string

const (
	ColumnText            ColumnType = "text"
	ColumnBadge           ColumnType = "badge"
	ColumnDate            ColumnType = "date"
	ColumnDateTimeRange   ColumnType = "dateTimeRange"
	ColumnLink            ColumnType = "link"
	ColumnExpandableCount ColumnType = "expandableCount"
	ColumnEditableText    ColumnType = "editableText"
)

// ColumnConfig describes one grid column. Key joins the column to row cells,
// filters, sorts and width mappings and must be unique within a column set.
type ColumnConfig struct {
	Key        string     `json:"key" yaml:"key"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Type       ColumnType `json:"type,omitempty" yaml:"type,omitempty"`
	Sortable   bool       `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Filterable bool       `json:"filterable,omitempty" yaml:"filterable,omitempty"`
	Width      float64    `json:"width,omitempty" yaml:"width,omitempty"`
}

// Title returns the header text for the column.
func (c ColumnConfig) Title() string {
	if strings.TrimSpace(c.Label) != "" {
		return c.Label
	}
	return c.Key
}

var typeMinimums = map[ColumnType]float64{
	ColumnBadge:           100,
	ColumnDate:            140,
	ColumnDateTimeRange:   200,
	ColumnLink:            150,
	ColumnExpandableCount: 90,
	ColumnText:            120,
	ColumnEditableText:    120,
}

const defaultTypeMinimum = 120

// TypeMinimum returns the narrowest width a column of type t is laid out at.
// Unknown types share the text minimum.
func TypeMinimum(t ColumnType) float64 {
	if w, ok := typeMinimums[normalizeColumnType(t)]; ok {
		return w
	}
	return defaultTypeMinimum
}

// ParseColumnType accepts the camelCase names as well as kebab/snake spellings
// ("date-time-range", "expandable_count") and any casing.
func ParseColumnType(raw string) ColumnType {
	return normalizeColumnType(ColumnType(raw))
}

func normalizeColumnType(t ColumnType) ColumnType {
	key := strings.ToLower(strings.TrimSpace(string(t)))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "", "text":
		return ColumnText
	case "badge":
		return ColumnBadge
	case "date":
		return ColumnDate
	case "datetimerange":
		return ColumnDateTimeRange
	case "link":
		return ColumnLink
	case "expandablecount":
		return ColumnExpandableCount
	case "editabletext":
		return ColumnEditableText
	default:
		return t
	}
}

// ColumnKeys returns the keys of cols in order.
func ColumnKeys(cols []ColumnConfig) []string {
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	return keys
}

// FindColumn returns the column with the given key.
func FindColumn(cols []ColumnConfig, key string) (ColumnConfig, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnConfig{}, false
}
