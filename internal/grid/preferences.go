package grid

import "k8s.io/apimachinery/pkg/util/sets"

// Preferences is the per-user grid state persisted between sessions.
type Preferences struct {
	ColumnWidths  map[string]float64 `json:"columnWidths,omitempty" yaml:"columnWidths,omitempty"`
	ColumnOrder   []string           `json:"columnOrder,omitempty" yaml:"columnOrder,omitempty"`
	HiddenColumns []string           `json:"hiddenColumns,omitempty" yaml:"hiddenColumns,omitempty"`
	PageSize      int                `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
	Sort          *SortConfig        `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// IsZero reports whether no preference is set.
func (p Preferences) IsZero() bool {
	return len(p.ColumnWidths) == 0 && len(p.ColumnOrder) == 0 &&
		len(p.HiddenColumns) == 0 && p.PageSize == 0 && p.Sort == nil
}

// WithColumnWidth returns a copy of p with key set to width.
func (p Preferences) WithColumnWidth(key string, width float64) Preferences {
	widths := make(map[string]float64, len(p.ColumnWidths)+1)
	for k, v := range p.ColumnWidths {
		widths[k] = v
	}
	widths[key] = width
	p.ColumnWidths = widths
	return p
}

// WithHidden returns a copy of p with key hidden or shown.
func (p Preferences) WithHidden(key string, hidden bool) Preferences {
	set := sets.New(p.HiddenColumns...)
	if hidden {
		set.Insert(key)
	} else {
		set.Delete(key)
	}
	p.HiddenColumns = sets.List(set)
	if len(p.HiddenColumns) == 0 {
		p.HiddenColumns = nil
	}
	return p
}

// VisibleColumns drops hidden columns and applies the preferred order.
// Ordered keys come first, the rest keep configuration order. Keys in the
// preferences that match no column are ignored.
func VisibleColumns(cols []ColumnConfig, prefs Preferences) []ColumnConfig {
	hidden := sets.New(prefs.HiddenColumns...)
	byKey := make(map[string]ColumnConfig, len(cols))
	for _, c := range cols {
		if hidden.Has(c.Key) {
			continue
		}
		byKey[c.Key] = c
	}

	out := make([]ColumnConfig, 0, len(byKey))
	placed := sets.New[string]()
	for _, key := range prefs.ColumnOrder {
		c, ok := byKey[key]
		if !ok || placed.Has(key) {
			continue
		}
		placed.Insert(key)
		out = append(out, c)
	}
	for _, c := range cols {
		if _, ok := byKey[c.Key]; !ok || placed.Has(c.Key) {
			continue
		}
		placed.Insert(c.Key)
		out = append(out, c)
	}
	return out
}
