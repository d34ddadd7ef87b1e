package grid

// Fixed allowances subtracted from the container before columns are sized.
const (
	PaddingAllowance  = 64
	CheckboxAllowance = 50
	ActionsAllowance  = 100
)

// Plugin is a grid extension. Plugins that contribute per-row action buttons
// reserve an actions column.
type Plugin interface {
	Name() string
	ProvidesRowActions() bool
}

// PluginSpec is a static Plugin description, as loaded from configuration.
type PluginSpec struct {
	ID         string `json:"id" yaml:"id"`
	RowActions bool   `json:"rowActions,omitempty" yaml:"rowActions,omitempty"`
}

func (p PluginSpec) Name() string             { return p.ID }
func (p PluginSpec) ProvidesRowActions() bool { return p.RowActions }

// WidthRequest is the input to Allocate. ContainerWidth is supplied by the
// caller; the allocator never measures the viewport itself.
type WidthRequest struct {
	Columns        []ColumnConfig
	ShowCheckboxes bool
	Plugins        []Plugin
	Preferences    Preferences
	CustomWidths   map[string]float64
	ContainerWidth float64
	// UseConfiguredWidths lets ColumnConfig.Width act as a default beneath
	// preferences. Off, the configured width is ignored.
	UseConfiguredWidths bool
}

// Widths maps column keys to pixel widths.
type Widths map[string]float64

// Total sums the widths.
func (w Widths) Total() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// AvailableWidth is the container width left for data columns once padding,
// the checkbox column and the row actions column are taken out.
func AvailableWidth(container float64, showCheckboxes bool, plugins []Plugin) float64 {
	avail := container - PaddingAllowance
	if showCheckboxes {
		avail -= CheckboxAllowance
	}
	if HasRowActions(plugins) {
		avail -= ActionsAllowance
	}
	return avail
}

// HasRowActions reports whether any plugin adds per-row action buttons.
func HasRowActions(plugins []Plugin) bool {
	for _, p := range plugins {
		if p != nil && p.ProvidesRowActions() {
			return true
		}
	}
	return false
}

// BaseWidth returns the width of col before slack is shared out. Custom
// widths are taken verbatim; preferred and configured widths never go below
// the column type's minimum.
func BaseWidth(col ColumnConfig, req WidthRequest) float64 {
	if w, ok := req.CustomWidths[col.Key]; ok {
		return w
	}
	minimum := TypeMinimum(col.Type)
	if w, ok := req.Preferences.ColumnWidths[col.Key]; ok {
		return max(minimum, w)
	}
	if req.UseConfiguredWidths && col.Width > 0 {
		return max(minimum, col.Width)
	}
	return minimum
}

// Allocate assigns a width to every column in req.Columns. When the base
// widths leave part of the available width unused, the remainder is shared
// out in proportion to each column's base width. Widths are not rounded.
func Allocate(req WidthRequest) Widths {
	widths := make(Widths, len(req.Columns))
	var total float64
	for _, col := range req.Columns {
		w := BaseWidth(col, req)
		widths[col.Key] = w
		total += w
	}

	remainder := AvailableWidth(req.ContainerWidth, req.ShowCheckboxes, req.Plugins) - total
	if remainder <= 0 || total <= 0 {
		return widths
	}
	for key, w := range widths {
		widths[key] = w + remainder*w/total
	}
	return widths
}
