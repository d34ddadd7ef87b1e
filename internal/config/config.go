// File: internal/config/config.go
// Brief: Internal config package implementation for 'config'.

// Package config defines the flag plumbing shared by tripgrid's commands,
// translating Cobra/Viper flag values into the grid options the row
// processor and the width allocator consume.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/tripgrid/internal/grid"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

// ErrInvalidFilter is returned for --filter values that name no column.
var ErrInvalidFilter = errors.New("invalid filter")

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"

	BackendSQLite = "sqlite"
	BackendFile   = "file"

	DefaultPixelsPerCell = 8
	DefaultGridID        = "trips"
)

// Options holds all CLI configuration for a grid invocation.
type Options struct {
	RowsPath        string
	ColumnsPath     string
	GlobalFilter    string
	FilterArgs      []string
	SortArg         string
	ServerDriven    bool
	ShowCheckboxes  bool
	PluginArgs      []string
	CustomWidthArgs map[string]string
	ContainerWidth  float64
	PixelsPerCell   float64
	Page            int
	PageSize        int
	OutputFormat    string
	ColorMode       string
	PrefsBackend    string
	PrefsPath       string
	User            string
	GridID          string
	NoPreferences   bool

	Filters      []grid.FilterConfig
	Sort         *grid.SortConfig
	CustomWidths map[string]float64
	Plugins      []grid.Plugin
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		PixelsPerCell: DefaultPixelsPerCell,
		OutputFormat:  OutputTable,
		ColorMode:     "auto",
		PrefsBackend:  BackendSQLite,
		GridID:        DefaultGridID,
	}
}

// BindFlags attaches grid flags to an arbitrary FlagSet and returns the flag names.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.StringVarP(&o.RowsPath, "rows", "r", "", "Path to a JSON or YAML dataset with rows (and optionally columns)")
	names = append(names, "rows")
	fs.StringVarP(&o.ColumnsPath, "columns", "c", "", "Path to a JSON or YAML column configuration (overrides columns in the dataset)")
	names = append(names, "columns")
	fs.StringVarP(&o.GlobalFilter, "search", "s", "", "Keep rows where any column contains this text (case-insensitive)")
	names = append(names, "search")
	fs.StringArrayVarP(&o.FilterArgs, "filter", "f", nil, "Column filter COLUMN:OPERATOR:VALUE or COLUMN:VALUE (contains); repeat to AND filters")
	names = append(names, "filter")
	fs.StringVar(&o.SortArg, "sort", "", "Sort by COLUMN or COLUMN:desc")
	names = append(names, "sort")
	fs.BoolVar(&o.ServerDriven, "server-driven", false, "Rows were filtered and sorted by the server; skip local processing")
	names = append(names, "server-driven")
	fs.BoolVar(&o.ShowCheckboxes, "checkboxes", false, "Reserve the row selection checkbox column")
	names = append(names, "checkboxes")
	fs.StringSliceVar(&o.PluginArgs, "plugin", nil, "Enabled grid plugins as ID or ID:actions for plugins that add row actions")
	names = append(names, "plugin")
	fs.StringToStringVar(&o.CustomWidthArgs, "width", nil, "Explicit column widths in pixels, e.g. --width trip=180,status=90")
	names = append(names, "width")
	fs.Float64Var(&o.ContainerWidth, "container-width", 0, "Container width in pixels (0 derives it from the terminal)")
	names = append(names, "container-width")
	fs.Float64Var(&o.PixelsPerCell, "pixels-per-cell", DefaultPixelsPerCell, "Pixels represented by one terminal cell")
	names = append(names, "pixels-per-cell")
	fs.IntVar(&o.Page, "page", 0, "Zero-based page to print")
	names = append(names, "page")
	fs.IntVar(&o.PageSize, "page-size", 0, "Rows per page (0 uses the saved preference, or prints every row)")
	names = append(names, "page-size")
	fs.StringVarP(&o.OutputFormat, "output", "o", OutputTable, "Output format: table, json, yaml")
	names = append(names, "output")
	fs.StringVar(&o.ColorMode, "color", "auto", "Colorize output: auto, always, never")
	names = append(names, "color")
	fs.StringVar(&o.PrefsBackend, "prefs-backend", BackendSQLite, "Preference store: sqlite or file")
	names = append(names, "prefs-backend")
	fs.StringVar(&o.PrefsPath, "prefs", "", "Preference store path (defaults to ~/.tripgrid/prefs.db or prefs.yaml)")
	names = append(names, "prefs")
	fs.StringVar(&o.User, "user", "", "User whose grid preferences are applied (defaults to $USER)")
	names = append(names, "user")
	fs.StringVar(&o.GridID, "grid", DefaultGridID, "Grid identifier preferences are stored under")
	names = append(names, "grid")
	fs.BoolVar(&o.NoPreferences, "no-prefs", false, "Ignore stored preferences")
	names = append(names, "no-prefs")
	return names
}

// Validate parses the raw flag values into grid configuration.
func (o *Options) Validate() error {
	o.OutputFormat = strings.ToLower(strings.TrimSpace(o.OutputFormat))
	switch o.OutputFormat {
	case "", OutputTable:
		o.OutputFormat = OutputTable
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output %q (expected table, json, or yaml)", o.OutputFormat)
	}
	switch strings.ToLower(o.ColorMode) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto, always, or never)", o.ColorMode)
	}
	o.PrefsBackend = strings.ToLower(strings.TrimSpace(o.PrefsBackend))
	switch o.PrefsBackend {
	case "", BackendSQLite:
		o.PrefsBackend = BackendSQLite
	case BackendFile:
	default:
		return fmt.Errorf("unsupported prefs backend %q (expected sqlite or file)", o.PrefsBackend)
	}
	if o.PixelsPerCell <= 0 {
		return fmt.Errorf("--pixels-per-cell must be positive")
	}
	if o.ContainerWidth < 0 {
		return fmt.Errorf("--container-width must not be negative")
	}
	if o.Page < 0 || o.PageSize < 0 {
		return fmt.Errorf("--page and --page-size must not be negative")
	}
	if strings.TrimSpace(o.GridID) == "" {
		o.GridID = DefaultGridID
	}

	o.Filters = o.Filters[:0]
	for _, raw := range o.FilterArgs {
		f, err := ParseFilter(raw)
		if err != nil {
			return err
		}
		o.Filters = append(o.Filters, f)
	}
	sortCfg, err := ParseSort(o.SortArg)
	if err != nil {
		return err
	}
	o.Sort = sortCfg
	widths, err := ParseWidths(o.CustomWidthArgs)
	if err != nil {
		return err
	}
	o.CustomWidths = widths
	o.Plugins = ParsePlugins(o.PluginArgs)

	for _, p := range []*string{&o.RowsPath, &o.ColumnsPath, &o.PrefsPath} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ParseFilter parses COLUMN:OPERATOR:VALUE or COLUMN:VALUE. The middle part
// is an operator only when it names one (or an alias); otherwise everything
// after the column is a contains value, so times and URLs keep their colons.
func ParseFilter(raw string) (grid.FilterConfig, error) {
	parts := strings.SplitN(raw, ":", 3)
	column := strings.TrimSpace(parts[0])
	if column == "" || len(parts) < 2 {
		return grid.FilterConfig{}, fmt.Errorf("%w %q: expected COLUMN:OPERATOR:VALUE or COLUMN:VALUE", ErrInvalidFilter, raw)
	}
	if len(parts) == 3 {
		if op, ok := lookupOperator(strings.TrimSpace(parts[1])); ok {
			return grid.FilterConfig{Column: column, Operator: op, Value: grid.String(parts[2])}, nil
		}
	}
	value := strings.Join(parts[1:], ":")
	return grid.FilterConfig{Column: column, Operator: grid.OpContains, Value: grid.String(value)}, nil
}

var operatorAliases = map[string]grid.Operator{
	"=":          grid.OpEquals,
	"==":         grid.OpEquals,
	"eq":         grid.OpEquals,
	"~":          grid.OpContains,
	"startswith": grid.OpStartsWith,
	"prefix":     grid.OpStartsWith,
	"endswith":   grid.OpEndsWith,
	"suffix":     grid.OpEndsWith,
	">":          grid.OpGT,
	"<":          grid.OpLT,
	">=":         grid.OpGTE,
	"<=":         grid.OpLTE,
}

func lookupOperator(raw string) (grid.Operator, bool) {
	if op := grid.Operator(raw); raw != "" && grid.KnownOperator(op) {
		return op, true
	}
	if alias, ok := operatorAliases[strings.ToLower(raw)]; ok {
		return alias, true
	}
	for _, op := range grid.Operators() {
		if strings.EqualFold(raw, string(op)) {
			return op, true
		}
	}
	return "", false
}

// ParseSort parses COLUMN or COLUMN:DIRECTION. An empty value means no sort.
func ParseSort(raw string) (*grid.SortConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	column, dir, _ := strings.Cut(raw, ":")
	column = strings.TrimSpace(column)
	if column == "" {
		return nil, fmt.Errorf("invalid sort %q: missing column", raw)
	}
	dir = strings.ToLower(strings.TrimSpace(dir))
	switch dir {
	case "", "asc", "ascending", "desc", "descending":
	default:
		return nil, fmt.Errorf("invalid sort direction %q (expected asc or desc)", dir)
	}
	return &grid.SortConfig{Column: column, Direction: grid.ParseDirection(dir)}, nil
}

// ParseWidths converts KEY=PIXELS pairs into custom widths.
func ParseWidths(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for key, val := range raw {
		key = strings.TrimSpace(key)
		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid width for column %q: %w", key, err)
		}
		if w < 0 {
			return nil, fmt.Errorf("invalid width for column %q: must not be negative", key)
		}
		out[key] = w
	}
	return out, nil
}

// ParsePlugins turns ID or ID:actions entries into plugin specs.
func ParsePlugins(raw []string) []grid.Plugin {
	var out []grid.Plugin
	for _, entry := range raw {
		id, flags, _ := strings.Cut(strings.TrimSpace(entry), ":")
		if id == "" {
			continue
		}
		spec := grid.PluginSpec{ID: id}
		for _, f := range strings.Split(flags, "+") {
			if strings.EqualFold(strings.TrimSpace(f), "actions") {
				spec.RowActions = true
			}
		}
		out = append(out, spec)
	}
	return out
}

// ExpandPath resolves a leading ~ and cleans the path. Empty stays empty.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

// DefaultPrefsPath returns the per-user preference store location for backend.
func DefaultPrefsPath(backend string) string {
	home, err := homedir.Dir()
	if err != nil || strings.TrimSpace(home) == "" {
		return ""
	}
	name := "prefs.db"
	if backend == BackendFile {
		name = "prefs.yaml"
	}
	return filepath.Join(home, ".tripgrid", name)
}
