// Package dataset reads grid rows and column configuration from JSON or YAML.
package dataset

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/tripgrid/internal/grid"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Format names the encoding of a dataset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Dataset is a grid document: optional column configuration plus rows.
type Dataset struct {
	Columns []grid.ColumnConfig `json:"columns,omitempty"`
	Rows    []grid.Row          `json:"rows"`
}

// FormatForPath picks the format from the file extension. "-" reads YAML
// from stdin, which also accepts JSON.
func FormatForPath(path string) (Format, error) {
	if path == "-" {
		return FormatYAML, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%s (expected .json, .yaml or .yml)", path)
	}
}

// Load reads a dataset from path ("-" for stdin).
func Load(path string, stdin io.Reader) (*Dataset, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := readSource(path, stdin)
	if err != nil {
		return nil, err
	}
	ds, err := Decode(raw, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode dataset %s", path)
	}
	return ds, nil
}

// LoadColumns reads a column configuration file: a list of columns or a
// document with a "columns" key.
func LoadColumns(path string) ([]grid.ColumnConfig, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := readSource(path, os.Stdin)
	if err != nil {
		return nil, err
	}
	data, err := toJSON(raw, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode columns %s", path)
	}
	var cols []grid.ColumnConfig
	if isArray(data) {
		err = json.Unmarshal(data, &cols)
	} else {
		var doc struct {
			Columns []grid.ColumnConfig `json:"columns"`
		}
		err = json.Unmarshal(data, &doc)
		cols = doc.Columns
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode columns %s", path)
	}
	return normalizeColumns(cols)
}

// Decode parses a dataset document. A top-level list is treated as rows with
// no column configuration.
func Decode(raw []byte, format Format) (*Dataset, error) {
	data, err := toJSON(raw, format)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{}
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ds, nil
	}
	if isArray(data) {
		if err := json.Unmarshal(data, &ds.Rows); err != nil {
			return nil, errors.Wrap(err, "rows")
		}
	} else if err := json.Unmarshal(data, ds); err != nil {
		return nil, err
	}
	for i, row := range ds.Rows {
		if row == nil {
			ds.Rows[i] = grid.Row{}
		}
	}
	cols, err := normalizeColumns(ds.Columns)
	if err != nil {
		return nil, err
	}
	ds.Columns = cols
	return ds, nil
}

// InferColumns returns text columns for every key found in rows, sorted.
func InferColumns(rows []grid.Row) []grid.ColumnConfig {
	seen := map[string]struct{}{}
	var keys []string
	for _, row := range rows {
		for _, k := range row.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	cols := make([]grid.ColumnConfig, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, grid.ColumnConfig{Key: k, Type: grid.ColumnText, Sortable: true, Filterable: true})
	}
	return cols
}

func normalizeColumns(cols []grid.ColumnConfig) ([]grid.ColumnConfig, error) {
	seen := make(map[string]struct{}, len(cols))
	for i := range cols {
		cols[i].Key = strings.TrimSpace(cols[i].Key)
		if cols[i].Key == "" {
			return nil, errors.Errorf("column %d has no key", i)
		}
		if _, dup := seen[cols[i].Key]; dup {
			return nil, errors.Errorf("duplicate column key %q", cols[i].Key)
		}
		seen[cols[i].Key] = struct{}{}
		cols[i].Type = grid.ParseColumnType(string(cols[i].Type))
		if cols[i].Width < 0 {
			return nil, errors.Errorf("column %q has a negative width", cols[i].Key)
		}
	}
	return cols, nil
}

func toJSON(raw []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return raw, nil
	case FormatYAML:
		out, err := yaml.YAMLToJSON(raw)
		if err != nil {
			return nil, errors.Wrap(err, "yaml")
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		raw, err := io.ReadAll(stdin)
		return raw, errors.Wrap(err, "read stdin")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return raw, nil
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
