// completion_helpers.go completes column keys for --sort, --filter and the prefs subcommands by reading the dataset named on the command line.
package main

import (
	"strings"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/dataset"
	"github.com/example/tripgrid/internal/grid"
	"github.com/spf13/cobra"
)

// registerColumnCompletion wires column-key completion into root's
// persistent flags and into the prefs subcommands that take columns.
func registerColumnCompletion(root *cobra.Command, opts *config.Options) {
	complete := func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeColumnKeys(opts, toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
	if root.PersistentFlags().Lookup("sort") != nil {
		_ = root.RegisterFlagCompletionFunc("sort", complete)
	}
	if root.PersistentFlags().Lookup("filter") != nil {
		_ = root.RegisterFlagCompletionFunc("filter", func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if column, rest, ok := strings.Cut(toComplete, ":"); ok && !strings.Contains(rest, ":") {
				return completeFilterOperators(column, rest), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
			}
			return completeColumnKeys(opts, toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
		})
	}
	for _, sub := range root.Commands() {
		if sub.Name() != "prefs" {
			continue
		}
		for _, leaf := range sub.Commands() {
			switch leaf.Name() {
			case "set-width", "hide", "show", "order", "sort":
				leaf.ValidArgsFunction = complete
			}
		}
	}
}

func completeColumnKeys(opts *config.Options, toComplete string) []string {
	cols := completionColumns(opts)
	var out []string
	for _, key := range grid.ColumnKeys(cols) {
		if toComplete == "" || strings.HasPrefix(key, toComplete) {
			out = append(out, key)
		}
	}
	return out
}

// completeFilterOperators offers COLUMN:OPERATOR: for each operator that
// starts with the partial operator text.
func completeFilterOperators(column, partial string) []string {
	var out []string
	for _, op := range grid.Operators() {
		if strings.HasPrefix(string(op), partial) {
			out = append(out, column+":"+string(op)+":")
		}
	}
	return out
}

func completionColumns(opts *config.Options) []grid.ColumnConfig {
	if path, err := config.ExpandPath(opts.ColumnsPath); err == nil && path != "" && path != "-" {
		if cols, err := dataset.LoadColumns(path); err == nil && len(cols) > 0 {
			return cols
		}
	}
	path, err := config.ExpandPath(opts.RowsPath)
	if err != nil || path == "" || path == "-" {
		return nil
	}
	ds, err := dataset.Load(path, nil)
	if err != nil {
		return nil
	}
	if len(ds.Columns) > 0 {
		return ds.Columns
	}
	return dataset.InferColumns(ds.Rows)
}
