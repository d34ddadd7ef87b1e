// File: cmd/tripgrid/rows.go
// Brief: CLI command wiring and implementation for 'rows'.

// rows.go registers 'tripgrid rows', which runs only the row pipeline and prints the resulting page.
package main

import (
	"fmt"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/featureflags"
	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/render"
	"github.com/spf13/cobra"
)

func newRowsCommand(opts *config.Options) *cobra.Command {
	var showStats bool
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Apply search, filters and sort and print the resulting rows",
		Long: `Apply the global search, every column filter (all must match) and the sort,
then print the selected page. Table output uses each column's base width
without sharing out spare container space; use 'tripgrid view' for the full
layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			sess, err := loadSession(ctx, opts, cmd.InOrStdin(), true)
			if err != nil {
				return err
			}
			v := buildView(ctx, opts, sess, out)
			if showStats {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d rows in, %d after search, %d after filters, %d on page %d of %d\n",
					v.Stats.Input, v.Stats.AfterGlobal, v.Stats.AfterFilters, len(v.Page), v.PageIndex+1, grid.PageCount(len(v.Processed), v.PageSize))
			}
			if opts.OutputFormat != config.OutputTable {
				return render.Encode(out, opts.OutputFormat, v.document(false))
			}
			base := make(grid.Widths, len(v.Columns))
			for _, col := range v.Columns {
				base[col.Key] = grid.BaseWidth(col, v.Request)
			}
			return render.WriteTable(out, render.Table{
				Columns:     v.Columns,
				Widths:      base,
				Rows:        v.Page,
				Viewport:    v.Viewport,
				Colorize:    colorEnabled(opts.ColorMode, out),
				BadgeColors: featureflags.FromContext(ctx).Enabled(featureflags.FeatureBadgeColors),
			})
		},
	}
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print per-pass row counts to stderr")
	return cmd
}
