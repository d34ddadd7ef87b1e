// File: cmd/tripgrid/widths.go
// Brief: CLI command wiring and implementation for 'widths'.

// widths.go registers 'tripgrid widths', which reports the pixel width allocated to each visible column.
package main

import (
	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/render"
	"github.com/spf13/cobra"
)

func newWidthsCommand(opts *config.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widths",
		Short: "Show the pixel width allocated to each visible column",
		Long: `Allocate the container width across the visible columns. Custom --width
values are used verbatim; stored preferences and type minimums set the base
widths, and any remaining space is shared out in proportion to them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			sess, err := loadSession(ctx, opts, cmd.InOrStdin(), false)
			if err != nil {
				return err
			}
			v := buildView(ctx, opts, sess, out)
			report := render.NewWidthReport(v.Request, v.Widths, v.Viewport)
			if opts.OutputFormat != config.OutputTable {
				return render.Encode(out, opts.OutputFormat, report)
			}
			return render.WriteWidthReport(out, report)
		},
	}
	cmd.Example = `  # Widths for a 1440px container with the selection column and a row-actions plugin
  tripgrid widths --columns columns.yaml --container-width 1440 --checkboxes --plugin row-menu:actions`
	return cmd
}
