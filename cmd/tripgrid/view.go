// File: cmd/tripgrid/view.go
// Brief: CLI command wiring and implementation for 'view'.

// view.go registers 'tripgrid view', the default command: it filters and sorts the dataset, allocates column widths for the container and prints the page.
package main

import (
	"context"
	"io"
	"strings"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/featureflags"
	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/logging"
	"github.com/example/tripgrid/internal/render"
	"github.com/example/tripgrid/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newViewCommand(opts *config.Options) *cobra.Command {
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Filter, sort and print the grid at the allocated column widths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewWithHeaders(cmd, opts, noHeaders)
		},
	}
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Don't print the header row in table output")
	return cmd
}

func runView(cmd *cobra.Command, opts *config.Options) error {
	return runViewWithHeaders(cmd, opts, false)
}

func runViewWithHeaders(cmd *cobra.Command, opts *config.Options, noHeaders bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	sess, err := loadSession(ctx, opts, cmd.InOrStdin(), true)
	if err != nil {
		return err
	}
	v := buildView(ctx, opts, sess, out)
	if opts.OutputFormat != config.OutputTable {
		return render.Encode(out, opts.OutputFormat, v.document(true))
	}
	flags := featureflags.FromContext(ctx)
	return render.WriteTable(out, render.Table{
		Columns:        v.Columns,
		Widths:         v.Widths,
		Rows:           v.Page,
		Viewport:       v.Viewport,
		ShowCheckboxes: opts.ShowCheckboxes,
		RowActions:     grid.HasRowActions(opts.Plugins),
		NoHeaders:      noHeaders,
		Colorize:       colorEnabled(opts.ColorMode, out),
		BadgeColors:    flags.Enabled(featureflags.FeatureBadgeColors),
	})
}

// gridView is one processed, paginated and laid out grid.
type gridView struct {
	Columns   []grid.ColumnConfig
	Processed []grid.Row
	Page      []grid.Row
	PageIndex int
	PageSize  int
	Stats     grid.ProcessStats
	Request   grid.WidthRequest
	Widths    grid.Widths
	Viewport  ui.Viewport
}

func buildView(ctx context.Context, opts *config.Options, sess *gridSession, out io.Writer) gridView {
	logger := logging.FromContext(ctx)
	flags := featureflags.FromContext(ctx)

	visible := grid.VisibleColumns(sess.Columns, sess.Prefs)
	sortCfg := opts.Sort
	if sortCfg == nil {
		sortCfg = sess.Prefs.Sort
	}
	for _, key := range unconfiguredColumns(sess.Columns, sortCfg, opts.Filters) {
		logger.Info("column is not configured; rows without it sort last and fail its filters", "column", key)
	}
	processed, stats := grid.ProcessWithStats(sess.Rows, grid.ProcessOptions{
		GlobalFilter: opts.GlobalFilter,
		Filters:      opts.Filters,
		Sort:         sortCfg,
		Columns:      visible,
		ServerDriven: opts.ServerDriven,
	})
	logger.V(1).Info("rows processed",
		"input", stats.Input, "afterGlobal", stats.AfterGlobal, "afterFilters", stats.AfterFilters,
		"sorted", stats.Sorted, "serverDriven", stats.ServerDriven)

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = sess.Prefs.PageSize
	}

	vp := viewport(opts, out)
	req := grid.WidthRequest{
		Columns:             visible,
		ShowCheckboxes:      opts.ShowCheckboxes,
		Plugins:             opts.Plugins,
		Preferences:         sess.Prefs,
		CustomWidths:        opts.CustomWidths,
		ContainerWidth:      containerWidth(opts, vp),
		UseConfiguredWidths: flags.Enabled(featureflags.FeatureConfiguredColumnWidths),
	}
	widths := grid.Allocate(req)
	logger.V(1).Info("widths allocated", "container", req.ContainerWidth,
		"available", grid.AvailableWidth(req.ContainerWidth, req.ShowCheckboxes, req.Plugins), "total", widths.Total())

	return gridView{
		Columns:   visible,
		Processed: processed,
		Page:      grid.Paginate(processed, opts.Page, pageSize),
		PageIndex: opts.Page,
		PageSize:  pageSize,
		Stats:     stats,
		Request:   req,
		Widths:    widths,
		Viewport:  vp,
	}
}

func (v gridView) document(withWidths bool) render.RowsDocument {
	doc := render.RowsDocument{
		Columns:   grid.ColumnKeys(v.Columns),
		Rows:      v.Page,
		Total:     len(v.Processed),
		Page:      v.PageIndex,
		PageCount: grid.PageCount(len(v.Processed), v.PageSize),
	}
	if doc.Rows == nil {
		doc.Rows = []grid.Row{}
	}
	if withWidths {
		doc.Widths = v.Widths
	}
	return doc
}

// viewport measures the terminal unless --container-width fixes the width.
func viewport(opts *config.Options, out io.Writer) ui.Viewport {
	if opts.ContainerWidth > 0 {
		return ui.Viewport{Columns: int(opts.ContainerWidth / opts.PixelsPerCell), PixelsPerCell: opts.PixelsPerCell}
	}
	return ui.DetectViewport(out, opts.PixelsPerCell)
}

func containerWidth(opts *config.Options, vp ui.Viewport) float64 {
	if opts.ContainerWidth > 0 {
		return opts.ContainerWidth
	}
	return vp.WidthPixels()
}

func colorEnabled(mode string, out io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	default:
		return ui.IsTerminalWriter(out) && !color.NoColor
	}
}

// unconfiguredColumns lists sort and filter columns missing from cols, in
// the order they are referenced.
func unconfiguredColumns(cols []grid.ColumnConfig, sortCfg *grid.SortConfig, filters []grid.FilterConfig) []string {
	var refs []string
	if sortCfg != nil {
		refs = append(refs, sortCfg.Column)
	}
	for _, f := range filters {
		refs = append(refs, f.Column)
	}
	var missing []string
	seen := map[string]bool{}
	for _, key := range refs {
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := grid.FindColumn(cols, key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
