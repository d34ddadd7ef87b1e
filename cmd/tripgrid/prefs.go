// File: cmd/tripgrid/prefs.go
// Brief: CLI command wiring and implementation for 'prefs'.

// prefs.go registers 'tripgrid prefs' and its subcommands for reading and editing stored per-user grid preferences.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/logging"
	"github.com/example/tripgrid/internal/prefstore"
	"github.com/example/tripgrid/internal/render"
	"github.com/spf13/cobra"
)

func newPrefsCommand(opts *config.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and edit stored column preferences",
		Long: `Preferences are stored per user (--user, default $USER) and grid (--grid).
They hold column widths, hidden columns, column order, page size and the
default sort, and apply to every later view of the same grid.`,
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(
		newPrefsGetCommand(opts),
		newPrefsSetWidthCommand(opts),
		newPrefsVisibilityCommand(opts, "hide", true),
		newPrefsVisibilityCommand(opts, "show", false),
		newPrefsOrderCommand(opts),
		newPrefsPageSizeCommand(opts),
		newPrefsSortCommand(opts),
		newPrefsResetCommand(opts),
	)
	return cmd
}

func newPrefsGetCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := loadPreferences(cmd.Context(), opts, resolveUser(opts))
			if err != nil {
				return err
			}
			format := opts.OutputFormat
			if format == config.OutputTable {
				format = config.OutputYAML
			}
			return render.Encode(cmd.OutOrStdout(), format, prefs)
		},
	}
}

func newPrefsSetWidthCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-width COLUMN PIXELS",
		Short: "Remember a column width",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.ParseFloat(args[1], 64)
			if err != nil || width <= 0 {
				return fmt.Errorf("invalid width %q: expected a positive number of pixels", args[1])
			}
			return updatePreferences(cmd, opts, func(p grid.Preferences) grid.Preferences {
				return p.WithColumnWidth(args[0], width)
			})
		},
	}
}

func newPrefsVisibilityCommand(opts *config.Options, verb string, hidden bool) *cobra.Command {
	short := "Hide columns"
	if !hidden {
		short = "Show previously hidden columns"
	}
	return &cobra.Command{
		Use:   verb + " COLUMN...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePreferences(cmd, opts, func(p grid.Preferences) grid.Preferences {
				for _, key := range args {
					p = p.WithHidden(key, hidden)
				}
				return p
			})
		},
	}
}

func newPrefsOrderCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "order COLUMN...",
		Short: "Set the leading column order; unlisted columns follow in configuration order",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updatePreferences(cmd, opts, func(p grid.Preferences) grid.Preferences {
				p.ColumnOrder = append([]string(nil), args...)
				if len(p.ColumnOrder) == 0 {
					p.ColumnOrder = nil
				}
				return p
			})
		},
	}
}

func newPrefsPageSizeCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "page-size ROWS",
		Short: "Remember the page size (0 prints every row)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil || size < 0 {
				return fmt.Errorf("invalid page size %q", args[0])
			}
			return updatePreferences(cmd, opts, func(p grid.Preferences) grid.Preferences {
				p.PageSize = size
				return p
			})
		},
	}
}

func newPrefsSortCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sort [COLUMN[:asc|desc]]",
		Short: "Remember the default sort; no argument clears it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 1 {
				raw = args[0]
			}
			sortCfg, err := config.ParseSort(raw)
			if err != nil {
				return err
			}
			return updatePreferences(cmd, opts, func(p grid.Preferences) grid.Preferences {
				p.Sort = sortCfg
				return p
			})
		},
	}
}

func newPrefsResetCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored preferences for this user and grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			defer store.Close()
			user := resolveUser(opts)
			if err := store.Delete(cmd.Context(), user, opts.GridID); err != nil {
				return fmt.Errorf("reset %s/%s: %w", user, opts.GridID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preferences for %s on grid %s removed\n", user, opts.GridID)
			return nil
		},
	}
}

func updatePreferences(cmd *cobra.Command, opts *config.Options, mutate func(grid.Preferences) grid.Preferences) error {
	ctx := cmd.Context()
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()
	user := resolveUser(opts)
	prefs, err := prefstore.Update(ctx, store, user, opts.GridID, mutate)
	if err != nil {
		return err
	}
	logPreferences(ctx, user, opts.GridID, prefs)
	format := opts.OutputFormat
	if format == config.OutputTable {
		format = config.OutputYAML
	}
	return render.Encode(cmd.OutOrStdout(), format, prefs)
}

func logPreferences(ctx context.Context, user, gridID string, prefs grid.Preferences) {
	logging.FromContext(ctx).V(1).Info("preferences saved", "user", user, "grid", gridID,
		"widths", len(prefs.ColumnWidths), "hidden", len(prefs.HiddenColumns), "pageSize", prefs.PageSize)
}
