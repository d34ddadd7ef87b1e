// session.go loads the dataset, column configuration and stored preferences a grid command works on.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/dataset"
	"github.com/example/tripgrid/internal/grid"
	"github.com/example/tripgrid/internal/logging"
	"github.com/example/tripgrid/internal/prefstore"
	"golang.org/x/sync/errgroup"
)

type gridSession struct {
	Columns []grid.ColumnConfig
	Rows    []grid.Row
	Prefs   grid.Preferences
	User    string
}

// loadSession reads the dataset, the column file and the stored preferences
// concurrently. Column configuration comes from --columns, then the dataset,
// then the keys found in the rows.
func loadSession(ctx context.Context, opts *config.Options, stdin io.Reader, needRows bool) (*gridSession, error) {
	logger := logging.FromContext(ctx)
	if opts.RowsPath == "" && (needRows || opts.ColumnsPath == "") {
		return nil, fmt.Errorf("--rows is required")
	}
	sess := &gridSession{User: resolveUser(opts)}
	var ds *dataset.Dataset
	var fileColumns []grid.ColumnConfig

	eg, egCtx := errgroup.WithContext(ctx)
	if opts.RowsPath != "" {
		eg.Go(func() error {
			loaded, err := dataset.Load(opts.RowsPath, stdin)
			if err != nil {
				return err
			}
			ds = loaded
			return nil
		})
	}
	if opts.ColumnsPath != "" {
		eg.Go(func() error {
			cols, err := dataset.LoadColumns(opts.ColumnsPath)
			if err != nil {
				return err
			}
			fileColumns = cols
			return nil
		})
	}
	if !opts.NoPreferences {
		eg.Go(func() error {
			prefs, err := loadPreferences(egCtx, opts, sess.User)
			if err != nil {
				return err
			}
			sess.Prefs = prefs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if ds != nil {
		sess.Rows = ds.Rows
	}
	switch {
	case len(fileColumns) > 0:
		sess.Columns = fileColumns
	case ds != nil && len(ds.Columns) > 0:
		sess.Columns = ds.Columns
	default:
		sess.Columns = dataset.InferColumns(sess.Rows)
	}
	if len(sess.Columns) == 0 {
		return nil, fmt.Errorf("no columns: pass --columns or add a columns list to the dataset")
	}
	logger.V(1).Info("session loaded", "rows", len(sess.Rows), "columns", len(sess.Columns), "user", sess.User, "preferences", !sess.Prefs.IsZero())
	return sess, nil
}

// loadPreferences reads stored preferences without creating a store that
// does not exist yet.
func loadPreferences(ctx context.Context, opts *config.Options, user string) (grid.Preferences, error) {
	path := prefsPath(opts)
	if path == "" {
		return grid.Preferences{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return grid.Preferences{}, nil
	}
	store, err := prefstore.Open(opts.PrefsBackend, path)
	if err != nil {
		return grid.Preferences{}, err
	}
	defer store.Close()
	return store.Load(ctx, user, opts.GridID)
}

func openStore(opts *config.Options) (prefstore.Store, error) {
	path := prefsPath(opts)
	if path == "" {
		return nil, fmt.Errorf("cannot determine a preferences path; pass --prefs")
	}
	return prefstore.Open(opts.PrefsBackend, path)
}

func prefsPath(opts *config.Options) string {
	if opts.PrefsPath != "" {
		return opts.PrefsPath
	}
	return config.DefaultPrefsPath(opts.PrefsBackend)
}

func resolveUser(opts *config.Options) string {
	for _, candidate := range []string{opts.User, os.Getenv("USER"), os.Getenv("USERNAME")} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return "default"
}
