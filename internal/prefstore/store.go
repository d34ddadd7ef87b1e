// Package prefstore persists per-user grid preferences.
package prefstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/tripgrid/internal/grid"
)

// ErrNotFound is returned by Delete when nothing is stored for the key.
var ErrNotFound = errors.New("preferences not found")

// Store loads and saves grid preferences keyed by user and grid.
// Load returns empty preferences when nothing was saved.
type Store interface {
	Load(ctx context.Context, user, gridID string) (grid.Preferences, error)
	Save(ctx context.Context, user, gridID string, prefs grid.Preferences) error
	Delete(ctx context.Context, user, gridID string) error
	Close() error
}

// Open returns the store for backend ("sqlite" or "file") at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "sqlite":
		return OpenSQLite(path)
	case "file", "yaml":
		return OpenFile(path)
	default:
		return nil, fmt.Errorf("unknown preference backend %q", backend)
	}
}

// Update loads the stored preferences, applies mutate and saves the result.
func Update(ctx context.Context, s Store, user, gridID string, mutate func(grid.Preferences) grid.Preferences) (grid.Preferences, error) {
	prefs, err := s.Load(ctx, user, gridID)
	if err != nil {
		return grid.Preferences{}, err
	}
	prefs = mutate(prefs)
	if err := s.Save(ctx, user, gridID, prefs); err != nil {
		return grid.Preferences{}, err
	}
	return prefs, nil
}

func validateKey(user, gridID string) error {
	if strings.TrimSpace(user) == "" {
		return fmt.Errorf("preferences user is required")
	}
	if strings.TrimSpace(gridID) == "" {
		return fmt.Errorf("preferences grid id is required")
	}
	return nil
}
