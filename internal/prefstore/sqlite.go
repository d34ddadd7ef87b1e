package prefstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/tripgrid/internal/grid"
	_ "modernc.org/sqlite"
)

const createPreferencesTableStmt = `
CREATE TABLE IF NOT EXISTS grid_preferences (
    user_id TEXT NOT NULL,
    grid_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (user_id, grid_id)
);`

// SQLiteStore keeps one JSON payload per user and grid in a SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// OpenSQLite opens (creating if needed) the preference database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("preferences db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, createPreferencesTableStmt); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, user, gridID string) (grid.Preferences, error) {
	if err := validateKey(user, gridID); err != nil {
		return grid.Preferences{}, err
	}
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM grid_preferences WHERE user_id = ? AND grid_id = ?`, user, gridID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return grid.Preferences{}, nil
	}
	if err != nil {
		return grid.Preferences{}, fmt.Errorf("load preferences for %s/%s: %w", user, gridID, err)
	}
	var prefs grid.Preferences
	if err := json.Unmarshal([]byte(payload), &prefs); err != nil {
		return grid.Preferences{}, fmt.Errorf("decode preferences for %s/%s: %w", user, gridID, err)
	}
	return prefs, nil
}

func (s *SQLiteStore) Save(ctx context.Context, user, gridID string, prefs grid.Preferences) error {
	if err := validateKey(user, gridID); err != nil {
		return err
	}
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO grid_preferences(user_id, grid_id, payload, updated_at) VALUES(?,?,?,?)
ON CONFLICT(user_id, grid_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		user, gridID, string(payload), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save preferences for %s/%s: %w", user, gridID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, user, gridID string) error {
	if err := validateKey(user, gridID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM grid_preferences WHERE user_id = ? AND grid_id = ?`, user, gridID)
	if err != nil {
		return fmt.Errorf("delete preferences for %s/%s: %w", user, gridID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Grids lists the grid ids with stored preferences for user.
func (s *SQLiteStore) Grids(ctx context.Context, user string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT grid_id FROM grid_preferences WHERE user_id = ? ORDER BY grid_id`, user)
	if err != nil {
		return nil, fmt.Errorf("list grids: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
