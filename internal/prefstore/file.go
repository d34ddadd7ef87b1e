package prefstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/example/tripgrid/internal/grid"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk layout: user -> grid id -> preferences.
type fileDocument struct {
	Users map[string]map[string]grid.Preferences `yaml:"users"`
}

// FileStore keeps every user's preferences in a single YAML document.
// Writes replace the file through a temp file rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// OpenFile returns a YAML-backed store at path. The file is created on the
// first Save.
func OpenFile(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("preferences file path is required")
	}
	s := &FileStore{path: path}
	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Load(ctx context.Context, user, gridID string) (grid.Preferences, error) {
	if err := validateKey(user, gridID); err != nil {
		return grid.Preferences{}, err
	}
	if err := ctx.Err(); err != nil {
		return grid.Preferences{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return grid.Preferences{}, err
	}
	return doc.Users[user][gridID], nil
}

func (s *FileStore) Save(ctx context.Context, user, gridID string, prefs grid.Preferences) error {
	if err := validateKey(user, gridID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if doc.Users == nil {
		doc.Users = map[string]map[string]grid.Preferences{}
	}
	if doc.Users[user] == nil {
		doc.Users[user] = map[string]grid.Preferences{}
	}
	doc.Users[user][gridID] = prefs
	return s.write(doc)
}

func (s *FileStore) Delete(ctx context.Context, user, gridID string) error {
	if err := validateKey(user, gridID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	grids, ok := doc.Users[user]
	if !ok {
		return ErrNotFound
	}
	if _, ok := grids[gridID]; !ok {
		return ErrNotFound
	}
	delete(grids, gridID)
	if len(grids) == 0 {
		delete(doc.Users, user)
	}
	return s.write(doc)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (fileDocument, error) {
	var doc fileDocument
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read preferences file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse preferences file %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) write(doc fileDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}
