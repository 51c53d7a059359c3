// Package file implements the persistence gateway on top of two JSON files
// in a data directory, the local-storage variant of the backing store.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"outlay/internal/core"
)

const (
	expensesFile = "expenses.json"
	prefsFile    = "prefs.json"
)

// Store persists snapshots as pretty-printed JSON. Writes go through a temp
// file and rename so a crash mid-write never leaves a torn file behind.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Expenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expenses []core.Expense
	if err := s.readJSON(expensesFile, &expenses); err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return expenses, nil
}

func (s *Store) SaveExpenses(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expenses == nil {
		expenses = []core.Expense{}
	}
	return s.writeJSON(expensesFile, expenses)
}

func (s *Store) Preferences(_ context.Context) (core.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prefs core.Preferences
	if err := s.readJSON(prefsFile, &prefs); err != nil {
		return core.Preferences{}, err
	}
	return prefs, nil
}

func (s *Store) SavePreferences(_ context.Context, prefs core.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeJSON(prefsFile, prefs)
}

// readJSON decodes the named file into v. A missing file is not an error;
// v keeps its zero value.
func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
