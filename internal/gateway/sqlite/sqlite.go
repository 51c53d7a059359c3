// Package sqlite implements the persistence gateway on an embedded SQLite
// database. Snapshots are written transactionally: the previous collection
// is replaced atomically or not at all.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the database at dbPath and runs the
// embedded migrations.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Expenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, category, date, notes FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		var date string
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category, &date, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *Store) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, title, amount, category, date, notes, position) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Title, e.Amount, e.Category, e.Date.Format(time.RFC3339Nano), e.Notes, i)
		if err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (s *Store) Preferences(ctx context.Context) (core.Preferences, error) {
	var prefs core.Preferences
	err := s.db.QueryRowContext(ctx,
		`SELECT currency, theme FROM preferences WHERE id = 1`).Scan(&prefs.Currency, &prefs.Theme)
	if err == sql.ErrNoRows {
		return core.Preferences{}, nil
	}
	if err != nil {
		return core.Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	return prefs, nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs core.Preferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (id, currency, theme) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET currency = excluded.currency, theme = excluded.theme`,
		prefs.Currency, prefs.Theme)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
