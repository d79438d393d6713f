package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound reports a lookup that matched no row.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidArgument reports a query parameter outside its contract.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidDate reports a date bound that is not a YYYYMMDD calendar date.
	ErrInvalidDate = errors.New("invalid date, expected YYYYMMDD")
)

// Store owns the entries table and every query against it. A single Store is
// shared process-wide; sqlite serializes writes internally.
type Store struct {
	db *sqlx.DB
}

// Connect opens (creating if necessary) the sqlite database at path.
func Connect(path string) (*Store, error) {
	db, err := sqlx.Connect(
		"sqlite3",
		fmt.Sprintf("file:%s?_journal_mode=WAL&busy_timeout=5000", path),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	slog.Info("[Store] Connected to sqlite database", slog.String("path", path))
	return New(db), nil
}

// New wraps an already open connection.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

const createEntriesTable = `
CREATE TABLE entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	cleaned_text TEXT NOT NULL,
	scores TEXT NOT NULL,
	sentiment TEXT NOT NULL,
	date TEXT NOT NULL,
	cleaned_date TEXT NOT NULL,
	embedding TEXT NOT NULL
)`

// EnsureSchema creates the entries table when absent and reports whether it
// already existed, so the caller can decide whether ingestion should run.
func (s *Store) EnsureSchema(ctx context.Context) (bool, error) {
	var name string
	err := s.db.GetContext(ctx, &name,
		`SELECT name FROM sqlite_master WHERE type='table' AND name='entries'`)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, createEntriesTable); err != nil {
		return false, fmt.Errorf("failed to create entries table: %w", err)
	}
	slog.Info("[Store] Created entries table")
	return false, nil
}
