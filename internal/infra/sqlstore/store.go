// Package sqlstore provides a SQLite implementation of domain.Store.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/runoshun/teamtasks/internal/domain"
)

// Ensure Store implements domain.Store.
var _ domain.Store = (*Store)(nil)

// dsnOptions enables foreign keys and makes every transaction take the
// write lock at BEGIN, so a write guard sees the rows its write is applied to.
const dsnOptions = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate"

// Store implements domain.Store on a SQLite database file.
// The connection is opened on first use.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// New creates a Store for the database file at path.
// The file is created by Initialize.
func New(path string) *Store {
	return &Store{path: path}
}

// IsInitialized reports whether the database file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates the database file and applies pending migrations.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) open() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("sqlite3", "file:"+s.path+"?"+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.db = db
	return db, nil
}

// conn returns the open database, refusing to create a missing file.
func (s *Store) conn() (*sql.DB, error) {
	if !s.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	return s.open()
}

// withTx runs fn inside one immediate transaction. Any error rolls back.
func (s *Store) withTx(fn func(*sql.Tx) error) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// exists reports whether table has a row with the given id.
func exists(q querier, table string, id int) (bool, error) {
	var one int
	err := q.QueryRow("SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up %s: %w", table, err)
	}
	return true, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
