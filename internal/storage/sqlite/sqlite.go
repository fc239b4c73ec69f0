// Package sqlite provides the relational implementation of the
// storage.ListStore interface, one row per item scoped by owner and
// date/month columns.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/dstam/planner/internal/models"
)

// Store owns the database handle. Group-scoped list stores are derived
// from it with TaskList and GoalList.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TaskList returns the store for one daily task group. It carries the
// bulk projection capability.
func (s *Store) TaskList(owner, date string) *TaskList {
	return &TaskList{
		itemList: itemList{
			db:         s.db,
			kind:       models.KindTask,
			owner:      owner,
			identifier: date,
		},
	}
}

// GoalList returns the store for one monthly goal group. Goal lists do
// not project forward, so the returned type intentionally lacks the
// Projector methods.
func (s *Store) GoalList(owner, month string) *GoalList {
	return &GoalList{
		itemList: itemList{
			db:         s.db,
			kind:       models.KindGoal,
			owner:      owner,
			identifier: month,
		},
	}
}

// repeatPlaceholder returns n copies of ", ?" for building IN clauses.
func repeatPlaceholder(n int) string {
	return strings.Repeat(", ?", n)
}
