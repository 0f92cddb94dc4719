// Package database opens and closes book files. Each book is its own SQLite
// database; multiple books coexist as separate files and the caller owns
// which one is active.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// OpenBook opens (creating if needed) the SQLite database backing one book.
// Foreign keys are enforced and WAL mode is enabled so readers are not
// blocked by the single writer; the writer lock is the engine's
// serialization point for atomic units.
func OpenBook(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("book path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create book directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open book %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping book %s: %w", path, err)
	}

	return db, nil
}

// OpenMemoryBook opens a throwaway in-memory book, used by tests.
// The connection pool is pinned to one connection so every statement sees
// the same in-memory database.
func OpenMemoryBook() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory book: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// CloseBook closes the database behind a book.
func CloseBook(db *sql.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			log.Printf("error closing book: %v", err)
		}
	}
}
