// Package database provides SQLite database access and migration management.
package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	// SQLite driver for database/sql
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection with additional functionality.
type DB struct {
	*sql.DB
}

// New creates a new database connection and ensures the parent directory exists.
func New(dbPath string) (*DB, error) {
	memory := dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
	if !memory {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}

	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}

	// Write transactions take the lock at BEGIN so concurrent writers wait
	// out the busy timeout instead of failing on lock upgrade.
	db, err := sql.Open("sqlite3", dbPath+sep+"_foreign_keys=on&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, err
	}

	// Every pooled connection to :memory: would open its own empty database.
	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// Migrate runs all database migrations.
func (db *DB) Migrate() error {
	return runMigrations(db.DB)
}
