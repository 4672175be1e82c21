package database

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection
func New(path string) (*DB, error) {
	// SQLite connection with WAL mode for better concurrency. The pragmas
	// use the modernc driver's _pragma form; foreign_keys must be on for
	// the comments cascade to fire.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	// SQLite with WAL mode supports concurrent reads but serializes writes
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	log.Debug().Str("path", path).Msg("Database connection established")

	return &DB{
		DB:   db,
		path: path,
	}, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}
