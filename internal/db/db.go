package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/marcus/swipedeck/internal/workdir"
	_ "modernc.org/sqlite"
)

// ErrNotInitialized is returned by Open when no journal exists yet
var ErrNotInitialized = errors.New("no verdicts recorded yet")

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Open opens an existing journal and runs any pending migrations
func Open(baseDir string) (*DB, error) {
	dbPath := workdir.At(baseDir).JournalPath()

	// Check if db exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}

	return open(baseDir, dbPath)
}

// Initialize creates the journal if needed and runs migrations
func Initialize(baseDir string) (*DB, error) {
	layout := workdir.At(baseDir)
	if err := layout.Ensure(); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	return open(baseDir, layout.JournalPath())
}

func open(baseDir, dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// Slightly faster writes, still safe with WAL
	conn.Exec("PRAGMA synchronous=NORMAL")

	// Single writer; keeps the pool from growing in the TUI
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, baseDir: baseDir}

	if _, err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema and records its version. It returns the
// number of migrations applied.
func (db *DB) RunMigrations() (int, error) {
	if _, err := db.conn.Exec(schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	current := 0
	var value string
	err := db.conn.QueryRow(`SELECT value FROM schema_info WHERE key = 'version'`).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, fmt.Errorf("read schema version: %w", err)
	default:
		current, _ = strconv.Atoi(value)
	}

	if current >= schemaVersion {
		return 0, nil
	}
	if _, err := db.conn.Exec(
		`INSERT INTO schema_info (key, value) VALUES ('version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(schemaVersion),
	); err != nil {
		return 0, fmt.Errorf("write schema version: %w", err)
	}
	return schemaVersion - current, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the base directory for the database
func (db *DB) BaseDir() string {
	return db.baseDir
}
