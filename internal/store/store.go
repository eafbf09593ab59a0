// Package store persists the full application state as a single record
// in a local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"studytrack/internal/core"
)

const (
	envHome    = "STUDYTRACK_HOME" // override for tests
	dirName    = ".studytrack"     // default under $HOME
	dbFilename = "studytrack.db"
)

// DataDir returns the directory where local state lives (~/.studytrack),
// creating it with 0700 permissions if needed.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}

// Store reads and writes the single-record application state.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (or creates) the database with WAL and ensures the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// ensureSchema creates the state table if it does not exist. The CHECK
// constraint pins the table to a single row.
func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			savedAt INTEGER NOT NULL
		)
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes the state and overwrites the prior record.
func (s *Store) Save(state core.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO app_state (id, data, savedAt)
		VALUES (1, ?, unixepoch())
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, savedAt = excluded.savedAt
	`, string(data))
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Load deserializes the stored state. A missing or malformed record
// yields an empty default state, never an error surfaced to the caller.
func (s *Store) Load() core.AppState {
	var data string
	err := s.db.QueryRow(`SELECT data FROM app_state WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return core.NewAppState()
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("read state failed, starting fresh")
		return core.NewAppState()
	}

	var state core.AppState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		s.log.Warn().Err(err).Msg("stored state malformed, starting fresh")
		return core.NewAppState()
	}
	state.Normalize()
	return state
}
