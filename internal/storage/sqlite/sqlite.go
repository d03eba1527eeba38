// Package sqlite provides SQLite-based storage implementation.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Storage implements the storage.Storage interface using SQLite
type Storage struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// New creates a new SQLite storage instance
func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings for better concurrency
	db.SetMaxOpenConns(1) // SQLite works best with single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	storage := &Storage{db: db}

	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := storage.migrateModels(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate models: %w", err)
	}

	return storage, nil
}

// createSchema creates the database schema
func (s *Storage) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS models (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		provider       TEXT NOT NULL,
		input_price    TEXT NOT NULL,
		output_price   TEXT NOT NULL,
		context_window INTEGER NOT NULL,
		currency       TEXT NOT NULL DEFAULT 'USD',
		features       TEXT NOT NULL DEFAULT '[]',
		is_multimodal  INTEGER DEFAULT 0,
		is_vision      INTEGER DEFAULT 0,
		is_audio       INTEGER DEFAULT 0,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_models_provider ON models(provider);

	CREATE TABLE IF NOT EXISTS comparisons (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		model_ids   TEXT NOT NULL,
		model_count INTEGER NOT NULL,
		min_cost    TEXT NOT NULL,
		max_cost    TEXT NOT NULL,
		payload     TEXT NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_comparisons_created ON comparisons(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// generateID creates a new unique ID with a prefix
func generateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
