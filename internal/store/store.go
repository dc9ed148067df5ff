// Package store is the local history store: a SQLite-backed document store
// holding profiles, activity records, chat sessions, trips and ephemeral
// two-factor challenges, with live snapshot subscriptions.
//
// The store is the single source of truth for persisted state; every
// subscriber's local snapshot is a cache that is fully replaced on each
// pushed change set.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = fmt.Errorf("store: not found")

// Store wraps the SQLite database and the subscription hub. All methods
// are safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	hub *hub
}

// Open opens (creating if necessary) the store at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, hub: newHub()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database and tears down all live subscriptions.
func (s *Store) Close() error {
	s.hub.closeAll()
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			uid        TEXT PRIMARY KEY,
			doc        TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			data       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_owner_type
			ON activities (user_id, type, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS chats (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id         TEXT PRIMARY KEY,
			chat_id    TEXT NOT NULL,
			role       TEXT NOT NULL,
			body       TEXT NOT NULL,
			citations  TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_chat
			ON chat_messages (chat_id, created_at ASC)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			doc        TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS two_factor_codes (
			uid        TEXT PRIMARY KEY,
			digest     TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
