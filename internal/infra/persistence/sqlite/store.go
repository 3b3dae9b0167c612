// Package sqlite persists the attendance ledger as a single JSON snapshot in
// an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"rostercore/internal/infra/persistence/memory"
	"rostercore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// storageKey identifies the ledger snapshot row. Bumped when the snapshot
// schema changes incompatibly.
const storageKey = "ledger_state_v2"

// Store wraps the in-memory ledger store with SQLite durability. Every
// committed transaction serializes the full state into the state table.
type Store struct {
	*memory.Store
	db      *sql.DB
	path    string
	loadErr error
}

// NewStore opens (or creates) the database at path and hydrates the embedded
// memory store from the stored snapshot. A missing snapshot yields an empty
// store. A snapshot that cannot be decoded also yields an empty store, but
// the decode failure is retained and reported through LoadErr rather than
// swallowed.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}

	store := &Store{
		Store: memory.NewStore(engine),
		db:    db,
		path:  path,
	}
	if err := store.load(); err != nil {
		store.loadErr = err
	}
	return store, nil
}

func (s *Store) load() error {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE key = ?`, storageKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	var snapshot memory.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	s.Store.ImportState(snapshot)
	return nil
}

func (s *Store) persist() error {
	payload, err := json.Marshal(s.Store.ExportState())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO state (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, storageKey, payload); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// RunInTransaction commits against the in-memory store first, then persists
// the resulting snapshot. A persistence failure is returned to the caller
// while the committed in-memory state stays authoritative.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	result, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return result, err
	}
	if err := s.persist(); err != nil {
		return result, err
	}
	return result, nil
}

// ImportState replaces the ledger state and persists it immediately.
func (s *Store) ImportState(snapshot memory.Snapshot) error {
	s.Store.ImportState(snapshot)
	return s.persist()
}

// LoadErr reports the snapshot decode failure retained from NewStore, if any.
func (s *Store) LoadErr() error { return s.loadErr }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
