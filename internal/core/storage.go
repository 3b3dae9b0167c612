package core

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"rostercore/internal/infra/persistence/memory"
	"rostercore/internal/infra/persistence/postgres"
	"rostercore/internal/infra/persistence/sqlite"
)

// StorageConfig selects the persistence driver from the environment.
type StorageConfig struct {
	Driver      string `env:"ROSTERCORE_STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"ROSTERCORE_SQLITE_PATH" envDefault:"rostercore.db"`
	PostgresDSN string `env:"ROSTERCORE_POSTGRES_DSN"`
}

// LoadStorageConfig parses storage settings from the environment.
func LoadStorageConfig() (StorageConfig, error) {
	cfg, err := env.ParseAs[StorageConfig]()
	if err != nil {
		return StorageConfig{}, fmt.Errorf("parse storage config: %w", err)
	}
	return cfg, nil
}

// seedableStore is the extra surface durable backends share beyond
// PersistentStore.
type seedableStore interface {
	PersistentStore
	Empty() bool
	ImportState(memory.Snapshot) error
	LoadErr() error
}

// OpenPersistentStore opens the configured backend and seeds the starter
// roster when the store comes up empty, whether because it is new or because
// its snapshot failed to decode. A decode failure is returned alongside the
// working store so callers can report it; it never silently discards data.
func OpenPersistentStore(cfg StorageConfig, engine *RulesEngine) (PersistentStore, error) {
	switch cfg.Driver {
	case "memory":
		store := memory.NewStore(engine)
		store.ImportState(SeedSnapshot())
		return store, nil
	case "sqlite":
		store, err := sqlite.NewStore(cfg.SQLitePath, engine)
		if err != nil {
			return nil, err
		}
		return seedIfEmpty(store)
	case "postgres":
		store, err := postgres.NewStore(cfg.PostgresDSN, engine)
		if err != nil {
			return nil, err
		}
		return seedIfEmpty(store)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func seedIfEmpty(store seedableStore) (PersistentStore, error) {
	if store.Empty() {
		if err := store.ImportState(SeedSnapshot()); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}
	if loadErr := store.LoadErr(); loadErr != nil {
		return store, errors.Join(ErrSnapshotLoad, loadErr)
	}
	return store, nil
}

// ErrSnapshotLoad wraps a snapshot decode failure surfaced by
// OpenPersistentStore. The returned store is usable; it started from the
// seed roster instead of the stored snapshot.
var ErrSnapshotLoad = errors.New("stored snapshot could not be loaded")
