// Package backend selects the key-value store implementation from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"spendlog/internal/config"
	"spendlog/internal/storage"
)

// Type names a key-value store implementation.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	}
	return false
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SQLite, Memory}
}

// Open creates the KV store named by the config. The returned cleanup
// function releases the store's resources and is safe to call once.
func Open(logger *slog.Logger, cfg *config.Config) (storage.KV, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	switch t {
	case SQLite:
		kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return kv, kv.Close, nil

	case Memory:
		logger.Info("Initialized memory backend")
		return storage.NewMemoryKV(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
