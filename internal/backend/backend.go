// Package backend selects and constructs the storage backend.
package backend

import (
	"fmt"

	"fatture/internal/config"
	"fatture/internal/store"
)

// Type identifies a storage backend implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Open builds the store named by the configuration. The returned store owns
// its resources; callers must Close it.
func Open(cfg *config.Config) (store.Store, error) {
	t := Type(cfg.DataBackend)
	switch t {
	case MemoryBackend:
		return store.NewMemoryStore(), nil
	case FileBackend:
		s, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backend: %w", err)
		}
		return s, nil
	case SQLiteBackend:
		s, err := store.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
