package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each collection as <name>.json under a data directory,
// the closest file-system analog of the browser storage this tool replaces.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated collection behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) Read(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	return data, nil
}

func (s *FileStore) Write(_ context.Context, collection string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, collection string) error {
	if err := os.Remove(s.path(collection)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete collection %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
