package backend

import (
	"testing"

	"fatture/internal/config"
	"fatture/internal/store"
)

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{MemoryBackend, FileBackend, SQLiteBackend} {
		if !valid.IsValid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	if Type("redis").IsValid() {
		t.Error("redis should not be valid")
	}
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(&config.Config{DataBackend: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Fatalf("expected MemoryStore, got %T", s)
	}
}

func TestOpenFile(t *testing.T) {
	s, err := Open(&config.Config{DataBackend: "file", DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*store.FileStore); !ok {
		t.Fatalf("expected FileStore, got %T", s)
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open(&config.Config{DataBackend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
