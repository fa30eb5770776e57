package app

import (
	"path/filepath"
	"testing"

	"github.com/five82/reel/internal/config"
	"github.com/five82/reel/internal/storage"
)

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dir

	cfg.Storage = config.StorageNone
	b, err := openBackend(cfg)
	if err != nil || b != nil {
		t.Fatalf("none: backend = %v, err = %v", b, err)
	}

	cfg.Storage = config.StorageMemory
	b, err = openBackend(cfg)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := b.(*storage.MemoryBackend); !ok {
		t.Fatalf("memory: got %T", b)
	}

	cfg.Storage = config.StorageFile
	b, err = openBackend(cfg)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	fb, ok := b.(*storage.FileBackend)
	if !ok {
		t.Fatalf("file: got %T", b)
	}
	if want := filepath.Join(dir, "state.json"); fb.Path() != want {
		t.Fatalf("file path = %q, want %q", fb.Path(), want)
	}

	cfg.Storage = config.StorageSQLite
	b, err = openBackend(cfg)
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*storage.SQLiteBackend); !ok {
		t.Fatalf("sqlite: got %T", b)
	}
}
