package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores all keys in a single JSON object file. Every call
// re-reads the file so that writes from other processes are visible, and
// every write replaces the file through a rename so readers never observe a
// partially written document. Writes hold an exclusive lock on a sibling
// ".lock" file across read-modify-write, so processes sharing the file only
// ever overwrite the key they set.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend prepares a backend at path, creating parent directories.
// The file itself is created on the first write.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the backing file location.
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileBackend) Set(key, value string) error {
	return f.update(func(values map[string]string) bool {
		values[key] = value
		return true
	})
}

func (f *FileBackend) Delete(key string) error {
	return f.update(func(values map[string]string) bool {
		if _, ok := values[key]; !ok {
			return false
		}
		delete(values, key)
		return true
	})
}

// update applies change to the current document under the cross-process
// lock and stores the result when change reports a modification.
func (f *FileBackend) update(change func(map[string]string) bool) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lock, err := lockFile(f.path + ".lock")
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlockFile(lock); uerr != nil && err == nil {
			err = fmt.Errorf("release file lock: %w", uerr)
		}
	}()

	values, err := f.loadForWrite()
	if err != nil {
		return err
	}
	if !change(values) {
		return nil
	}
	return f.store(values)
}

func (f *FileBackend) Snapshot() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileBackend) Close() error {
	return nil
}

var errCorrupt = errors.New("state file is not a JSON object of strings")

func (f *FileBackend) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	return values, nil
}

// loadForWrite starts over from an empty document when the file is corrupt;
// the next write replaces it.
func (f *FileBackend) loadForWrite() (map[string]string, error) {
	values, err := f.load()
	if errors.Is(err, errCorrupt) {
		return map[string]string{}, nil
	}
	return values, err
}

func (f *FileBackend) store(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return writeFileAtomic(f.path, data, 0o600)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".reel-state-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	done := false
	defer func() {
		if !done {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	done = true
	return nil
}
