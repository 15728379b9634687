// Package docstore is a key to whole-JSON-document store backed by files
// on disk. There are no partial updates and no transactions across keys:
// callers read a full document, mutate it in memory and write it back,
// accepting last-writer-wins on concurrent writes.
package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store reads and writes whole JSON documents by key.
type Store interface {
	// Load unmarshals the document for key into out. It returns false and
	// leaves out untouched when no document exists yet, so callers keep
	// their defaults.
	Load(key string, out any) (bool, error)
	// Save atomically replaces the document for key.
	Save(key string, doc any) error
}

// FileStore implements Store with one <key>.json file per key under a
// data directory. A single mutex serializes writes; reads go through the
// same lock so a reader never observes a torn rename.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: create data dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("docstore: read %q: %w", key, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("docstore: decode %q: %w", key, err)
	}
	return true, nil
}

func (s *FileStore) Save(key string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: encode %q: %w", key, err)
	}

	// Write to a temp file in the same directory and rename it over the
	// target so a crash mid-write never leaves a half-written document.
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("docstore: temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("docstore: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("docstore: close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("docstore: replace %q: %w", key, err)
	}
	return nil
}
