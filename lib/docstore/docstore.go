// Package docstore is a small persisted document store: one JSON file
// holding named tables of documents, with typed table views searched
// by predicate. Every mutation rewrites the file synchronously, there
// are no transactions and no cross-table atomicity. It is meant for
// single-process batch runs; concurrent writers will race.
package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// InMemory can be passed to Open to keep the store entirely in memory,
// used by tests.
const InMemory = ":memory:"

type Store struct {
	path   string
	tables map[string][]json.RawMessage
}

// Open loads the store file at path, creating an empty store if the
// file does not exist yet. The parent directory must exist.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		tables: map[string][]json.RawMessage{},
	}
	if path == InMemory {
		return s, nil
	}

	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(buf, &s.tables)
	if err != nil {
		return nil, fmt.Errorf("malformed store file %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) flush() error {
	if s.path == InMemory {
		return nil
	}
	buf, err := json.MarshalIndent(s.tables, "", "  ")
	if err != nil {
		return err
	}

	// write-then-rename so a crash mid-write never truncates the
	// previous generation of the file
	tmp := s.path + ".tmp"
	err = os.WriteFile(tmp, buf, 0o644)
	if err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Path returns the backing file path, InMemory for memory-only stores.
func (s *Store) Path() string {
	return s.path
}

// EnsureDir creates the parent directory of a store path.
func EnsureDir(path string) error {
	if path == InMemory {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
