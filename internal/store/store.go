package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists named JSON documents under a single data root. The root
// is explicit; nothing in this package keeps ambient path state.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the data directory the store was constructed with.
func (s *Store) Root() string {
	return s.root
}

// Path resolves a (category, key) pair to its file path. An empty category
// places the document directly under the root.
func (s *Store) Path(category, key string) string {
	if category == "" {
		return filepath.Join(s.root, key+".json")
	}
	return filepath.Join(s.root, category, key+".json")
}

// Remove deletes one document. A document that never existed is not an
// error; the caller only cares that it is gone.
func (s *Store) Remove(category, key string) error {
	err := os.Remove(s.Path(category, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", s.Path(category, key), err)
	}
	return nil
}

// SaveList writes the full list as one indented JSON document. The write
// goes to a temp file first and is renamed into place, so a concurrent
// reader never observes a partially written document.
func SaveList[T any](s *Store, category, key string, list []T) error {
	path := s.Path(category, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", category, key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// LoadList reads a full list back. A document that does not exist yet
// yields an empty list, not an error.
func LoadList[T any](s *Store, category, key string) ([]T, error) {
	data, err := os.ReadFile(s.Path(category, key))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.Path(category, key), err)
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path(category, key), err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// AppendWithCap appends item and drops the oldest entries until the list
// fits the cap. History, journal and device check-ins all go through the
// same append; check-ins pass limit <= 0 and are never trimmed.
func AppendWithCap[T any](list []T, item T, limit int) []T {
	list = append(list, item)
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}
