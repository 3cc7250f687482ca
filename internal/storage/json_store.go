package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// document is the on-disk layout: one JSON object keyed by state key.
type document struct {
	Version int                        `json:"version"`
	Values  map[string]json.RawMessage `json:"values"`
}

// JSONStore keeps every key in a single JSON file.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.store = &document{Version: 1, Values: make(map[string]json.RawMessage)}
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}
	s.store = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a sibling temp file and renames it over the original so a
// crash mid-write never leaves a truncated document.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.store.Values[key]
	if !ok {
		return "", false, nil
	}
	return string(raw), true, nil
}

func (s *JSONStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.store.Values[key] = json.RawMessage(value)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.store.Values))
	for k := range s.store.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) Location() string {
	return s.path
}
