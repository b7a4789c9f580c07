// Package favorites stores the user's remembered preferences (favorite
// color and friends) as a single flat JSON object.
package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists preferences keyed by name. Like the routine record it
// is re-read on every operation and rewritten whole on change.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the stored value for a preference key.
func (s *Store) Get(key string) (string, bool) {
	favs := s.load()
	v, ok := favs[strings.ToLower(key)]
	return v, ok
}

// Set stores a preference value, creating the record file if needed.
func (s *Store) Set(key, value string) error {
	favs := s.load()
	favs[strings.ToLower(key)] = strings.TrimSpace(value)
	return s.save(favs)
}

// All returns a copy of every stored preference.
func (s *Store) All() map[string]string {
	favs := s.load()
	out := make(map[string]string, len(favs))
	for k, v := range favs {
		out[k] = v
	}
	return out
}

func (s *Store) load() map[string]string {
	favs := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return favs
	}
	if err := json.Unmarshal(data, &favs); err != nil {
		return map[string]string{}
	}
	return favs
}

func (s *Store) save(favs map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}
	data, err := json.MarshalIndent(favs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}
