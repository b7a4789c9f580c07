// Package routine owns the user's daily schedule: a flat record of
// timed activity entries plus the resolution logic that answers "what
// should I be doing now, and what comes next".
package routine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotina/rotina/internal/clock"
)

// ErrEmptyActivity is returned when an entry is added without a
// description.
var ErrEmptyActivity = errors.New("activity must not be empty")

// Entry is one scheduled activity. Start and End are wall-clock HH:MM
// values; an entry whose End is numerically <= its Start wraps past
// midnight (23:30-05:30 spans the night). Start == End is stored as-is
// and behaves as a wrap-around interval.
type Entry struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Activity string `json:"activity"`
}

// Store persists the routine as a JSON array on disk. Every operation
// re-reads the file, so edits made outside the process are picked up on
// the next call. There is no cross-process locking; the record is owned
// by a single user on a single machine.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file. The file is
// created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all entries sorted ascending by start time. A missing or
// unreadable file is an empty routine, not an error.
func (s *Store) List() []Entry {
	entries := s.load()
	sortByStart(entries)
	return entries
}

// Add validates both times, appends the entry, re-sorts the collection
// and persists it. Times are normalized to zero-padded HH:MM. The file
// is untouched when validation fails.
func (s *Store) Add(start, end, activity string) (Entry, error) {
	st, err := clock.Parse(start)
	if err != nil {
		return Entry{}, err
	}
	en, err := clock.Parse(end)
	if err != nil {
		return Entry{}, err
	}
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return Entry{}, ErrEmptyActivity
	}

	entry := Entry{Start: st.String(), End: en.String(), Activity: activity}
	entries := append(s.load(), entry)
	sortByStart(entries)
	if err := s.save(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Removal describes the outcome of a keyword removal.
type Removal struct {
	Removed int
	Matched bool
}

// Remove deletes every entry whose activity contains keyword,
// case-insensitively. When nothing matches, it reports Matched=false
// and leaves the file untouched.
func (s *Store) Remove(keyword string) (Removal, error) {
	entries := s.load()
	kw := strings.ToLower(keyword)

	var kept []Entry
	for _, e := range entries {
		if !strings.Contains(strings.ToLower(e.Activity), kw) {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return Removal{}, nil
	}
	sortByStart(kept)
	if err := s.save(kept); err != nil {
		return Removal{}, err
	}
	return Removal{Removed: removed, Matched: true}, nil
}

func (s *Store) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *Store) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create routine dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal routine: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write routine: %w", err)
	}
	return nil
}

func sortByStart(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, errA := clock.Parse(entries[i].Start)
		b, errB := clock.Parse(entries[j].Start)
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		return a.Minutes() < b.Minutes()
	})
}
