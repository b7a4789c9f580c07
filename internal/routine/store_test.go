package routine

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rotina/rotina/internal/clock"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "routine.json"))
}

func TestListMissingFile(t *testing.T) {
	s := testStore(t)
	if got := s.List(); len(got) != 0 {
		t.Errorf("expected empty routine, got %v", got)
	}
}

func TestAddSortsByStart(t *testing.T) {
	s := testStore(t)

	for _, e := range []Entry{
		{"11:30", "12:30", "lunch"},
		{"09:00", "10:00", "meeting"},
		{"07:00", "07:30", "meditate"},
	} {
		if _, err := s.Add(e.Start, e.End, e.Activity); err != nil {
			t.Fatalf("Add(%v): %v", e, err)
		}
	}

	got := s.List()
	want := []string{"meditate", "meeting", "lunch"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, activity := range want {
		if got[i].Activity != activity {
			t.Errorf("entry %d: expected %q, got %q", i, activity, got[i].Activity)
		}
	}
}

func TestAddNormalizesTimes(t *testing.T) {
	s := testStore(t)
	entry, err := s.Add("9:05", "9:30", "standup")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Start != "09:05" || entry.End != "09:30" {
		t.Errorf("expected normalized times, got %s-%s", entry.Start, entry.End)
	}
}

func TestAddInvalidTimeLeavesStoreUntouched(t *testing.T) {
	s := testStore(t)
	if _, err := s.Add("09:00", "10:00", "meeting"); err != nil {
		t.Fatal(err)
	}
	before := s.List()

	if _, err := s.Add("9-00", "10:00", "bad"); !errors.Is(err, clock.ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}
	if _, err := s.Add("09:00", "25:00", "bad"); !errors.Is(err, clock.ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat for out-of-range hour, got %v", err)
	}

	if after := s.List(); !reflect.DeepEqual(before, after) {
		t.Errorf("store changed after failed add: %v vs %v", before, after)
	}
}

func TestAddEmptyActivity(t *testing.T) {
	s := testStore(t)
	if _, err := s.Add("09:00", "10:00", "  "); !errors.Is(err, ErrEmptyActivity) {
		t.Fatalf("expected ErrEmptyActivity, got %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Errorf("store mutated by rejected add: %v", got)
	}
}

func TestRemoveAllMatches(t *testing.T) {
	s := testStore(t)
	s.Add("08:00", "08:30", "Morning Walk")
	s.Add("12:00", "12:30", "lunch")
	s.Add("18:00", "18:30", "evening walk")

	outcome, err := s.Remove("WALK")
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Matched || outcome.Removed != 2 {
		t.Fatalf("expected 2 removed, got %+v", outcome)
	}

	got := s.List()
	if len(got) != 1 || got[0].Activity != "lunch" {
		t.Errorf("unexpected remaining entries: %v", got)
	}
}

func TestRemoveNoMatchLeavesStoreUntouched(t *testing.T) {
	s := testStore(t)
	s.Add("09:00", "10:00", "meeting")
	before := s.List()

	outcome, err := s.Remove("gym")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Matched || outcome.Removed != 0 {
		t.Errorf("expected not-found outcome, got %+v", outcome)
	}
	if after := s.List(); !reflect.DeepEqual(before, after) {
		t.Errorf("store changed by no-op removal: %v vs %v", before, after)
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routine.json")
	if _, err := NewStore(path).Add("09:00", "10:00", "meeting"); err != nil {
		t.Fatal(err)
	}

	got := NewStore(path).List()
	if len(got) != 1 || got[0].Activity != "meeting" {
		t.Errorf("expected persisted entry, got %v", got)
	}
}

func TestLoadTolerantOfCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routine.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path).List(); len(got) != 0 {
		t.Errorf("expected empty routine for corrupt file, got %v", got)
	}
}
