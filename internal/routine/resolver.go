package routine

import (
	"github.com/rotina/rotina/internal/clock"
)

// Resolution status values.
const (
	StatusFound     = "found"      // an entry contains the query time
	StatusNextFound = "next_found" // nothing active, a later entry exists
	StatusNotFound  = "not_found"  // the routine is empty
)

// Resolution is the answer to a "what should I do" query.
type Resolution struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Activity string `json:"activity,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Followup pairs the currently active entry with the one that starts
// when it ends.
type Followup struct {
	Current Resolution  `json:"current"`
	Next    *Resolution `json:"next,omitempty"`
}

// Resolver answers time queries against a store. It re-reads the store
// on every call, so results always reflect the persisted routine.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve resolves at the given HH:MM query time. The error is
// clock.ErrInvalidTimeFormat when the time string is malformed.
func (r *Resolver) Resolve(queryTime string) (Resolution, error) {
	q, err := clock.Parse(queryTime)
	if err != nil {
		return Resolution{}, err
	}
	return r.ResolveAt(q), nil
}

// ResolveNow resolves against the current wall-clock minute.
func (r *Resolver) ResolveNow() Resolution {
	return r.ResolveAt(clock.Now())
}

// ResolveAt finds the entry whose interval contains q, or failing that
// the next entry to start. Intervals are half-open [start, end): a
// query landing exactly on an entry's end is outside it, one landing
// exactly on a start is inside it.
//
// The containment scan runs in storage order and the first match wins;
// overlapping entries are not rejected or detected. When no entry is
// active, entries are scanned sorted by start for the first one
// starting strictly after q; with none left today, the day's first
// entry is reported as next (it opens tomorrow).
func (r *Resolver) ResolveAt(q clock.Clock) Resolution {
	entries := r.store.load()
	if len(entries) == 0 {
		return Resolution{
			Status:  StatusNotFound,
			Time:    q.String(),
			Message: "No daily routine is set.",
		}
	}

	for _, e := range entries {
		start, errS := clock.Parse(e.Start)
		end, errE := clock.Parse(e.End)
		if errS != nil || errE != nil {
			continue
		}
		if clock.Contains(start, end, q) {
			return Resolution{Status: StatusFound, Time: q.String(), Start: e.Start, End: e.End, Activity: e.Activity}
		}
	}

	sortByStart(entries)
	for _, e := range entries {
		start, err := clock.Parse(e.Start)
		if err != nil {
			continue
		}
		if start.After(q) {
			return Resolution{Status: StatusNextFound, Time: q.String(), Start: e.Start, End: e.End, Activity: e.Activity}
		}
	}

	// Past the last entry of the day: wrap around to the earliest one.
	first := entries[0]
	return Resolution{Status: StatusNextFound, Time: q.String(), Start: first.Start, End: first.End, Activity: first.Activity}
}

// Following resolves "now" and, when an entry is active, resolves again
// at that entry's end to find what comes after it.
func (r *Resolver) Following() Followup {
	return r.FollowingAt(clock.Now())
}

// FollowingAt is Following for an explicit query time. Next is nil when
// nothing is active at q, or when the chained resolution wraps to an
// earlier entry (nothing further is scheduled today).
func (r *Resolver) FollowingAt(q clock.Clock) Followup {
	cur := r.ResolveAt(q)
	f := Followup{Current: cur}
	if cur.Status != StatusFound {
		return f
	}
	end, err := clock.Parse(cur.End)
	if err != nil {
		return f
	}

	after := r.ResolveAt(end)
	switch after.Status {
	case StatusFound:
		f.Next = &after
	case StatusNextFound:
		start, err := clock.Parse(after.Start)
		if err == nil && start.After(end) {
			f.Next = &after
		}
	}
	return f
}
