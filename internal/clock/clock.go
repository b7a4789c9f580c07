// Package clock provides wall-clock time-of-day values with minute
// precision, the unit all routine entries are expressed in.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a time string is not a valid
// HH:MM value.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// Clock is a time of day. It carries no date component.
type Clock struct {
	Hour   int
	Minute int
}

// Parse parses a "HH:MM" string (leading zero optional, e.g. "5:30" or
// "05:30") into a Clock. Hour must be in [0,23] and minute in [0,59];
// anything else fails with ErrInvalidTimeFormat.
func Parse(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, err := parseField(parts[0], 0, 23)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	m, err := parseField(parts[1], 0, 59)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

func parseField(s string, min, max int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("value %d out of range [%d,%d]", v, min, max)
	}
	return v, nil
}

// Now returns the current wall-clock time truncated to the minute.
// Sub-minute precision is never distinguished.
func Now() Clock {
	t := time.Now()
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// FromTime converts a time.Time to its time-of-day.
func FromTime(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

// Before reports whether c is strictly earlier in the day than o.
func (c Clock) Before(o Clock) bool { return c.Minutes() < o.Minutes() }

// After reports whether c is strictly later in the day than o.
func (c Clock) After(o Clock) bool { return c.Minutes() > o.Minutes() }

// String formats the clock as zero-padded "HH:MM".
func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Contains reports whether q falls inside the half-open interval
// [start, end). An interval with end <= start wraps past midnight, so
// 23:30-05:30 contains 00:15 but not 05:30.
func Contains(start, end, q Clock) bool {
	if start.Before(end) {
		return !q.Before(start) && q.Before(end)
	}
	return !q.Before(start) || q.Before(end)
}
