// Package scheduler announces the start of routine entries on a minute
// tick, optionally silenced by a cron-style quiet mask.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CronExpr is a parsed 5-field cron expression used as a time mask.
// Fields: minute, hour, day-of-month, month, day-of-week.
type CronExpr struct {
	minute map[int]bool
	hour   map[int]bool
	dom    map[int]bool
	month  map[int]bool
	dow    map[int]bool
}

var fieldBounds = [5][2]int{{0, 59}, {0, 23}, {1, 31}, {1, 12}, {0, 6}}

// ParseCron parses a 5-field cron expression. Each field supports
// *, */N, N, N-M and comma-separated combinations of those.
func ParseCron(expr string) (*CronExpr, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return nil, fmt.Errorf("cron: expected 5 fields, got %d", len(fields))
	}

	sets := make([]map[int]bool, 5)
	for i, field := range fields {
		set, err := parseField(field, fieldBounds[i][0], fieldBounds[i][1])
		if err != nil {
			return nil, fmt.Errorf("cron field %d: %w", i+1, err)
		}
		sets[i] = set
	}
	return &CronExpr{minute: sets[0], hour: sets[1], dom: sets[2], month: sets[3], dow: sets[4]}, nil
}

// Matches reports whether t falls inside the expression.
func (c *CronExpr) Matches(t time.Time) bool {
	return c.minute[t.Minute()] &&
		c.hour[t.Hour()] &&
		c.dom[t.Day()] &&
		c.month[int(t.Month())] &&
		c.dow[int(t.Weekday())]
}

func parseField(field string, min, max int) (map[int]bool, error) {
	set := make(map[int]bool)
	for _, part := range strings.Split(field, ",") {
		if err := addPart(set, part, min, max); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func addPart(set map[int]bool, part string, min, max int) error {
	step := 1
	if slash := strings.IndexByte(part, '/'); slash >= 0 {
		s, err := strconv.Atoi(part[slash+1:])
		if err != nil || s <= 0 {
			return fmt.Errorf("invalid step in %q", part)
		}
		step = s
		part = part[:slash]
	}

	lo, hi := min, max
	switch {
	case part == "*":
	case strings.Contains(part, "-"):
		bounds := strings.SplitN(part, "-", 2)
		var err error
		if lo, err = strconv.Atoi(bounds[0]); err != nil {
			return fmt.Errorf("invalid range start %q", bounds[0])
		}
		if hi, err = strconv.Atoi(bounds[1]); err != nil {
			return fmt.Errorf("invalid range end %q", bounds[1])
		}
	default:
		val, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid value %q", part)
		}
		lo, hi = val, val
	}

	if lo < min || hi > max || lo > hi {
		return fmt.Errorf("range %d-%d out of bounds [%d,%d]", lo, hi, min, max)
	}
	for i := lo; i <= hi; i += step {
		set[i] = true
	}
	return nil
}
