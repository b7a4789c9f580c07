package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rotina/rotina/internal/routine"
)

// Fast-path phrases answered straight from the store, with no LLM
// round trip. Matching is whole-utterance after normalization.
var (
	routinePhrases = []string{
		"what is my routine",
		"what's my routine",
		"show my routine",
		"show me my routine",
		"daily schedule",
		"what is my daily schedule",
	}
	nowPhrases = []string{
		"what should i do now",
		"what should i do right now",
		"what should i do in this time",
		"what am i supposed to be doing",
	}
	nextPhrases = []string{
		"what should i do next",
		"what's my next task",
		"what is my next task",
		"what comes next",
	}
)

var atTimeRe = regexp.MustCompile(`^what should i do at (\d{1,2}:\d{2})\??$`)

// intercept answers well-known routine questions directly. The second
// return value reports whether the utterance was handled.
func (l *Loop) intercept(content string) (string, bool) {
	q := normalize(content)

	for _, p := range routinePhrases {
		if q == p {
			return l.formatRoutine(), true
		}
	}
	for _, p := range nowPhrases {
		if q == p {
			return formatResolution(l.opts.Resolver.ResolveNow()), true
		}
	}
	for _, p := range nextPhrases {
		if q == p {
			return formatFollowup(l.opts.Resolver.Following()), true
		}
	}
	if m := atTimeRe.FindStringSubmatch(q); m != nil {
		res, err := l.opts.Resolver.Resolve(m[1])
		if err != nil {
			return "That doesn't look like a valid time. Please use HH:MM, like 09:30.", true
		}
		return formatResolution(res), true
	}
	return "", false
}

func normalize(content string) string {
	q := strings.ToLower(strings.TrimSpace(content))
	q = strings.TrimRight(q, ".!")
	return strings.TrimSuffix(q, "?")
}

func (l *Loop) formatRoutine() string {
	entries := l.opts.Store.List()
	if len(entries) == 0 {
		return "Your routine is empty. Ask me to add an entry to get started."
	}
	var b strings.Builder
	b.WriteString("Here is your routine:")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s to %s: %s", e.Start, e.End, e.Activity)
	}
	return b.String()
}

func formatResolution(res routine.Resolution) string {
	switch res.Status {
	case routine.StatusFound:
		return fmt.Sprintf("At %s you should be doing: %s (from %s to %s).", res.Time, res.Activity, res.Start, res.End)
	case routine.StatusNextFound:
		return fmt.Sprintf("Nothing is scheduled at %s. Your next task starts at %s: %s.", res.Time, res.Start, res.Activity)
	default:
		return "Your routine is empty, so there's nothing scheduled."
	}
}

func formatFollowup(f routine.Followup) string {
	if f.Current.Status == routine.StatusNotFound {
		return "Your routine is empty, so there's nothing scheduled."
	}
	if f.Next == nil {
		if f.Current.Status == routine.StatusFound {
			return fmt.Sprintf("After %s ends at %s, you have nothing further scheduled today.", f.Current.Activity, f.Current.End)
		}
		return fmt.Sprintf("Nothing is scheduled right now. Your next task starts at %s: %s.", f.Current.Start, f.Current.Activity)
	}
	return fmt.Sprintf("You're currently on: %s until %s. After that, at %s: %s.",
		f.Current.Activity, f.Current.End, f.Next.Start, f.Next.Activity)
}
