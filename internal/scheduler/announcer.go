package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rotina/rotina/internal/bus"
	"github.com/rotina/rotina/internal/clock"
	"github.com/rotina/rotina/internal/config"
	"github.com/rotina/rotina/internal/routine"
)

// Announcer watches the routine and publishes an announcement on the
// bus when an entry starts. A quiet mask in cron syntax suppresses
// announcements for the minutes it matches.
type Announcer struct {
	store   *routine.Store
	bus     *bus.MessageBus
	channel string
	quiet   *CronExpr
	enabled bool

	lastAnnounced string // "HH:MM activity" of the last announcement
}

// NewAnnouncer builds an announcer from config. An invalid quiet mask
// is reported and ignored.
func NewAnnouncer(cfg config.AnnouncerConfig, store *routine.Store, b *bus.MessageBus, channel string) *Announcer {
	a := &Announcer{
		store:   store,
		bus:     b,
		channel: channel,
		enabled: cfg.Enabled,
	}
	if cfg.QuietMask != "" {
		quiet, err := ParseCron(cfg.QuietMask)
		if err != nil {
			slog.Warn("ignoring invalid quiet mask", "mask", cfg.QuietMask, "error", err)
		} else {
			a.quiet = quiet
		}
	}
	return a
}

// Run ticks once a minute until the context is cancelled. Run it as a
// goroutine.
func (a *Announcer) Run(ctx context.Context) error {
	if !a.enabled {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			a.announceAt(now)
		}
	}
}

// announceAt publishes an announcement for any entry starting at t.
func (a *Announcer) announceAt(t time.Time) {
	if a.quiet != nil && a.quiet.Matches(t) {
		return
	}
	minute := clock.FromTime(t).String()

	for _, entry := range a.store.List() {
		if entry.Start != minute {
			continue
		}
		key := minute + " " + entry.Activity
		if key == a.lastAnnounced {
			continue
		}
		a.lastAnnounced = key
		a.bus.PublishOutbound(&bus.OutboundMessage{
			Channel: a.channel,
			Kind:    bus.KindAnnouncement,
			Content: fmt.Sprintf("It's %s. Time for: %s.", minute, entry.Activity),
		})
		slog.Info("announced routine entry", "time", minute, "activity", entry.Activity)
	}
}
