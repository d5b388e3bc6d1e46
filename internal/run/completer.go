package run

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mycolab/sporely/internal/steril"
	"github.com/mycolab/sporely/internal/store"
)

// Sounder plays the completion audio cue.
type Sounder interface {
	Play(sound string, volume float64) error
}

// Notifier delivers the completion notification.
type Notifier interface {
	NotifyComplete(c Completion) error
}

// SpawnUpdater is the slice of the store the completer needs.
type SpawnUpdater interface {
	UpdateSpawnStatus(ctx context.Context, id string, u store.SpawnUpdate) error
}

// Completer owns the side effects of a finished countdown: audio cue,
// notification, best-effort domain updates, log entry, list clear.
type Completer struct {
	updater  SpawnUpdater
	sounder  Sounder
	notifier Notifier
	log      *Log
	logger   *zap.SugaredLogger
}

// NewCompleter wires the completion side effects.
func NewCompleter(updater SpawnUpdater, sounder Sounder, notifier Notifier, log *Log, logger *zap.SugaredLogger) *Completer {
	return &Completer{
		updater:  updater,
		sounder:  sounder,
		notifier: notifier,
		log:      log,
		logger:   logger,
	}
}

// Complete runs the side-effect sequence for one finished cycle. Every step
// is best-effort: a failing sound, notification, or per-item update is logged
// and skipped, and the log entry and list clear happen regardless. There is
// no rollback and no retry.
func (c *Completer) Complete(ctx context.Context, r *Run, params steril.Result, sound string, volume float64, now time.Time) LogEntry {
	items := r.Items()

	if sound != "none" && volume > 0 {
		if err := c.sounder.Play(sound, volume); err != nil {
			c.logger.Warnw("completion sound failed", "sound", sound, "error", err)
		}
	}

	if err := c.notifier.NotifyComplete(Completion{
		Timestamp: now,
		PSI:       params.PSI,
		Minutes:   params.Minutes,
		Items:     items,
	}); err != nil {
		c.logger.Warnw("completion notification failed", "error", err)
	}

	// Sequential on purpose: a handful of rows, user-paced frequency.
	update := store.SpawnUpdate{
		Status:              store.StatusAvailable,
		SterilizationDate:   now,
		SterilizationMethod: params.MethodLabel(),
	}
	for _, item := range items {
		if item.Kind != KindPreparedSpawn || item.RefID == "" {
			continue
		}
		if err := c.updater.UpdateSpawnStatus(ctx, item.RefID, update); err != nil {
			// Swallowed: one failed row must not block its siblings or the
			// run bookkeeping below.
			c.logger.Warnw("spawn update failed", "ref_id", item.RefID, "error", err)
		}
	}

	entry := LogEntry{
		Date:    now,
		Items:   items,
		PSI:     params.PSI,
		Minutes: params.Minutes,
	}
	c.log.Append(entry)
	r.Clear()

	c.logger.Infow("sterilization cycle complete",
		"psi", params.PSI, "minutes", params.Minutes, "items", len(items))
	return entry
}
