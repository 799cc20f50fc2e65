// Package monitor drives the snapshot cycle: detect a change, classify the
// bucket, create the snapshot, trim the bucket, sleep, repeat.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/subvol-tools/btrsnapd/internal/detect"
	"github.com/subvol-tools/btrsnapd/internal/logging"
	"github.com/subvol-tools/btrsnapd/internal/retention"
	"github.com/subvol-tools/btrsnapd/internal/rotation"
	"github.com/subvol-tools/btrsnapd/internal/snapshot"
	"github.com/subvol-tools/btrsnapd/internal/store"
)

// Clock abstracts time.Now so the self-test mode and tests can fast-forward.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Config struct {
	Source   string
	Interval time.Duration
	// Schedule, when non-nil, replaces Interval for deciding the next check.
	Schedule  cron.Schedule
	Store     store.Store
	Tokens    store.TokenSource
	Retention *retention.Engine
	Clock     Clock // nil means SystemClock
	Log       logging.Logger
}

// Monitor owns all mutable state of the loop. One cycle runs to completion
// before the next starts, so nothing here needs locking.
type Monitor struct {
	cfg Config
}

func New(cfg Config) *Monitor {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Monitor{cfg: cfg}
}

// Run drives cycles until ctx is cancelled. An in-flight cycle always
// completes; cancellation is only observed between cycles.
func (m *Monitor) Run(ctx context.Context) error {
	m.cfg.Log.Info("monitor started",
		"source", m.cfg.Source,
		"interval", m.cfg.Interval.String())

	token := detect.Unknown
	for {
		token = m.Cycle(ctx, token)

		select {
		case <-ctx.Done():
			m.cfg.Log.Info("monitor stopped")
			return nil
		case <-time.After(m.nextWake()):
		}
	}
}

// nextWake returns how long to sleep before the next check.
func (m *Monitor) nextWake() time.Duration {
	if m.cfg.Schedule != nil {
		now := m.cfg.Clock.Now()
		return m.cfg.Schedule.Next(now).Sub(now)
	}
	return m.cfg.Interval
}

// Cycle runs one detect→classify→create→enforce pass and returns the token
// to carry into the next cycle. Any failure is logged and skips the rest of
// the cycle; the loop keeps running and the poll interval is the retry.
func (m *Monitor) Cycle(ctx context.Context, prev detect.Token) detect.Token {
	curr, err := m.cfg.Tokens.Current(ctx, m.cfg.Source)
	if err != nil {
		m.cfg.Log.Error("change check failed, skipping cycle", "error", err)
		return prev
	}

	changed, next := detect.Advance(prev, curr)
	if !changed {
		m.cfg.Log.Debug("no change detected", "token", string(next))
		return next
	}
	m.cfg.Log.Info("change detected", "source", m.cfg.Source, "token", string(curr))

	if err := m.Snapshot(ctx); err != nil {
		m.cfg.Log.Error("snapshot failed", "error", err)
		return next
	}

	// Creating the snapshot bumps the source generation; re-read so the
	// next cycle does not see our own write as a change.
	if t, err := m.cfg.Tokens.Current(ctx, m.cfg.Source); err == nil {
		next = t
	}
	return next
}

// Snapshot classifies, creates and trims one snapshot for the current time.
// Retention runs only after a successful create; when nothing was created
// there is nothing to make room for.
func (m *Monitor) Snapshot(ctx context.Context) error {
	names, err := m.cfg.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing snapshot store: %w", err)
	}

	now := m.cfg.Clock.Now()
	bucket := rotation.Classify(now, snapshot.Take(names))
	id := snapshot.NewID(now, bucket)

	if err := m.cfg.Store.Create(ctx, id.Name()); err != nil {
		return fmt.Errorf("creating snapshot %s: %w", id.Name(), err)
	}
	m.cfg.Log.Info("created snapshot", "name", id.Name(), "bucket", string(bucket))

	if err := m.cfg.Retention.Enforce(ctx, bucket); err != nil {
		m.cfg.Log.Error("retention failed", "bucket", string(bucket), "error", err)
	}
	return nil
}
