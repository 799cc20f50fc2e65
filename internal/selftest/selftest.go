// Package selftest replays a fast-forwarded clock against an in-memory
// store, exercising classification and retention without ever touching the
// real snapshot tooling.
package selftest

import (
	"context"
	"fmt"
	"time"

	"github.com/subvol-tools/btrsnapd/internal/detect"
	"github.com/subvol-tools/btrsnapd/internal/logging"
	"github.com/subvol-tools/btrsnapd/internal/monitor"
	"github.com/subvol-tools/btrsnapd/internal/retention"
	"github.com/subvol-tools/btrsnapd/internal/snapshot"
	"github.com/subvol-tools/btrsnapd/internal/store"
)

// Result summarizes one simulated run.
type Result struct {
	Ticks     int
	Created   map[snapshot.Bucket]int
	Deleted   int
	Remaining map[snapshot.Bucket]int
}

// fakeClock is advanced manually between cycles.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

// tickingSource returns a fresh token on every query, so every simulated
// cycle after the cold-start one sees a change.
type tickingSource struct {
	gen int
}

func (s *tickingSource) Current(ctx context.Context, path string) (detect.Token, error) {
	s.gen++
	return detect.Token(fmt.Sprintf("%d", s.gen)), nil
}

// recordingStore counts creates and deletes on its way to a MemStore.
type recordingStore struct {
	mem     *store.MemStore
	created map[snapshot.Bucket]int
	deleted int
}

func (r *recordingStore) List(ctx context.Context) ([]string, error) {
	return r.mem.List(ctx)
}

func (r *recordingStore) Create(ctx context.Context, name string) error {
	if err := r.mem.Create(ctx, name); err != nil {
		return err
	}
	if id, ok := snapshot.Parse(name); ok {
		r.created[id.Bucket]++
	}
	return nil
}

func (r *recordingStore) Delete(ctx context.Context, name string) error {
	if err := r.mem.Delete(ctx, name); err != nil {
		return err
	}
	r.deleted++
	return nil
}

// Run simulates the monitor over the period starting at start, one cycle
// every step, with the given per-bucket cap.
func Run(ctx context.Context, start time.Time, period, step time.Duration, maxPerBucket int, log logging.Logger) (Result, error) {
	if step <= 0 {
		return Result{}, fmt.Errorf("step must be positive, got %s", step)
	}

	clk := &fakeClock{t: start}
	rec := &recordingStore{
		mem:     store.NewMemStore(),
		created: map[snapshot.Bucket]int{},
	}
	m := monitor.New(monitor.Config{
		Source:    "selftest",
		Interval:  step,
		Store:     rec,
		Tokens:    &tickingSource{},
		Retention: retention.New(rec, maxPerBucket, log),
		Clock:     clk,
		Log:       log,
	})

	ticks := 0
	token := detect.Unknown
	for end := start.Add(period); clk.t.Before(end); clk.t = clk.t.Add(step) {
		token = m.Cycle(ctx, token)
		ticks++
	}

	names, err := rec.List(ctx)
	if err != nil {
		return Result{}, err
	}
	remaining := map[snapshot.Bucket]int{}
	for b, ids := range snapshot.Take(names) {
		remaining[b] = len(ids)
	}

	return Result{
		Ticks:     ticks,
		Created:   rec.created,
		Deleted:   rec.deleted,
		Remaining: remaining,
	}, nil
}
