// Package retention enforces the per-bucket snapshot cap.
package retention

import (
	"context"
	"fmt"

	"github.com/subvol-tools/btrsnapd/internal/logging"
	"github.com/subvol-tools/btrsnapd/internal/snapshot"
	"github.com/subvol-tools/btrsnapd/internal/store"
)

type Engine struct {
	store store.Store
	max   int
	log   logging.Logger
}

func New(st store.Store, maxPerBucket int, log logging.Logger) *Engine {
	return &Engine{store: st, max: maxPerBucket, log: log}
}

// Enforce trims the given bucket, deleting the oldest entries first. The
// store is re-listed here rather than reusing the inventory from
// classification, because a create in between must be counted. When the
// bucket is at or over the cap, one extra slot beyond the overflow is
// reclaimed so the next create tops the bucket out at exactly the cap.
// Individual delete failures are logged and the rest of the batch still
// runs.
func (e *Engine) Enforce(ctx context.Context, bucket snapshot.Bucket) error {
	names, err := e.store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing snapshot store: %w", err)
	}

	ids := snapshot.Take(names)[bucket]
	if len(ids) < e.max {
		return nil
	}

	excess := len(ids) - e.max + 1
	for _, id := range ids[:excess] {
		if err := e.store.Delete(ctx, id.Name()); err != nil {
			e.log.Error("retention: delete failed", "name", id.Name(), "error", err)
			continue
		}
		e.log.Info("retention: deleted old snapshot", "name", id.Name())
	}
	return nil
}

// EnforceAll runs Enforce for every bucket.
func (e *Engine) EnforceAll(ctx context.Context) error {
	for _, b := range snapshot.Buckets {
		if err := e.Enforce(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
