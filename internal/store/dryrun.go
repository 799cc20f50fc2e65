package store

import (
	"context"

	"github.com/subvol-tools/btrsnapd/internal/logging"
)

// DryRun wraps a Store, logging create and delete decisions without acting
// on them. Listing passes through so decisions are made against the real
// inventory.
type DryRun struct {
	Wrapped Store
	Log     logging.Logger
}

func (d *DryRun) List(ctx context.Context) ([]string, error) {
	return d.Wrapped.List(ctx)
}

func (d *DryRun) Create(ctx context.Context, name string) error {
	d.Log.Info("dry-run: would create snapshot", "name", name)
	return nil
}

func (d *DryRun) Delete(ctx context.Context, name string) error {
	d.Log.Info("dry-run: would delete snapshot", "name", name)
	return nil
}
