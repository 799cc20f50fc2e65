// Package store abstracts the snapshot store and the btrfs tooling behind it.
package store

import (
	"context"

	"github.com/subvol-tools/btrsnapd/internal/detect"
)

// Store is the snapshot store the rotation core works against.
type Store interface {
	// List returns the raw entry names currently present in the store.
	// It must reflect the true state of the store on every call.
	List(ctx context.Context) ([]string, error)
	// Create materializes a read-only snapshot of the source under name.
	// It fails if name already exists.
	Create(ctx context.Context, name string) error
	// Delete destroys the named snapshot. It fails if name does not
	// belong to this store.
	Delete(ctx context.Context, name string) error
}

// TokenSource reports the current change token of a subvolume. It must fail
// explicitly when the subvolume is unreadable rather than return a stale
// value, otherwise a broken source would never be snapshotted again.
type TokenSource interface {
	Current(ctx context.Context, path string) (detect.Token, error)
}
