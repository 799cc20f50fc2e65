package store

import (
	"context"
	"testing"

	"github.com/subvol-tools/btrsnapd/internal/logging"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	if err := m.Create(ctx, "20240315_102300_MINUTE"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Create(ctx, "20240315_102300_MINUTE"); err == nil {
		t.Error("duplicate Create succeeded, want error")
	}

	names, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "20240315_102300_MINUTE" {
		t.Errorf("List = %v", names)
	}

	if err := m.Delete(ctx, "20240315_102300_MINUTE"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, "20240315_102300_MINUTE"); err == nil {
		t.Error("Delete of missing snapshot succeeded, want error")
	}
}

func TestDryRunSuppressesWrites(t *testing.T) {
	ctx := context.Background()
	mem := NewMemStore()
	if err := mem.Create(ctx, "20240315_102300_MINUTE"); err != nil {
		t.Fatal(err)
	}

	d := &DryRun{Wrapped: mem, Log: logging.Nop()}

	if err := d.Create(ctx, "20240315_102400_MINUTE"); err != nil {
		t.Fatalf("dry-run Create: %v", err)
	}
	if err := d.Delete(ctx, "20240315_102300_MINUTE"); err != nil {
		t.Fatalf("dry-run Delete: %v", err)
	}

	// Listing passes through and shows the store untouched.
	names, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "20240315_102300_MINUTE" {
		t.Errorf("List = %v, want the original single entry", names)
	}
}
