package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/subvol-tools/btrsnapd/internal/detect"
	"github.com/subvol-tools/btrsnapd/internal/snapshot"
)

// Runner executes the btrfs tool and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

type execRunner struct{}

// Run invokes btrfs synchronously. Cancellation does not kill an in-flight
// call: a shutdown must not leave a half-created snapshot behind.
func (execRunner) Run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command("btrfs", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("btrfs %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// BtrfsStore is the real snapshot store: a directory holding read-only
// btrfs snapshots of one source subvolume.
type BtrfsStore struct {
	source string
	dir    string
	run    Runner
}

func NewBtrfsStore(source, dir string) *BtrfsStore {
	return &BtrfsStore{source: source, dir: dir, run: execRunner{}}
}

func (s *BtrfsStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot dir %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() {
			names = append(names, ent.Name())
		}
	}
	return names, nil
}

func (s *BtrfsStore) Create(ctx context.Context, name string) error {
	dst := filepath.Join(s.dir, name)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("snapshot %s already exists", name)
	}
	_, err := s.run.Run(ctx, "subvolume", "snapshot", "-r", s.source, dst)
	return err
}

func (s *BtrfsStore) Delete(ctx context.Context, name string) error {
	if _, ok := snapshot.Parse(name); !ok {
		return fmt.Errorf("%s is not a managed snapshot", name)
	}
	_, err := s.run.Run(ctx, "subvolume", "delete", filepath.Join(s.dir, name))
	return err
}

// GenerationSource reads the btrfs generation counter of a subvolume, which
// bumps on every committed modification underneath it.
type GenerationSource struct {
	run Runner
}

func NewGenerationSource() *GenerationSource {
	return &GenerationSource{run: execRunner{}}
}

func (g *GenerationSource) Current(ctx context.Context, path string) (detect.Token, error) {
	out, err := g.run.Run(ctx, "subvolume", "show", path)
	if err != nil {
		return detect.Unknown, fmt.Errorf("querying subvolume %s: %w", path, err)
	}
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(line, ":")
		// exact key match so "Gen at creation" is not mistaken for it
		if ok && strings.TrimSpace(key) == "Generation" {
			return detect.Token(strings.TrimSpace(val)), nil
		}
	}
	return detect.Unknown, fmt.Errorf("no generation in subvolume show output for %s", path)
}
