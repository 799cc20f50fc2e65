package store

import (
	"context"
	"fmt"
	"sort"
)

// MemStore keeps snapshot names in memory. It backs the self-test mode and
// tests, and is owned by a single goroutine like the real store.
type MemStore struct {
	names map[string]struct{}
}

func NewMemStore() *MemStore {
	return &MemStore{names: map[string]struct{}{}}
}

func (m *MemStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.names))
	for name := range m.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemStore) Create(ctx context.Context, name string) error {
	if _, ok := m.names[name]; ok {
		return fmt.Errorf("snapshot %s already exists", name)
	}
	m.names[name] = struct{}{}
	return nil
}

func (m *MemStore) Delete(ctx context.Context, name string) error {
	if _, ok := m.names[name]; !ok {
		return fmt.Errorf("snapshot %s does not exist", name)
	}
	delete(m.names, name)
	return nil
}
