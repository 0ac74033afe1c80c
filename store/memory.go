package store

import (
	"context"
	"sort"
	"sync"

	"github.com/intervention-engine/strokerisk/plugin"
)

// MemoryStore keeps checks and pies in process memory.  It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	checks map[string]Check
	pies   map[string]plugin.Pie
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		checks: make(map[string]Check),
		pies:   make(map[string]plugin.Pie),
	}
}

func (m *MemoryStore) SaveCheck(ctx context.Context, check *Check) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.checks[check.ID]; ok {
		return ErrDuplicate
	}
	m.checks[check.ID] = *check
	return nil
}

func (m *MemoryStore) FindCheck(ctx context.Context, id string) (*Check, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	check, ok := m.checks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &check, nil
}

func (m *MemoryStore) ListChecks(ctx context.Context, limit int) ([]*Check, error) {
	m.mu.RLock()
	checks := make([]*Check, 0, len(m.checks))
	for _, check := range m.checks {
		check := check
		checks = append(checks, &check)
	}
	m.mu.RUnlock()

	// newest first, ties by id so equal timestamps list the same way every time
	sort.SliceStable(checks, func(i, j int) bool {
		if !checks[i].CheckedAt.Equal(checks[j].CheckedAt) {
			return checks[i].CheckedAt.After(checks[j].CheckedAt)
		}
		return checks[i].ID < checks[j].ID
	})
	if limit > 0 && len(checks) > limit {
		checks = checks[:limit]
	}
	return checks, nil
}

func (m *MemoryStore) SavePie(ctx context.Context, pie *plugin.Pie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := pie.Id.Hex()
	if _, ok := m.pies[id]; ok {
		return ErrDuplicate
	}
	m.pies[id] = *pie.Clone(false)
	return nil
}

func (m *MemoryStore) FindPie(ctx context.Context, id string) (*plugin.Pie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pie, ok := m.pies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return pie.Clone(false), nil
}
