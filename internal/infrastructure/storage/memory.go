package storage

import (
	"context"
	"slices"
	"sync"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

// Memory is a process-local store used by the "memory" driver and in tests.
type Memory struct {
	mu        sync.RWMutex
	values    map[string][]byte
	summaries []domain.Summary
}

var (
	_ ports.KeyValueStore     = (*Memory)(nil)
	_ ports.SummaryRepository = (*Memory)(nil)
)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Save replaces a summary with the same id or inserts it at the front.
func (m *Memory) Save(_ context.Context, summary domain.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.summaries {
		if m.summaries[i].ID == summary.ID {
			m.summaries[i] = summary
			return nil
		}
	}
	m.summaries = append([]domain.Summary{summary}, m.summaries...)
	slices.SortStableFunc(m.summaries, newestFirst)
	return nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	n := min(limit, len(m.summaries))
	return slices.Clone(m.summaries[:n]), nil
}

func (m *Memory) Prune(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(m.summaries) > keep {
		m.summaries = m.summaries[:keep]
	}
	return nil
}

func newestFirst(a, b domain.Summary) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}
