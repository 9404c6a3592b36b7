package history

import (
	"strings"
	"sync"

	"NewsSummarizer/internal/domain"
)

const (
	// DefaultCapacity is how many summaries are kept when no capacity is given.
	DefaultCapacity = 10
	// MaxCapacity bounds every history regardless of configuration.
	MaxCapacity = 10
)

// History is a bounded, newest-first list of summaries.
type History struct {
	mu       sync.RWMutex
	capacity int
	items    []domain.Summary
}

// New creates an empty history. A non-positive capacity falls back to
// DefaultCapacity and anything above MaxCapacity is clamped.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	return &History{
		capacity: capacity,
		items:    make([]domain.Summary, 0, capacity),
	}
}

// Capacity returns the maximum number of retained summaries.
func (h *History) Capacity() int {
	return h.capacity
}

// Add prepends s and evicts the oldest entries beyond capacity.
func (h *History) Add(s domain.Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items := make([]domain.Summary, 0, h.capacity)
	items = append(items, s)
	items = append(items, h.items...)
	if len(items) > h.capacity {
		items = items[:h.capacity]
	}
	h.items = items
}

// Load replaces the content with items, which must already be newest first.
func (h *History) Load(items []domain.Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(items) > h.capacity {
		items = items[:h.capacity]
	}
	h.items = append(make([]domain.Summary, 0, h.capacity), items...)
}

// Items returns a copy of the history, newest first.
func (h *History) Items() []domain.Summary {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.Summary, len(h.items))
	copy(out, h.items)
	return out
}

// Len reports the number of retained summaries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Latest returns the most recent summary.
func (h *History) Latest() (domain.Summary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.items) == 0 {
		return domain.Summary{}, false
	}
	return h.items[0], true
}

// Find looks a summary up by id.
func (h *History) Find(id string) (domain.Summary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.items {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Summary{}, false
}

// Search matches term case-insensitively against article titles and summary
// texts. An empty term matches everything.
func (h *History) Search(term string) []domain.Summary {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return h.Items()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []domain.Summary
	for _, s := range h.items {
		if strings.Contains(strings.ToLower(s.Article.Title), needle) ||
			strings.Contains(strings.ToLower(s.Text), needle) {
			out = append(out, s)
		}
	}
	return out
}
