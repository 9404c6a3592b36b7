package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSummarizer/internal/domain"
)

func summaryAt(i int) domain.Summary {
	return domain.Summary{
		ID:        fmt.Sprintf("s-%02d", i),
		Article:   domain.Article{Title: fmt.Sprintf("Title %d", i)},
		Text:      fmt.Sprintf("summary text %d", i),
		CreatedAt: time.Date(2025, 1, 1, 0, i, 0, 0, time.UTC),
	}
}

func TestHistoryKeepsTenNewestFirst(t *testing.T) {
	t.Parallel()

	h := New(0)
	require.Equal(t, DefaultCapacity, h.Capacity())

	for i := 1; i <= 15; i++ {
		h.Add(summaryAt(i))
	}

	items := h.Items()
	require.Len(t, items, 10)
	for i, s := range items {
		assert.Equal(t, summaryAt(15-i).ID, s.ID)
	}
	for i := 1; i < len(items); i++ {
		assert.True(t, items[i-1].CreatedAt.After(items[i].CreatedAt))
	}

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "s-15", latest.ID)

	_, ok = h.Find("s-05")
	assert.False(t, ok, "evicted summary must not be found")
	_, ok = h.Find("s-06")
	assert.True(t, ok)
}

func TestHistoryCapacityIsClamped(t *testing.T) {
	t.Parallel()

	h := New(50)
	require.Equal(t, MaxCapacity, h.Capacity())

	for i := 1; i <= 20; i++ {
		h.Add(summaryAt(i))
	}
	assert.Len(t, h.Items(), MaxCapacity)
}

func TestHistoryItemsIsACopy(t *testing.T) {
	t.Parallel()

	h := New(3)
	h.Add(summaryAt(1))

	items := h.Items()
	items[0].ID = "mutated"

	got, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "s-01", got.ID)
}

func TestHistoryLoadTruncates(t *testing.T) {
	t.Parallel()

	h := New(2)
	h.Load([]domain.Summary{summaryAt(3), summaryAt(2), summaryAt(1)})

	assert.Equal(t, 2, h.Len())
	latest, _ := h.Latest()
	assert.Equal(t, "s-03", latest.ID)
}

func TestHistorySearch(t *testing.T) {
	t.Parallel()

	h := New(5)
	h.Add(domain.Summary{ID: "a", Article: domain.Article{Title: "Markets Rally"}, Text: "stocks up"})
	h.Add(domain.Summary{ID: "b", Article: domain.Article{Title: "Cup final"}, Text: "record viewership for MARKETS"})
	h.Add(domain.Summary{ID: "c", Article: domain.Article{Title: "Garden"}, Text: "community"})

	got := h.Search("markets")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	assert.Len(t, h.Search("  "), 3)
	assert.Empty(t, h.Search("weather"))
}

func TestHistoryConcurrentAdd(t *testing.T) {
	t.Parallel()

	h := New(10)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Add(summaryAt(i))
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, h.Len())
}

func TestHistoryEmpty(t *testing.T) {
	t.Parallel()

	h := New(10)
	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Empty(t, h.Items())
}
