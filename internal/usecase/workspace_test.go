package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/history"
	"NewsSummarizer/internal/infrastructure/fetcher"
	"NewsSummarizer/internal/infrastructure/storage"
	"NewsSummarizer/internal/summarizer"
	"NewsSummarizer/internal/validation"
)

const article = "Artificial intelligence systems are reshaping newsrooms around the world. " +
	"Editors use them to draft headlines. " +
	"Some reporters worry about accuracy and the erosion of trust in journalism! " +
	"Others see a chance to focus on deeper work. " +
	"Ok."

func newTestWorkspace(t *testing.T, deps WorkspaceDeps) *Workspace {
	t.Helper()

	if deps.Fetcher == nil {
		deps.Fetcher = fetcher.NewMock()
	}
	if deps.Summarizer == nil {
		deps.Summarizer = &recordingSummarizer{}
	}
	if deps.Logger == nil {
		deps.Logger = quietLogger()
	}
	return NewWorkspace(deps)
}

func TestSubmitPastedText(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 4, 9, 30, 0, 0, time.UTC)
	repo := storage.NewMemory()
	w := newTestWorkspace(t, WorkspaceDeps{
		Repository: repo,
		Clock:      func() time.Time { return now },
	})

	summary, err := w.Submit(context.Background(), domain.Submission{
		Content:  "  " + article + "  ",
		Category: domain.CategoryTechnology,
	})
	require.NoError(t, err)

	parsed, err := uuid.Parse(summary.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.Equal(t, DefaultTitle, summary.Article.Title)
	assert.Equal(t, article, summary.Article.Content)
	assert.Equal(t, domain.CategoryTechnology, summary.Article.Category)
	assert.Equal(t, now, summary.CreatedAt)
	assert.Equal(t, 1, summary.ReadingTimeMinutes)
	assert.Equal(t,
		"Artificial intelligence systems are reshaping newsrooms around the world. Some reporters worry about accuracy and the erosion of trust in journalism.",
		summary.Text)
	assert.Equal(t, domain.WordCount(summary.Text), summary.SummaryWordCount)

	latest, err := w.Latest()
	require.NoError(t, err)
	assert.Equal(t, summary.ID, latest.ID)

	stored, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, summary.ID, stored[0].ID)
}

func TestSubmitStripsMarkupAndKeepsTitle(t *testing.T) {
	t.Parallel()

	w := newTestWorkspace(t, WorkspaceDeps{})
	summary, err := w.Submit(context.Background(), domain.Submission{
		Title:    " <b>Breaking</b> news ",
		Content:  "<p>" + article + "</p>",
		Category: domain.CategoryWorld,
	})
	require.NoError(t, err)
	assert.Equal(t, "Breaking news", summary.Article.Title)
	assert.NotContains(t, summary.Article.Content, "<p>")
}

func TestSubmitKeepsAngleBracketsInProse(t *testing.T) {
	t.Parallel()

	const prose = "When a<b and c>d holds, the inequality chain is broken for sure. " +
		"Short one. " +
		"Readers expect the submitted prose to survive unchanged."

	w := newTestWorkspace(t, WorkspaceDeps{Summarizer: summarizer.Extractive{}})
	summary, err := w.Submit(context.Background(), domain.Submission{
		Content:  prose,
		Category: domain.CategoryScience,
	})
	require.NoError(t, err)

	assert.Equal(t, prose, summary.Article.Content)
	assert.Equal(t,
		"When a<b and c>d holds, the inequality chain is broken for sure. Readers expect the submitted prose to survive unchanged.",
		summary.Text)
}

func TestSubmitURLUsesFetcher(t *testing.T) {
	t.Parallel()

	sum := &recordingSummarizer{}
	w := newTestWorkspace(t, WorkspaceDeps{Summarizer: sum})

	summary, err := w.Submit(context.Background(), domain.Submission{
		URL:      "https://www.example.com/story",
		Category: domain.CategoryBusiness,
	})
	require.NoError(t, err)

	assert.Equal(t, "Article from www.example.com", summary.Article.Title)
	assert.Equal(t, "www.example.com", summary.Article.Source)
	assert.Equal(t, "https://www.example.com/story", summary.Article.URL)
	assert.True(t, strings.HasPrefix(summary.Article.Content, "This is a sample article content fetched from https://www.example.com/story."))
	assert.NotEmpty(t, summary.Text)
	assert.Equal(t, 1, summary.ReadingTimeMinutes)
	require.Len(t, sum.articles, 1)
}

func TestSubmitURLTitleOverride(t *testing.T) {
	t.Parallel()

	w := newTestWorkspace(t, WorkspaceDeps{})
	summary, err := w.Submit(context.Background(), domain.Submission{
		URL:      "https://example.com/a",
		Title:    "My title",
		Category: domain.CategoryLocal,
	})
	require.NoError(t, err)
	assert.Equal(t, "My title", summary.Article.Title)
}

func TestSubmitRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		sub  domain.Submission
		want error
	}{
		{"blank", domain.Submission{Content: "   \n\t", Category: domain.CategoryWorld}, ErrEmptyContent},
		{"nothing", domain.Submission{Category: domain.CategoryWorld}, ErrEmptyContent},
		{"markup only", domain.Submission{Content: "<br/><hr/>", Category: domain.CategoryWorld}, ErrEmptyContent},
		{"bad category", domain.Submission{Content: article, Category: "gossip"}, ErrInvalidSubmission},
		{"missing category", domain.Submission{Content: article}, ErrInvalidSubmission},
		{"bad url", domain.Submission{URL: "not a url", Category: domain.CategoryWorld}, ErrInvalidSubmission},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sum := &recordingSummarizer{}
			w := newTestWorkspace(t, WorkspaceDeps{Summarizer: sum})

			_, err := w.Submit(context.Background(), tc.sub)
			require.ErrorIs(t, err, tc.want)
			assert.Empty(t, sum.articles)
			assert.Empty(t, w.History())
		})
	}
}

func TestSubmitValidationErrorDetails(t *testing.T) {
	t.Parallel()

	w := newTestWorkspace(t, WorkspaceDeps{})
	_, err := w.Submit(context.Background(), domain.Submission{Content: article, Category: "gossip"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category")
}

func TestSubmitFetchFailure(t *testing.T) {
	t.Parallel()

	w := newTestWorkspace(t, WorkspaceDeps{Fetcher: &fakeFetcher{}})
	_, err := w.Submit(context.Background(), domain.Submission{URL: "https://example.com/missing", Category: domain.CategoryWorld})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Empty(t, w.History())
}

func TestSubmitSummarizerFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("model overloaded")
	w := newTestWorkspace(t, WorkspaceDeps{Summarizer: &recordingSummarizer{err: boom}})
	_, err := w.Submit(context.Background(), domain.Submission{Content: article, Category: domain.CategoryWorld})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, w.History())
}

func TestSubmitRepositoryFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	w := newTestWorkspace(t, WorkspaceDeps{Repository: failingRepository{err: boom}})
	_, err := w.Submit(context.Background(), domain.Submission{Content: article, Category: domain.CategoryWorld})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, w.History())
}

func TestSubmitHonoursDelayCancellation(t *testing.T) {
	t.Parallel()

	sum := &recordingSummarizer{}
	w := newTestWorkspace(t, WorkspaceDeps{Summarizer: sum, Delay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := w.Submit(ctx, domain.Submission{Content: article, Category: domain.CategoryWorld})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, sum.articles)
}

func TestSubmitSerialisesConcurrentCalls(t *testing.T) {
	t.Parallel()

	sum := &recordingSummarizer{hold: 10 * time.Millisecond}
	w := newTestWorkspace(t, WorkspaceDeps{Summarizer: sum})

	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := w.Submit(context.Background(), domain.Submission{
				Title:    fmt.Sprintf("Story %d", i),
				Content:  article,
				Category: domain.CategoryWorld,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, sum.maxSeen)
	assert.Len(t, w.History(), 5)
}

func TestHistoryBoundedAndPersisted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := storage.NewMemory()
	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	w := newTestWorkspace(t, WorkspaceDeps{Repository: repo, Clock: clock, History: history.New(10)})
	for i := range 12 {
		_, err := w.Submit(ctx, domain.Submission{
			Title:    fmt.Sprintf("Story %02d", i),
			Content:  article,
			Category: domain.CategoryWorld,
		})
		require.NoError(t, err)
	}

	items := w.History()
	require.Len(t, items, 10)
	assert.Equal(t, "Story 11", items[0].Article.Title)
	assert.Equal(t, "Story 02", items[9].Article.Title)

	stored, err := repo.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, stored, 10)

	reloaded := newTestWorkspace(t, WorkspaceDeps{Repository: repo})
	require.NoError(t, reloaded.LoadHistory(ctx))
	assert.Equal(t, items, reloaded.History())

	found := reloaded.Search("story 0")
	assert.Len(t, found, 8)

	got, err := reloaded.Find(items[3].ID)
	require.NoError(t, err)
	assert.Equal(t, items[3].Article.Title, got.Article.Title)

	_, err = reloaded.Find("nope")
	require.ErrorIs(t, err, ErrSummaryNotFound)
}

func TestLatestOnEmptyHistory(t *testing.T) {
	t.Parallel()

	_, err := newTestWorkspace(t, WorkspaceDeps{}).Latest()
	require.ErrorIs(t, err, ErrSummaryNotFound)
}

func TestLoadHistoryFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("offline")
	w := newTestWorkspace(t, WorkspaceDeps{Repository: failingRepository{err: boom}})
	require.ErrorIs(t, w.LoadHistory(context.Background()), boom)
}
