package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/history"
	"NewsSummarizer/internal/ports"
	"NewsSummarizer/internal/sanitize"
	"NewsSummarizer/internal/validation"
)

// DefaultTitle names pasted articles submitted without a title.
const DefaultTitle = "Custom Article"

var (
	// ErrEmptyContent rejects submissions with neither URL nor text.
	ErrEmptyContent = errors.New("article content is empty")
	// ErrInvalidSubmission wraps validation failures.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrSummaryNotFound is returned by lookups for unknown ids.
	ErrSummaryNotFound = errors.New("summary not found")
)

// WorkspaceDeps wires the driven adapters used by the workspace.
type WorkspaceDeps struct {
	Fetcher    ports.ContentFetcher
	Summarizer ports.Summarizer
	Repository ports.SummaryRepository
	History    *history.History
	Validator  *validation.Validator
	Sanitizer  *sanitize.Sanitizer
	Delay      time.Duration
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Workspace is the submission workflow plus the summary history of the
// signed-in user.
type Workspace struct {
	fetcher    ports.ContentFetcher
	summarizer ports.Summarizer
	repository ports.SummaryRepository
	history    *history.History
	validator  *validation.Validator
	sanitizer  *sanitize.Sanitizer
	delay      time.Duration
	logger     *slog.Logger
	clock      func() time.Time

	// one submission at a time
	busy *semaphore.Weighted
}

// NewWorkspace constructs the workspace, filling optional dependencies.
func NewWorkspace(deps WorkspaceDeps) *Workspace {
	w := &Workspace{
		fetcher:    deps.Fetcher,
		summarizer: deps.Summarizer,
		repository: deps.Repository,
		history:    deps.History,
		validator:  deps.Validator,
		sanitizer:  deps.Sanitizer,
		delay:      deps.Delay,
		logger:     deps.Logger,
		clock:      deps.Clock,
		busy:       semaphore.NewWeighted(1),
	}
	if w.history == nil {
		w.history = history.New(history.DefaultCapacity)
	}
	if w.validator == nil {
		w.validator = validation.New()
	}
	if w.sanitizer == nil {
		w.sanitizer = sanitize.New()
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.clock == nil {
		w.clock = time.Now
	}
	return w
}

// LoadHistory fills the in-memory history from the repository.
func (w *Workspace) LoadHistory(ctx context.Context) error {
	if w.repository == nil {
		return nil
	}

	items, err := w.repository.Recent(ctx, w.history.Capacity())
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	w.history.Load(items)
	w.logger.Debug("history loaded", "count", len(items))
	return nil
}

// Submit turns a submission into a summary and records it in the history.
// Concurrent calls are serialised.
func (w *Workspace) Submit(ctx context.Context, sub domain.Submission) (domain.Summary, error) {
	sub.URL = strings.TrimSpace(sub.URL)
	sub.Title = strings.TrimSpace(sub.Title)
	sub.Content = strings.TrimSpace(sub.Content)

	if sub.URL == "" && sub.Content == "" {
		return domain.Summary{}, ErrEmptyContent
	}
	if err := w.validator.Struct(sub); err != nil {
		return domain.Summary{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	if w.summarizer == nil {
		return domain.Summary{}, fmt.Errorf("no summarizer configured")
	}

	if err := w.busy.Acquire(ctx, 1); err != nil {
		return domain.Summary{}, fmt.Errorf("wait for previous submission: %w", err)
	}
	defer w.busy.Release(1)

	article, err := w.buildArticle(ctx, sub)
	if err != nil {
		return domain.Summary{}, err
	}

	if err := sleep(ctx, w.delay); err != nil {
		return domain.Summary{}, err
	}

	text, err := w.summarizer.Summarize(ctx, article)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summarize %q: %w", article.Title, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.Summary{}, fmt.Errorf("generate summary id: %w", err)
	}

	summary := domain.Summary{
		ID:                 id.String(),
		Article:            article,
		Text:               text,
		CreatedAt:          w.clock().UTC(),
		ReadingTimeMinutes: domain.ReadingTime(article.Content),
		SummaryWordCount:   domain.WordCount(text),
	}

	if err := w.persist(ctx, summary); err != nil {
		return domain.Summary{}, err
	}
	w.history.Add(summary)

	w.logger.Info("article summarized",
		"summary_id", summary.ID,
		"title", article.Title,
		"category", article.Category,
		"reading_time", summary.ReadingTimeMinutes,
		"summary_words", summary.SummaryWordCount,
	)
	return summary, nil
}

func (w *Workspace) buildArticle(ctx context.Context, sub domain.Submission) (domain.Article, error) {
	if sub.URL != "" {
		if w.fetcher == nil {
			return domain.Article{}, fmt.Errorf("no content fetcher configured")
		}

		fetched, err := w.fetcher.Fetch(ctx, sub.URL)
		if err != nil {
			return domain.Article{}, fmt.Errorf("fetch %s: %w", sub.URL, err)
		}

		content := w.sanitizer.PlainText(fetched.Content)
		if content == "" {
			return domain.Article{}, fmt.Errorf("%w: nothing extracted from %s", ErrEmptyContent, sub.URL)
		}

		title := sub.Title
		if title == "" {
			title = fetched.Title
		}

		return domain.Article{
			Title:       w.sanitizer.PlainText(title),
			Content:     content,
			URL:         sub.URL,
			Source:      fetched.Source,
			Category:    sub.Category,
			PublishedAt: fetched.PublishedAt,
			ImageURL:    fetched.ImageURL,
			Author:      fetched.Author,
		}, nil
	}

	content := w.sanitizer.PlainText(sub.Content)
	if content == "" {
		return domain.Article{}, ErrEmptyContent
	}

	title := w.sanitizer.PlainText(sub.Title)
	if title == "" {
		title = DefaultTitle
	}

	return domain.Article{
		Title:    title,
		Content:  content,
		Category: sub.Category,
	}, nil
}

func (w *Workspace) persist(ctx context.Context, summary domain.Summary) error {
	if w.repository == nil {
		return nil
	}
	if err := w.repository.Save(ctx, summary); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	if err := w.repository.Prune(ctx, w.history.Capacity()); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// History returns the retained summaries, newest first.
func (w *Workspace) History() []domain.Summary {
	return w.history.Items()
}

// Search filters the history by a case-insensitive term.
func (w *Workspace) Search(term string) []domain.Summary {
	return w.history.Search(term)
}

// Find returns the summary with id.
func (w *Workspace) Find(id string) (domain.Summary, error) {
	summary, ok := w.history.Find(strings.TrimSpace(id))
	if !ok {
		return domain.Summary{}, fmt.Errorf("%w: %s", ErrSummaryNotFound, id)
	}
	return summary, nil
}

// Latest returns the most recent summary.
func (w *Workspace) Latest() (domain.Summary, error) {
	summary, ok := w.history.Latest()
	if !ok {
		return domain.Summary{}, ErrSummaryNotFound
	}
	return summary, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
