package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/summarizer"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFetcher struct {
	pages map[string]domain.FetchedContent
	calls []string
	mu    sync.Mutex
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (domain.FetchedContent, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	f.mu.Unlock()

	page, ok := f.pages[rawURL]
	if !ok {
		return domain.FetchedContent{}, errors.New("404 not found")
	}
	return page, nil
}

type recordingSummarizer struct {
	mu       sync.Mutex
	articles []domain.Article
	err      error
	inFlight int
	maxSeen  int
	hold     time.Duration
}

func (r *recordingSummarizer) Summarize(ctx context.Context, article domain.Article) (string, error) {
	r.mu.Lock()
	r.articles = append(r.articles, article)
	r.inFlight++
	if r.inFlight > r.maxSeen {
		r.maxSeen = r.inFlight
	}
	r.mu.Unlock()

	if r.hold > 0 {
		time.Sleep(r.hold)
	}

	r.mu.Lock()
	r.inFlight--
	r.mu.Unlock()

	if r.err != nil {
		return "", r.err
	}
	return summarizer.NewExtractive().Summarize(ctx, article)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) PublishDigest(_ context.Context, digest string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, digest)
	return n.err
}

type failingRepository struct{ err error }

func (f failingRepository) Save(context.Context, domain.Summary) error { return f.err }
func (f failingRepository) Recent(context.Context, int) ([]domain.Summary, error) {
	return nil, f.err
}
func (f failingRepository) Prune(context.Context, int) error { return f.err }
