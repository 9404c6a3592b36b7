package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
	"NewsSummarizer/internal/sanitize"
)

// ErrAllSourcesFailed is returned when no digest source produced a summary.
var ErrAllSourcesFailed = errors.New("every digest source failed")

// DigestDeps wires the adapters used by the digest run.
type DigestDeps struct {
	Sources    []domain.Source
	Categories []domain.Category
	Fetcher    ports.ContentFetcher
	Summarizer ports.Summarizer
	Notifiers  []ports.Notifier
	Logger     *slog.Logger
}

// Digest fetches every configured source, summarises it and publishes one
// message to all notifiers.
type Digest struct {
	sources    []domain.Source
	fetcher    ports.ContentFetcher
	summarizer ports.Summarizer
	notifiers  []ports.Notifier
	sanitizer  *sanitize.Sanitizer
	logger     *slog.Logger
}

// DigestEntry is one summarised source.
type DigestEntry struct {
	Article            domain.Article
	Summary            string
	ReadingTimeMinutes int
}

// NewDigest constructs the digest use case. When Categories is non-empty
// only sources in those categories are processed.
func NewDigest(deps DigestDeps) *Digest {
	sources := deps.Sources
	if len(deps.Categories) > 0 {
		sources = slices.DeleteFunc(slices.Clone(sources), func(s domain.Source) bool {
			return !slices.Contains(deps.Categories, s.Category)
		})
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Digest{
		sources:    sources,
		fetcher:    deps.Fetcher,
		summarizer: deps.Summarizer,
		notifiers:  deps.Notifiers,
		sanitizer:  sanitize.New(),
		logger:     logger,
	}
}

// Sources returns the sources a run will process.
func (d *Digest) Sources() []domain.Source {
	return slices.Clone(d.sources)
}

// Run builds and publishes the digest for day. Failing sources are logged
// and skipped; the run fails only when none succeeds.
func (d *Digest) Run(ctx context.Context, day time.Time) error {
	if len(d.sources) == 0 {
		d.logger.Warn("digest has no sources configured")
		return nil
	}
	if d.fetcher == nil || d.summarizer == nil {
		return fmt.Errorf("digest misconfigured: fetcher and summarizer are required")
	}

	var (
		entries []DigestEntry
		errs    []error
	)
	for _, source := range d.sources {
		entry, err := d.process(ctx, source)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			d.logger.Warn("digest source failed", "url", source.URL, "error", err)
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return fmt.Errorf("%w: %w", ErrAllSourcesFailed, errors.Join(errs...))
	}

	message := buildDigestMessage(day, entries)

	var publishErrs []error
	for _, notifier := range d.notifiers {
		if err := notifier.PublishDigest(ctx, message); err != nil {
			d.logger.Error("publish digest failed", "error", err)
			publishErrs = append(publishErrs, err)
		}
	}
	if err := errors.Join(publishErrs...); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	d.logger.Info("digest published",
		"day", day.Format(time.DateOnly),
		"entries", len(entries),
		"failed", len(errs),
	)
	return nil
}

func (d *Digest) process(ctx context.Context, source domain.Source) (DigestEntry, error) {
	fetched, err := d.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		return DigestEntry{}, fmt.Errorf("fetch %s: %w", source.URL, err)
	}

	content := d.sanitizer.PlainText(fetched.Content)
	if content == "" {
		return DigestEntry{}, fmt.Errorf("%w: %s", ErrEmptyContent, source.URL)
	}

	article := domain.Article{
		Title:       d.sanitizer.PlainText(fetched.Title),
		Content:     content,
		URL:         source.URL,
		Source:      fetched.Source,
		Category:    source.Category,
		PublishedAt: fetched.PublishedAt,
		ImageURL:    fetched.ImageURL,
		Author:      fetched.Author,
	}

	summary, err := d.summarizer.Summarize(ctx, article)
	if err != nil {
		return DigestEntry{}, fmt.Errorf("summarize %s: %w", source.URL, err)
	}

	return DigestEntry{
		Article:            article,
		Summary:            summary,
		ReadingTimeMinutes: domain.ReadingTime(content),
	}, nil
}

// buildDigestMessage groups entries by category in display order.
func buildDigestMessage(day time.Time, entries []DigestEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "News digest for %s\n", day.Format(time.DateOnly))

	for _, category := range domain.Categories() {
		first := true
		for _, entry := range entries {
			if entry.Article.Category != category {
				continue
			}
			if first {
				fmt.Fprintf(&b, "\n%s %s\n", category.Icon(), category.DisplayName())
				first = false
			}
			fmt.Fprintf(&b, "\n- %s", entry.Article.Title)
			if entry.Article.Source != "" {
				fmt.Fprintf(&b, " (%s)", entry.Article.Source)
			}
			fmt.Fprintf(&b, "\nReading time: %d min\n%s\n%s\n",
				entry.ReadingTimeMinutes,
				entry.Summary,
				entry.Article.URL)
		}
	}

	return b.String()
}
