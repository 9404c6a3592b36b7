package ports

import (
	"context"
	"time"

	"NewsSummarizer/internal/domain"
)

// ContentFetcher turns a submitted URL into article text.
type ContentFetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.FetchedContent, error)
}

// AuthBackend verifies credentials and produces identities.
type AuthBackend interface {
	Authenticate(ctx context.Context, email, password string) (domain.Identity, error)
	Register(ctx context.Context, email, password, name string) (domain.Identity, error)
}

// KeyValueStore persists small opaque records under fixed keys.
// Get reports found=false when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SummaryRepository persists the summary history across runs.
type SummaryRepository interface {
	Save(ctx context.Context, summary domain.Summary) error
	Recent(ctx context.Context, limit int) ([]domain.Summary, error)
	Prune(ctx context.Context, keep int) error
}

// Summarizer produces the summary text for an article.
type Summarizer interface {
	Summarize(ctx context.Context, article domain.Article) (string, error)
}

// Notifier publishes a rendered digest to a channel (console, Telegram, ...).
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
