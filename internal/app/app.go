package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"NewsSummarizer/internal/config"
	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/history"
	"NewsSummarizer/internal/infrastructure/auth"
	"NewsSummarizer/internal/infrastructure/console"
	"NewsSummarizer/internal/infrastructure/fetcher"
	"NewsSummarizer/internal/infrastructure/llm"
	"NewsSummarizer/internal/infrastructure/scheduler"
	"NewsSummarizer/internal/infrastructure/storage"
	"NewsSummarizer/internal/infrastructure/telegram"
	"NewsSummarizer/internal/logging"
	"NewsSummarizer/internal/ports"
	"NewsSummarizer/internal/session"
	"NewsSummarizer/internal/summarizer"
	"NewsSummarizer/internal/usecase"
)

type store interface {
	ports.KeyValueStore
	ports.SummaryRepository
	Close() error
}

// Application wires configs to use cases.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	store      store
	fetcher    ports.ContentFetcher
	summarizer ports.Summarizer

	Session   *session.Store
	Workspace *usecase.Workspace
}

// New opens storage, restores the session and history, and builds the use
// cases. The caller must Close the application.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	st, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	a := &Application{
		cfg:        cfg,
		logger:     baseLogger,
		store:      st,
		fetcher:    newFetcher(cfg.Fetcher, baseLogger.With("component", "fetcher")),
		summarizer: newSummarizer(cfg),
	}

	a.Session = session.NewStore(st, auth.NewMock(cfg.Simulation.AuthDelay), baseLogger.With("component", "session"))
	if _, err := a.Session.Load(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	a.Workspace = usecase.NewWorkspace(usecase.WorkspaceDeps{
		Fetcher:    a.fetcher,
		Summarizer: a.summarizer,
		Repository: st,
		History:    history.New(cfg.History.Capacity),
		Delay:      cfg.Simulation.SummarizeDelay,
		Logger:     baseLogger.With("component", "workspace"),
	})
	if err := a.Workspace.LoadHistory(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	baseLogger.Debug("application ready",
		"storage", cfg.Storage.Driver,
		"fetcher", cfg.Fetcher.Mode,
		"summarizer", cfg.Summarizer.Backend,
	)
	return a, nil
}

// Config returns the configuration the application was built from.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Digest builds the digest use case publishing to out and, when configured,
// Telegram. A non-empty categories list restricts the sources.
func (a *Application) Digest(out io.Writer, categories []domain.Category) (*usecase.Digest, error) {
	sources := make([]domain.Source, 0, len(a.cfg.Digest.Sources))
	for _, src := range a.cfg.Digest.Sources {
		category, err := domain.ParseCategory(src.Category)
		if err != nil {
			return nil, fmt.Errorf("digest source %s: %w", src.URL, err)
		}
		sources = append(sources, domain.Source{URL: src.URL, Category: category})
	}

	notifiers := []ports.Notifier{console.NewNotifier(out)}
	if tg := a.cfg.Notifications.Telegram; tg.Enabled() {
		notifiers = append(notifiers, telegram.NewNotifier("", tg.BotToken, tg.ChatID, nil))
	}

	return usecase.NewDigest(usecase.DigestDeps{
		Sources:    sources,
		Categories: categories,
		Fetcher:    a.fetcher,
		Summarizer: a.summarizer,
		Notifiers:  notifiers,
		Logger:     a.logger.With("component", "digest"),
	}), nil
}

// DigestScheduler drives digest on the configured cron expression.
func (a *Application) DigestScheduler(digest *usecase.Digest) (*usecase.Scheduler, *scheduler.CronScheduler, error) {
	driver, err := scheduler.NewCronScheduler(a.cfg.Digest.CronExpression, a.cfg.Digest.Location())
	if err != nil {
		return nil, nil, err
	}
	return usecase.NewScheduler(driver, digest, a.logger.With("component", "scheduler")), driver, nil
}

// Close releases storage.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func openStore(ctx context.Context, cfg config.StorageConfig) (store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return storage.NewMemory(), nil
	case config.DriverPostgres:
		st, err := storage.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return st, nil
	default:
		st, err := storage.OpenSQLite(ctx, cfg.Path, storage.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.Path, err)
		}
		return st, nil
	}
}

func newFetcher(cfg config.FetcherConfig, logger *slog.Logger) ports.ContentFetcher {
	if cfg.Mode == config.FetcherHTTP {
		return fetcher.NewHTTP(&http.Client{Timeout: cfg.Timeout}, fetcher.HTTPOptions{
			Timeout:      cfg.Timeout,
			UserAgent:    cfg.UserAgent,
			MaxBodyBytes: cfg.MaxBodyBytes,
		}, logger)
	}
	return fetcher.NewMock()
}

func newSummarizer(cfg config.Config) ports.Summarizer {
	if cfg.Summarizer.Backend == config.BackendChatGPT {
		return llm.NewChatGPTSummarizer(cfg.ChatGPT, nil)
	}
	return summarizer.NewExtractive()
}
