package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the XDG directories.
	AppName = "newsai"

	defaultTimezone   = "UTC"
	configPathEnv     = "NEWSAI_CONFIG"
	logLevelEnv       = "NEWSAI_LOG_LEVEL"
	databaseDSNEnv    = "DATABASE_DSN"
	chatGPTAPIKeyEnv  = "CHATGPT_API_KEY"
	chatGPTModelEnv   = "CHATGPT_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"

	maxHistoryCapacity = 10
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Fetcher modes.
const (
	FetcherMock = "mock"
	FetcherHTTP = "http"
)

// Summarizer backends.
const (
	BackendExtractive = "extractive"
	BackendChatGPT    = "chatgpt"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Storage       StorageConfig      `yaml:"storage"`
	Simulation    SimulationConfig   `yaml:"simulation"`
	History       HistoryConfig      `yaml:"history"`
	Fetcher       FetcherConfig      `yaml:"fetcher"`
	Summarizer    SummarizerConfig   `yaml:"summarizer"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
	Notifications NotificationConfig `yaml:"notifications"`
	Digest        DigestConfig       `yaml:"digest"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig chooses where the session record and history live.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// SimulationConfig holds the artificial latencies of the mocked backends.
type SimulationConfig struct {
	AuthDelay      time.Duration `yaml:"authDelay"`
	SummarizeDelay time.Duration `yaml:"summarizeDelay"`
}

// HistoryConfig bounds the summary history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// FetcherConfig describes how submitted URLs are turned into content.
type FetcherConfig struct {
	Mode         string        `yaml:"mode"`
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"userAgent"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
}

// SummarizerConfig selects the summarizer backend.
type SummarizerConfig struct {
	Backend string `yaml:"backend"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both token and chat are configured.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// DigestConfig defines the scheduled digest run.
type DigestConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	Sources        []SourceConfig `yaml:"sources"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the digest timezone string to a time.Location.
func (d DigestConfig) Location() *time.Location {
	if d.location != nil {
		return d.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// SourceConfig is one digest input.
type SourceConfig struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Load reads YAML configuration from path (or NEWSAI_CONFIG when path is
// empty) and applies environment overrides. A missing explicit file is an
// error; a missing or unreadable env-provided file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(configPathEnv)
	}

	if path != "" {
		fileCfg, err := readFile(path, cfg)
		switch {
		case err == nil:
			cfg = fileCfg
		case explicit:
			return Config{}, err
		default:
			log.Printf("config: %v (falling back to defaults)", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile decodes path on top of base, so keys absent from the file keep
// their base values and explicit zero values (e.g. "0s" delays) apply.
func readFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	fileCfg := base
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return fileCfg, nil
}

// Validate checks that the configuration can be wired.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}

	if c.Simulation.AuthDelay < 0 || c.Simulation.SummarizeDelay < 0 {
		return ErrNegativeDelay
	}

	if c.History.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if c.History.Capacity > maxHistoryCapacity {
		return fmt.Errorf("%w: %d", ErrCapacityTooLarge, c.History.Capacity)
	}

	switch c.Fetcher.Mode {
	case FetcherMock, FetcherHTTP:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFetcher, c.Fetcher.Mode)
	}
	if c.Fetcher.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	switch c.Summarizer.Backend {
	case BackendExtractive:
	case BackendChatGPT:
		if c.ChatGPT.APIKey == "" {
			return ErrMissingAPIKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Summarizer.Backend)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Storage.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Digest.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Digest.location = loc
}

// DataDir is the XDG data directory, e.g. ~/.local/share/newsai on Linux.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ConfigDir is the XDG config directory, e.g. ~/.config/newsai on Linux.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(DataDir(), "newsai.db"),
		},
		Simulation: SimulationConfig{
			AuthDelay:      time.Second,
			SummarizeDelay: 2 * time.Second,
		},
		History: HistoryConfig{Capacity: 10},
		Fetcher: FetcherConfig{
			Mode:         FetcherMock,
			Timeout:      20 * time.Second,
			UserAgent:    "NewsSummarizer/1.0",
			MaxBodyBytes: 5 << 20,
		},
		Summarizer: SummarizerConfig{Backend: BackendExtractive},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You summarize news articles in a few sentences.",
		},
		Digest: DigestConfig{
			CronExpression: "0 6 * * *",
			Timezone:       defaultTimezone,
			location:       tz,
		},
	}
}
