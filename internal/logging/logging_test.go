package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" info ":  slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"":        slog.LevelDebug,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRedactingHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug")

	logger.With("api_key", "sk-live-123").Info("login",
		"email", "alice@example.com",
		"password", "hunter2",
		slog.Group("telegram", "token", "123:abc", "chat", "42"),
	)

	out := buf.String()
	for _, secret := range []string{"sk-live-123", "hunter2", "123:abc"} {
		if strings.Contains(out, secret) {
			t.Fatalf("secret %q leaked into log output: %s", secret, out)
		}
	}
	if !strings.Contains(out, "alice@example.com") || !strings.Contains(out, "chat=42") {
		t.Fatalf("non-sensitive attributes missing: %s", out)
	}
	if strings.Count(out, Redacted) != 3 {
		t.Fatalf("expected 3 redactions, got output: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info record should be filtered: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn record missing: %s", buf.String())
	}
}
