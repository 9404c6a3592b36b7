package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPublishDigestPostsForm(t *testing.T) {
	t.Parallel()

	type call struct {
		path, chatID, text string
	}
	calls := make(chan call, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		calls <- call{path: r.URL.Path, chatID: r.PostForm.Get("chat_id"), text: r.PostForm.Get("text")}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL+"/", "123:abc", "-100", srv.Client())
	if err := n.PublishDigest(context.Background(), "Daily digest"); err != nil {
		t.Fatalf("PublishDigest: %v", err)
	}

	got := <-calls
	if got.path != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path: %s", got.path)
	}
	if got.chatID != "-100" || got.text != "Daily digest" {
		t.Fatalf("unexpected form: %+v", got)
	}
}

func TestPublishDigestStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewNotifier(srv.URL, "t", "c", srv.Client()).PublishDigest(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	if err := NewNotifier("", "", "chat", nil).PublishDigest(context.Background(), "x"); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	para := strings.Repeat("é", 30)
	text := para + "\n\n" + para + "\n\n" + para

	chunks := splitMessage(text, 40)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %q", len(chunks), chunks)
	}
	for _, c := range chunks {
		if c != para {
			t.Fatalf("unexpected chunk %q", c)
		}
	}

	long := strings.Repeat("x", 150)
	chunks = splitMessage(long, 70)
	if len(chunks) != 3 || utf8.RuneCountInString(chunks[0]) != 70 || chunks[2] != strings.Repeat("x", 10) {
		t.Fatalf("unexpected hard split: %q", chunks)
	}

	if got := splitMessage("short", 70); len(got) != 1 || got[0] != "short" {
		t.Fatalf("unexpected short split: %q", got)
	}
}
