// Package console publishes digests to a terminal or any other writer.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"NewsSummarizer/internal/ports"
)

// Notifier writes digests to w.
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier returns a notifier printing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// PublishDigest writes digest followed by a newline.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := fmt.Fprintln(n.w, strings.TrimRight(digest, "\n")); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}
