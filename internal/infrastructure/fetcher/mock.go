// Package fetcher turns submitted URLs into article content.
package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

const mockBody = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. " +
	"Vivamus lacinia odio vitae vestibulum. Donec auctor blandit quam non rutrum. " +
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. " +
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. " +
	"Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum. " +
	"Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium."

// Mock returns canned content without touching the network.
type Mock struct{}

var _ ports.ContentFetcher = (*Mock)(nil)

// NewMock returns the offline fetcher.
func NewMock() *Mock {
	return &Mock{}
}

// Fetch fabricates an article naming rawURL and its host.
func (m *Mock) Fetch(ctx context.Context, rawURL string) (domain.FetchedContent, error) {
	if err := ctx.Err(); err != nil {
		return domain.FetchedContent{}, err
	}

	parsed, err := parseHTTPURL(rawURL)
	if err != nil {
		return domain.FetchedContent{}, err
	}

	return domain.FetchedContent{
		Title:   "Article from " + parsed.Hostname(),
		Content: fmt.Sprintf("This is a sample article content fetched from %s. %s", rawURL, mockBody),
		Source:  parsed.Hostname(),
	}, nil
}

// parseHTTPURL accepts absolute http and https URLs only.
func parseHTTPURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host in %s", ErrInvalidURL, rawURL)
	}
	return parsed, nil
}
