package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

// minReadableRunes is the shortest readability result accepted before
// falling back to paragraph extraction.
const minReadableRunes = 50

var (
	// ErrInvalidURL reports a URL that is not absolute http(s).
	ErrInvalidURL = errors.New("invalid article url")
	// ErrNoContent reports a page without extractable text.
	ErrNoContent = errors.New("no readable content")
)

var dateExpr = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// HTTPOptions configures the network fetcher.
type HTTPOptions struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// HTTP downloads pages and extracts the main article text.
type HTTP struct {
	client *http.Client
	opts   HTTPOptions
	logger *slog.Logger
}

var _ ports.ContentFetcher = (*HTTP)(nil)

// NewHTTP wires an HTTP client; a nil client gets opts.Timeout.
func NewHTTP(client *http.Client, opts HTTPOptions, logger *slog.Logger) *HTTP {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "NewsSummarizer/1.0"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 5 << 20
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTP{client: client, opts: opts, logger: logger}
}

// Fetch downloads rawURL and extracts title, byline, image and text.
// Content is the decoded page text; callers sanitize it once on ingestion.
func (h *HTTP) Fetch(ctx context.Context, rawURL string) (domain.FetchedContent, error) {
	parsed, err := parseHTTPURL(rawURL)
	if err != nil {
		return domain.FetchedContent{}, err
	}

	body, err := h.download(ctx, parsed.String())
	if err != nil {
		return domain.FetchedContent{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.FetchedContent{}, fmt.Errorf("parse document: %w", err)
	}
	meta := extractMeta(doc)

	content := domain.FetchedContent{
		Title:       meta.title,
		Source:      parsed.Hostname(),
		Author:      meta.author,
		ImageURL:    meta.image,
		PublishedAt: meta.publishedAt,
	}

	article, rErr := readability.FromReader(bytes.NewReader(body), parsed)
	if rErr != nil {
		h.logger.Debug("readability failed, using paragraphs", "url", parsed.String(), "error", rErr)
	} else {
		content.Content = strings.TrimSpace(article.TextContent)
		content.Title = firstNonEmpty(article.Title, content.Title)
		content.Author = firstNonEmpty(article.Byline, content.Author)
		content.ImageURL = firstNonEmpty(article.Image, content.ImageURL)
		content.Source = firstNonEmpty(article.SiteName, content.Source)
	}

	if utf8.RuneCountInString(content.Content) < minReadableRunes {
		content.Content = strings.TrimSpace(extractParagraphs(doc))
	}
	if content.Content == "" {
		return domain.FetchedContent{}, fmt.Errorf("%w at %s", ErrNoContent, parsed.String())
	}

	content.Title = strings.TrimSpace(content.Title)
	if content.Title == "" {
		content.Title = "Article from " + parsed.Hostname()
	}

	return content, nil
}

func (h *HTTP) download(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", h.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.opts.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return body, nil
}

type pageMeta struct {
	title       string
	author      string
	image       string
	publishedAt *time.Time
}

func extractMeta(doc *goquery.Document) pageMeta {
	meta := pageMeta{
		title:  metaContent(doc, `meta[property="og:title"]`),
		author: metaContent(doc, `meta[name="author"]`),
		image:  metaContent(doc, `meta[property="og:image"]`),
	}
	if meta.title == "" {
		meta.title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	dateText := metaContent(doc, `meta[property="article:published_time"]`)
	if dateText == "" {
		dateText, _ = doc.Find("time[datetime]").First().Attr("datetime")
	}
	meta.publishedAt = parsePublished(dateText)

	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	value, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(value)
}

func parsePublished(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, text); err == nil {
		utc := parsed.UTC()
		return &utc
	}
	match := dateExpr.FindString(text)
	if match == "" {
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, match)
	if err != nil {
		return nil
	}
	return &parsed
}

// extractParagraphs joins the text of every <p> inside <article>, or the
// whole document when the page has no article element.
func extractParagraphs(doc *goquery.Document) string {
	scope := doc.Find("article")
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	var paragraphs []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.Join(strings.Fields(p.Text()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
