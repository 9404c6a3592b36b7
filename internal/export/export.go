package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"NewsSummarizer/internal/domain"
)

// TimestampLayout is how generation times are rendered in exports.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// Format selects the export document type.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "text"/"txt" and "markdown"/"md".
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q", value)
	}
}

// Slug replaces every character outside ASCII [A-Za-z0-9] with "_" and
// lower-cases the rest. Runes are tested before case folding, so "\u212A"
// (Kelvin sign) or "\u0130" never pass as ASCII letters.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 'a' - 'A')
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Filename is the download name of the plain-text export.
func Filename(title string) string {
	return Slug(title) + "_summary.txt"
}

// MarkdownFilename is the download name of the markdown export.
func MarkdownFilename(title string) string {
	return Slug(title) + "_summary.md"
}

// FilenameFor picks the file name matching format.
func FilenameFor(format Format, title string) string {
	if format == FormatMarkdown {
		return MarkdownFilename(title)
	}
	return Filename(title)
}

// Write renders s in the requested format.
func Write(w io.Writer, format Format, s domain.Summary) error {
	if format == FormatMarkdown {
		return WriteMarkdown(w, s)
	}
	return WriteText(w, s)
}

// WriteText writes title, original content, summary and generation time.
func WriteText(w io.Writer, s domain.Summary) error {
	_, err := fmt.Fprintf(w, "Title: %s\n\nOriginal Article:\n%s\n\nSummary:\n%s\n\nGenerated on: %s",
		s.Article.Title,
		s.Article.Content,
		s.Text,
		s.CreatedAt.Format(TimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("write text export: %w", err)
	}
	return nil
}

// WriteMarkdown writes the same information as WriteText plus the metrics table.
func WriteMarkdown(w io.Writer, s domain.Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1(s.Article.Title)
	md.PlainText("")

	rows := [][]string{
		{"Category", categoryLabel(s.Article.Category)},
		{"Reading Time", strconv.Itoa(s.ReadingTimeMinutes) + " min"},
		{"Summary Words", strconv.Itoa(s.SummaryWordCount)},
		{"Compressed", strconv.Itoa(s.CompressionRatio()) + "%"},
	}
	if s.Article.Source != "" {
		rows = append(rows, []string{"Source", s.Article.Source})
	}
	if s.Article.URL != "" {
		rows = append(rows, []string{"URL", s.Article.URL})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	md.PlainText(s.Text)
	md.PlainText("")

	md.H2("Original Article")
	md.PlainText("")
	md.PlainText(s.Article.Content)
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated on %s*", s.CreatedAt.Format(TimestampLayout))

	if err := md.Build(); err != nil {
		return fmt.Errorf("write markdown export: %w", err)
	}
	return nil
}

func categoryLabel(c domain.Category) string {
	if !c.Valid() {
		return "-"
	}
	return c.Icon() + " " + c.DisplayName()
}
