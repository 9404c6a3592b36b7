package summarizer

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

const (
	// minSentenceRunes is the exclusive lower bound on trimmed sentence length.
	minSentenceRunes = 10
	minSelected      = 2
)

type candidate struct {
	text     string
	position int
}

// Summarize picks the longest sentences of content and returns them in their
// original order, joined with ". " and terminated by a period.
// Content without qualifying sentences yields an empty string.
func Summarize(content string) string {
	candidates := splitCandidates(content)
	if len(candidates) == 0 {
		return ""
	}

	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return utf8.RuneCountInString(ranked[i].text) > utf8.RuneCountInString(ranked[j].text)
	})

	selected := ranked[:selectionCount(len(ranked))]
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].position < selected[j].position
	})

	parts := make([]string, len(selected))
	for i, c := range selected {
		parts[i] = c.text
	}
	return strings.Join(parts, ". ") + "."
}

// selectionCount returns max(2, floor(0.3*n)) capped at n.
func selectionCount(n int) int {
	k := n * 3 / 10
	if k < minSelected {
		k = minSelected
	}
	if k > n {
		k = n
	}
	return k
}

func splitCandidates(content string) []candidate {
	fragments := strings.FieldsFunc(content, isTerminator)

	out := make([]candidate, 0, len(fragments))
	for i, fragment := range fragments {
		text := strings.TrimSpace(fragment)
		if utf8.RuneCountInString(text) <= minSentenceRunes {
			continue
		}
		out = append(out, candidate{
			text:     text,
			position: i,
		})
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Extractive adapts Summarize to the ports.Summarizer contract.
type Extractive struct{}

var _ ports.Summarizer = Extractive{}

// NewExtractive returns the local heuristic summarizer.
func NewExtractive() Extractive {
	return Extractive{}
}

// Summarize never fails; an article without qualifying sentences yields "".
func (Extractive) Summarize(ctx context.Context, article domain.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Summarize(article.Content), nil
}
