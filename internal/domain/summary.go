package domain

import (
	"math"
	"strings"
	"time"
)

// Summary is the result of one submission: the summarizer output plus the
// metrics derived from it.
type Summary struct {
	ID                 string    `json:"id"`
	Article            Article   `json:"article"`
	Text               string    `json:"summary"`
	CreatedAt          time.Time `json:"createdAt"`
	ReadingTimeMinutes int       `json:"readingTime"`
	SummaryWordCount   int       `json:"summaryLength"`
}

// CompressionRatio is the display percentage of words removed from the
// original content. It can be negative when the summary is not shorter.
func (s Summary) CompressionRatio() int {
	return CompressionRatio(s.SummaryWordCount, WordCount(s.Article.Content))
}

// WordCount counts non-empty whitespace separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime returns the minutes needed to read text at 200 words per minute.
func ReadingTime(text string) int {
	words := WordCount(text)
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// CompressionRatio computes round((1 - summaryWords/contentWords) * 100),
// rounding halves up. Zero content words yield 0.
func CompressionRatio(summaryWords, contentWords int) int {
	if contentWords == 0 {
		return 0
	}
	return int(math.Floor((1-float64(summaryWords)/float64(contentWords))*100 + 0.5))
}

const wordsPerMinute = 200
