package main

import (
	"fmt"
	"io"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/export"
)

func printSummary(w io.Writer, s domain.Summary) {
	category := s.Article.Category
	fmt.Fprintf(w, "%s %s | %s\n", category.Icon(), category.DisplayName(), s.Article.Title)
	if s.Article.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", s.Article.Source)
	}
	if s.Article.Author != "" {
		fmt.Fprintf(w, "Author: %s\n", s.Article.Author)
	}
	if s.Article.URL != "" {
		fmt.Fprintf(w, "URL: %s\n", s.Article.URL)
	}

	fmt.Fprintf(w, "\nSummary:\n%s\n\n", s.Text)
	fmt.Fprintf(w, "Reading time: %d min | Summary: %d words | Compressed: %d%%\n",
		s.ReadingTimeMinutes, s.SummaryWordCount, s.CompressionRatio())
	fmt.Fprintf(w, "ID: %s | Created: %s\n", s.ID, s.CreatedAt.Local().Format(export.TimestampLayout))
}

func printHistoryLine(w io.Writer, s domain.Summary) {
	fmt.Fprintf(w, "%s  %s  %s %-13s  %s\n",
		s.ID,
		s.CreatedAt.Local().Format("2006-01-02 15:04"),
		s.Article.Category.Icon(),
		s.Article.Category.DisplayName(),
		s.Article.Title)
}
