package domain

import "time"

// Article is the summarizer's input unit, built once per submission.
type Article struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	URL         string     `json:"url,omitempty"`
	Source      string     `json:"source,omitempty"`
	Category    Category   `json:"category"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Author      string     `json:"author,omitempty"`
}

// Submission carries the structured input of an ingestion request:
// either a URL to fetch or pasted content, plus the selected category.
type Submission struct {
	URL      string   `json:"url" validate:"required_without=Content,omitempty,url"`
	Title    string   `json:"title" validate:"max=300"`
	Content  string   `json:"content" validate:"required_without=URL"`
	Category Category `json:"category" validate:"required,category"`
}

// FetchedContent is what a content fetcher extracts from a URL.
type FetchedContent struct {
	Title       string
	Content     string
	Source      string
	Author      string
	ImageURL    string
	PublishedAt *time.Time
}

// Source is a digest input configured by the operator.
type Source struct {
	URL      string
	Category Category
}
