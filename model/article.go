package model

import "time"

// Article is a news item normalized from one of the upstream feed providers.
type Article struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	Image       string     `json:"image,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Source      string     `json:"source,omitempty"`
}
