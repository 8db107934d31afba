package model

import "time"

// Article data model. Field types align with the blogful_articles table:
// INTEGER -> int64, TEXT -> string, TIMESTAMPTZ -> time.Time.
type Article struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Style         string    `json:"style"`
	Content       string    `json:"content"`
	DatePublished time.Time `json:"date_published"`
}

// NewArticle holds the columns a client may set on insert. The store
// assigns id and date_published.
type NewArticle struct {
	Title   string
	Style   string
	Content string
}
