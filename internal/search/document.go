// Package search provides full-text search over the published catalog using
// Bleve. Draft books never enter the index; publication adds a document and
// unpublication or deletion removes it.
package search

import (
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
)

// Document is the structure indexed for each published book.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Author      string   `json:"author"` // Denormalized username for display
	GenreSlugs  []string `json:"genre_slugs,omitempty"`
	CreatedAt   int64    `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"title":      d.Title,
		"slug":       d.Slug,
		"created_at": d.CreatedAt,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if len(d.GenreSlugs) > 0 {
		m["genre_slugs"] = d.GenreSlugs
	}

	return m
}

// BookToDocument converts a domain Book to a search Document. The author
// username is passed in because the search package doesn't depend on store.
func BookToDocument(book *domain.Book, authorName string) *Document {
	return &Document{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Slug:        book.Slug,
		Author:      authorName,
		GenreSlugs:  book.GenreSlugs(),
		CreatedAt:   book.CreatedAt.UnixMilli(),
	}
}
