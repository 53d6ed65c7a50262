// Package domain contains the core business entities for the favouritebooks catalog.
package domain

// BookStatus is the publication state of a book.
type BookStatus int

// Publication states. There is no terminal state; a book toggles freely
// between draft and published until it is deleted.
const (
	StatusDraft     BookStatus = 0
	StatusPublished BookStatus = 1
)

// Valid reports whether the status is a known publication state.
func (s BookStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// String returns a human-readable status name.
func (s BookStatus) String() string {
	if s == StatusPublished {
		return "published"
	}
	return "draft"
}

// MaxTitleLength is the longest accepted book title.
const MaxTitleLength = 100

// Book is a catalog entry added by a user.
//
// AuthorID is empty when the author account was deleted; the book survives
// with no owner (and a draft with no owner is visible to nobody but staff
// queries never surface it either - it is effectively orphaned).
type Book struct {
	Record
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      BookStatus `json:"status"`
	Slug        string     `json:"slug"`
	ImagePath   string     `json:"image_path,omitempty"`
	AuthorID    string     `json:"author_id,omitempty"`
	Genres      []*Genre   `json:"genres,omitempty"`
}

// IsPublished reports whether the book is visible to everyone.
func (b *Book) IsPublished() bool {
	return b.Status == StatusPublished
}

// IsOwnedBy reports whether the given user ID is the book's author.
// Always false for orphaned books and empty IDs.
func (b *Book) IsOwnedBy(userID string) bool {
	return userID != "" && b.AuthorID == userID
}

// GenreIDs returns the IDs of the book's attached genres.
func (b *Book) GenreIDs() []string {
	ids := make([]string, len(b.Genres))
	for i, g := range b.Genres {
		ids[i] = g.ID
	}
	return ids
}

// GenreSlugs returns the slugs of the book's attached genres.
func (b *Book) GenreSlugs() []string {
	slugs := make([]string, len(b.Genres))
	for i, g := range b.Genres {
		slugs[i] = g.Slug
	}
	return slugs
}
