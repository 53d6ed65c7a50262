package domain

// Genre is a shared tag attached to zero or more books.
// Genres are created by staff and never auto-deleted; deleting a book only
// removes the association rows.
type Genre struct {
	Record
	Name string `json:"name"`
	Slug string `json:"slug"`
}
