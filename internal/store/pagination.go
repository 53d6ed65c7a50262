package store

import "strconv"

// Page contains page-number pagination parameters.
// The zero value is invalid; use NewPage or ParsePage.
type Page struct {
	Number int // 1-based page number
	Size   int // items per page
}

// NewPage returns a page with the given number clamped to at least 1.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	return Page{Number: number, Size: size}
}

// ParsePage interprets a raw query parameter as a page number.
// A non-numeric or missing value clamps to the first page rather than
// erroring; out-of-range values are clamped later against the total count.
func ParsePage(raw string, size int) Page {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		n = 1
	}
	return NewPage(n, size)
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ClampTo returns the page adjusted to the last valid page for the given
// total item count. An empty result set clamps to page 1.
func (p Page) ClampTo(total int) Page {
	last := (total + p.Size - 1) / p.Size
	if last < 1 {
		last = 1
	}
	if p.Number > last {
		p.Number = last
	}
	return p
}

// PagedResult contains one page of items and pagination metadata.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagedResult assembles a result for the (already clamped) page.
func NewPagedResult[T any](items []T, page Page, total int) *PagedResult[T] {
	totalPages := (total + page.Size - 1) / page.Size
	if totalPages < 1 {
		totalPages = 1
	}
	return &PagedResult[T]{
		Items:      items,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// HasNext reports whether a later page exists.
func (r *PagedResult[T]) HasNext() bool {
	return r.Page < r.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (r *PagedResult[T]) HasPrev() bool {
	return r.Page > 1
}
