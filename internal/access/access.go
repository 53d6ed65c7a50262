// Package access implements the ownership and visibility policy for books
// and comments. Every rule is a pure function over a freshly loaded entity
// and the requesting actor; callers must evaluate the policy before any
// side-effecting logic runs.
//
// Failures on books are reported as not-found rather than forbidden so the
// existence of another user's draft is never leaked.
package access

import (
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/errors"
)

// CanViewBook permits viewing when the book is published, or when the actor
// is its authenticated author. Drafts belonging to others report not-found.
func CanViewBook(actor domain.Actor, book *domain.Book) error {
	if book.IsPublished() {
		return nil
	}
	if actor.IsAuthenticated() && book.IsOwnedBy(actor.ID()) {
		return nil
	}
	return errors.NotFound("book not found")
}

// CanEditBook permits mutation only by the authenticated author.
// Everyone else gets not-found, published or not.
func CanEditBook(actor domain.Actor, book *domain.Book) error {
	if actor.IsAuthenticated() && book.IsOwnedBy(actor.ID()) {
		return nil
	}
	return errors.NotFound("book not found")
}

// CanDeleteBook follows the same rule as editing: author only.
func CanDeleteBook(actor domain.Actor, book *domain.Book) error {
	return CanEditBook(actor, book)
}

// CanComment permits comment creation by any authenticated actor on a book
// they can view. The unauthorized case is a login-redirect condition, not a
// hard failure; handlers translate it.
func CanComment(actor domain.Actor, book *domain.Book) error {
	if !actor.IsAuthenticated() {
		return errors.Unauthorized("authentication required")
	}
	return CanViewBook(actor, book)
}

// CanDeleteComment permits deletion by the comment's author or staff.
// The refusal is forbidden, not not-found: comment existence is not secret,
// the actor simply may not remove it.
func CanDeleteComment(actor domain.Actor, comment *domain.Comment) error {
	if !actor.IsAuthenticated() {
		return errors.Unauthorized("authentication required")
	}
	if comment.AuthorID == actor.ID() || actor.IsStaff() {
		return nil
	}
	return errors.Forbidden("not allowed to delete this comment")
}

// CanLikeComment permits like toggling by any authenticated actor.
func CanLikeComment(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return errors.Unauthorized("authentication required")
	}
	return nil
}

// CanBulkPublish permits the bulk publish/unpublish admin actions.
func CanBulkPublish(actor domain.Actor) error {
	if !actor.IsAuthenticated() {
		return errors.Unauthorized("authentication required")
	}
	if !actor.IsStaff() {
		return errors.Forbidden("staff access required")
	}
	return nil
}
