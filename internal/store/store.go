// Package store defines the persistence interface for the favouritebooks server.
package store

import (
	"context"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Queries over books are explicit functions (ListPublishedBooks vs
// ListBooksByAuthor) rather than a polymorphic manager; access control is
// NOT applied here - the service layer evaluates the visibility policy
// against entities loaded through this interface.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error

	// Password resets
	CreatePasswordReset(ctx context.Context, reset *domain.PasswordReset) error
	GetPasswordReset(ctx context.Context, token string) (*domain.PasswordReset, error)
	DeletePasswordReset(ctx context.Context, token string) error
	DeleteExpiredPasswordResets(ctx context.Context) (int, error)

	// Books. Create and Update resolve the slug from the title inside the
	// same transaction as the row write; the caller provides the title only.
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBookBySlug(ctx context.Context, slug string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListPublishedBooks(ctx context.Context, page Page) (*PagedResult[*domain.Book], error)
	ListPublishedBooksByGenre(ctx context.Context, genreSlug string, page Page) (*PagedResult[*domain.Book], error)
	ListBooksByAuthor(ctx context.Context, authorID string, page Page) (*PagedResult[*domain.Book], error)
	ListBooksByAuthorAndGenre(ctx context.Context, authorID, genreSlug string, page Page) (*PagedResult[*domain.Book], error)
	GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error)
	SetBookStatus(ctx context.Context, ids []string, status domain.BookStatus) (int, error)

	// Genres
	CreateGenre(ctx context.Context, genre *domain.Genre) error
	GetGenre(ctx context.Context, id string) (*domain.Genre, error)
	GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	ListGenres(ctx context.Context) ([]*domain.Genre, error)
	ListGenresForAuthor(ctx context.Context, authorID string) ([]*domain.Genre, error)

	// Comments. Listing pages over top-level comments newest first with
	// replies attached; like counts are always derived from the
	// comment_likes rows, never stored.
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListCommentsForBook(ctx context.Context, bookID, viewerID string, page Page) (*PagedResult[*domain.Comment], error)

	// Likes
	ToggleCommentLike(ctx context.Context, commentID, userID string) (liked bool, count int, err error)
	CountCommentLikes(ctx context.Context, commentID string) (int, error)
}
