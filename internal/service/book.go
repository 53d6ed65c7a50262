package service

import (
	"context"
	"log/slog"

	"github.com/favouritebooks/favouritebooks-server/internal/access"
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/id"
	"github.com/favouritebooks/favouritebooks-server/internal/search"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
	"github.com/favouritebooks/favouritebooks-server/internal/validation"
)

// DefaultBookPageSize is how many books a list page shows.
const DefaultBookPageSize = 4

// BookService orchestrates the book lifecycle: creation, editing,
// publication state and deletion. Every operation that touches a specific
// book evaluates the access policy before acting, and publication changes
// keep the search index in step with the catalog.
type BookService struct {
	store     store.Store
	index     *search.Index
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBookService creates a new book service.
func NewBookService(st store.Store, index *search.Index, logger *slog.Logger) *BookService {
	return &BookService{
		store:     st,
		index:     index,
		logger:    logger,
		validator: validation.New(),
	}
}

// BookRequest contains fields for creating or editing a book.
type BookRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description"`
	GenreIDs    []string `json:"genre_ids"`
	ImagePath   string   `json:"image_path"`
	Publish     bool     `json:"publish"`
}

// CreateBook creates a book owned by the actor. The slug is derived from
// the title by the store; a title with no sluggable characters is rejected
// as a validation failure.
func (s *BookService) CreateBook(ctx context.Context, actor domain.Actor, req BookRequest) (*domain.Book, error) {
	if !actor.IsAuthenticated() {
		return nil, domainerrors.Unauthorized("login required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, err
	}

	book := &domain.Book{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.StatusDraft,
		ImagePath:   req.ImagePath,
		AuthorID:    actor.ID(),
		Genres:      genres,
	}
	if req.Publish {
		book.Status = domain.StatusPublished
	}
	book.ID = bookID
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		if domainerrors.Is(err, store.ErrEmptySlug) {
			return nil, domainerrors.ValidationWithDetails("validation failed",
				map[string]string{"title": "must contain letters or digits"})
		}
		return nil, err
	}

	if book.IsPublished() {
		s.indexBook(ctx, book)
	}

	s.logger.Info("book created", "id", book.ID, "slug", book.Slug, "status", book.Status.String(), "author", actor.ID())
	return book, nil
}

// GetBookBySlug loads a book for the actor, applying the visibility policy:
// drafts exist only for their author, and everyone else gets not-found.
func (s *BookService) GetBookBySlug(ctx context.Context, actor domain.Actor, slug string) (*domain.Book, error) {
	book, err := s.store.GetBookBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := access.CanViewBook(actor, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook edits a book. Only the author may edit; a title change
// re-derives the slug. Non-authors get not-found rather than forbidden so
// the book's existence isn't revealed.
func (s *BookService) UpdateBook(ctx context.Context, actor domain.Actor, slug string, req BookRequest) (*domain.Book, error) {
	book, err := s.store.GetBookBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := access.CanEditBook(actor, book); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	wasPublished := book.IsPublished()

	book.Title = req.Title
	book.Description = req.Description
	book.ImagePath = req.ImagePath
	book.Genres = genres
	if req.Publish {
		book.Status = domain.StatusPublished
	} else {
		book.Status = domain.StatusDraft
	}
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		if domainerrors.Is(err, store.ErrEmptySlug) {
			return nil, domainerrors.ValidationWithDetails("validation failed",
				map[string]string{"title": "must contain letters or digits"})
		}
		return nil, err
	}

	switch {
	case book.IsPublished():
		s.indexBook(ctx, book)
	case wasPublished:
		s.removeFromIndex(book.ID)
	}

	s.logger.Info("book updated", "id", book.ID, "slug", book.Slug, "status", book.Status.String())
	return book, nil
}

// DeleteBook removes a book. Only the author may delete; comments and
// likes go with it.
func (s *BookService) DeleteBook(ctx context.Context, actor domain.Actor, slug string) error {
	book, err := s.store.GetBookBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := access.CanDeleteBook(actor, book); err != nil {
		return err
	}

	if err := s.store.DeleteBook(ctx, book.ID); err != nil {
		return err
	}

	s.removeFromIndex(book.ID)

	s.logger.Info("book deleted", "id", book.ID, "slug", book.Slug, "author", actor.ID())
	return nil
}

// ListPublished returns a page of the published catalog, optionally
// filtered by genre slug.
func (s *BookService) ListPublished(ctx context.Context, genreSlug string, page store.Page) (*store.PagedResult[*domain.Book], error) {
	if genreSlug != "" {
		// Unknown genres are not-found, same as a missing book.
		if _, err := s.store.GetGenreBySlug(ctx, genreSlug); err != nil {
			return nil, err
		}
		return s.store.ListPublishedBooksByGenre(ctx, genreSlug, page)
	}
	return s.store.ListPublishedBooks(ctx, page)
}

// ListMine returns a page of the actor's own books, drafts included,
// optionally filtered by genre slug.
func (s *BookService) ListMine(ctx context.Context, actor domain.Actor, genreSlug string, page store.Page) (*store.PagedResult[*domain.Book], error) {
	if !actor.IsAuthenticated() {
		return nil, domainerrors.Unauthorized("login required")
	}
	if genreSlug != "" {
		return s.store.ListBooksByAuthorAndGenre(ctx, actor.ID(), genreSlug, page)
	}
	return s.store.ListBooksByAuthor(ctx, actor.ID(), page)
}

// SetStatus transitions the named books to the given status. Staff only;
// this backs the bulk publish and unpublish admin actions. Returns how
// many books actually changed state.
func (s *BookService) SetStatus(ctx context.Context, actor domain.Actor, ids []string, status domain.BookStatus) (int, error) {
	if err := access.CanBulkPublish(actor); err != nil {
		return 0, err
	}
	if !status.Valid() {
		return 0, domainerrors.Validation("invalid status")
	}

	n, err := s.store.SetBookStatus(ctx, ids, status)
	if err != nil {
		return 0, err
	}

	// Re-sync the touched books with the index.
	books, err := s.store.GetBooksByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to load books for reindex", "error", err)
		return n, nil
	}
	for _, book := range books {
		if book.IsPublished() {
			s.indexBook(ctx, book)
		} else {
			s.removeFromIndex(book.ID)
		}
	}

	s.logger.Info("book status changed", "count", n, "status", status.String(), "actor", actor.ID())
	return n, nil
}

// resolveGenres loads the named genres, failing if any is unknown.
func (s *BookService) resolveGenres(ctx context.Context, genreIDs []string) ([]*domain.Genre, error) {
	genres := make([]*domain.Genre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		g, err := s.store.GetGenre(ctx, genreID)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, nil
}

// indexBook pushes a book into the search index. Index trouble is logged,
// not surfaced; the catalog write already succeeded.
func (s *BookService) indexBook(ctx context.Context, book *domain.Book) {
	if s.index == nil {
		return
	}

	authorName := ""
	if book.AuthorID != "" {
		if author, err := s.store.GetUser(ctx, book.AuthorID); err == nil {
			authorName = author.Username
		}
	}

	if err := s.index.IndexBook(search.BookToDocument(book, authorName)); err != nil {
		s.logger.Error("failed to index book", "id", book.ID, "error", err)
	}
}

// removeFromIndex drops a book from the search index.
func (s *BookService) removeFromIndex(bookID string) {
	if s.index == nil {
		return
	}
	if err := s.index.DeleteBook(bookID); err != nil {
		s.logger.Error("failed to deindex book", "id", bookID, "error", err)
	}
}
