package service

import (
	"context"
	"log/slog"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/id"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
	"github.com/favouritebooks/favouritebooks-server/internal/validation"
)

// GenreService manages the flat genre vocabulary books are tagged with.
type GenreService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewGenreService creates a new genre service.
func NewGenreService(st store.Store, logger *slog.Logger) *GenreService {
	return &GenreService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListGenres returns all genres ordered by name.
func (s *GenreService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	return s.store.ListGenres(ctx)
}

// GetGenreBySlug returns a single genre.
func (s *GenreService) GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	return s.store.GetGenreBySlug(ctx, slug)
}

// ListGenresForAuthor returns the genres appearing on an author's books,
// which drives the filter links on the personal shelf.
func (s *GenreService) ListGenresForAuthor(ctx context.Context, authorID string) ([]*domain.Genre, error) {
	return s.store.ListGenresForAuthor(ctx, authorID)
}

// CreateGenreRequest contains fields for creating a genre.
type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateGenre adds a genre to the vocabulary. Staff only.
func (s *GenreService) CreateGenre(ctx context.Context, actor domain.Actor, req CreateGenreRequest) (*domain.Genre, error) {
	if !actor.IsStaff() {
		if !actor.IsAuthenticated() {
			return nil, domainerrors.Unauthorized("login required")
		}
		return nil, domainerrors.Forbidden("staff only")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	genreID, err := id.Generate("genre")
	if err != nil {
		return nil, err
	}

	g := &domain.Genre{Name: req.Name}
	g.ID = genreID
	g.InitTimestamps()

	if err := s.store.CreateGenre(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("genre created", "id", g.ID, "name", g.Name, "slug", g.Slug)
	return g, nil
}
