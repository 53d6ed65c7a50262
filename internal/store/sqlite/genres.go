package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

const genreColumns = `id, created_at, updated_at, name, slug`

func scanGenre(scanner interface{ Scan(dest ...any) error }) (*domain.Genre, error) {
	var g domain.Genre

	var createdAt, updatedAt string

	err := scanner.Scan(
		&g.ID,
		&createdAt,
		&updatedAt,
		&g.Name,
		&g.Slug,
	)
	if err != nil {
		return nil, err
	}

	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// CreateGenre inserts a genre, resolving its slug from the name.
// Returns store.ErrAlreadyExists on a name or slug collision.
func (s *Store) CreateGenre(ctx context.Context, genre *domain.Genre) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	resolved, err := resolveSlug(ctx, tx, "genres", genre.Name, genre.ID)
	if err != nil {
		return err
	}
	genre.Slug = resolved

	_, err = tx.ExecContext(ctx, `
		INSERT INTO genres (id, created_at, updated_at, name, slug)
		VALUES (?, ?, ?, ?, ?)`,
		genre.ID,
		formatTime(genre.CreatedAt),
		formatTime(genre.UpdatedAt),
		genre.Name,
		genre.Slug,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	return tx.Commit()
}

// GetGenre retrieves a genre by ID.
// Returns store.ErrGenreNotFound if the genre does not exist.
func (s *Store) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE id = ?`, id)

	g, err := scanGenre(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetGenreBySlug retrieves a genre by slug.
// Returns store.ErrGenreNotFound if the genre does not exist.
func (s *Store) GetGenreBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE slug = ?`, slug)

	g, err := scanGenre(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+genreColumns+` FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []*domain.Genre{}
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// ListGenresForAuthor returns the distinct genres used by an author's books,
// ordered by name. Drives the genre filter on the personal shelf.
func (s *Store) ListGenresForAuthor(ctx context.Context, authorID string) ([]*domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT g.id, g.created_at, g.updated_at, g.name, g.slug
		FROM genres g
		JOIN book_genres bg ON bg.genre_id = g.id
		JOIN books b ON b.id = bg.book_id
		WHERE b.author_id = ?
		ORDER BY g.name ASC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []*domain.Genre{}
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}
