package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, description, status, slug, image_path, author_id`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt string
		updatedAt string
		status    int
		imagePath sql.NullString
		authorID  sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Description,
		&status,
		&b.Slug,
		&imagePath,
		&authorID,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookStatus(status)
	if imagePath.Valid {
		b.ImagePath = imagePath.String
	}
	if authorID.Valid {
		b.AuthorID = authorID.String
	}

	return &b, nil
}

// querier abstracts *sql.DB and *sql.Tx for read helpers.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// loadBookGenres loads the genres attached to a book, ordered by name.
func loadBookGenres(ctx context.Context, q querier, bookID string) ([]*domain.Genre, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT g.id, g.created_at, g.updated_at, g.name, g.slug
		FROM genres g
		JOIN book_genres bg ON bg.genre_id = g.id
		WHERE bg.book_id = ?
		ORDER BY g.name ASC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []*domain.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// setBookGenres replaces a book's genre associations inside a transaction.
func setBookGenres(ctx context.Context, tx *sql.Tx, bookID string, genreIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}
	for _, genreID := range genreIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)`, bookID, genreID)
		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return store.ErrGenreNotFound
			}
			return fmt.Errorf("attach genre %s: %w", genreID, err)
		}
	}
	return nil
}

// CreateBook inserts a book row together with its genre associations.
// The slug is resolved from the title inside the transaction; the UNIQUE
// constraint on books.slug is the backstop against concurrent creates.
// Returns store.ErrEmptySlug when the title normalizes to nothing.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	resolved, err := resolveSlug(ctx, tx, "books", book.Title, book.ID)
	if err != nil {
		return err
	}
	book.Slug = resolved

	_, err = tx.ExecContext(ctx, `
		INSERT INTO books (id, created_at, updated_at, title, description, status, slug, image_path, author_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Description,
		int(book.Status),
		book.Slug,
		nullString(book.ImagePath),
		nullString(book.AuthorID),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := setBookGenres(ctx, tx, book.ID, book.GenreIDs()); err != nil {
		return err
	}

	return tx.Commit()
}

// GetBook retrieves a book by ID with its genres loaded.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	return s.finishBook(ctx, row)
}

// GetBookBySlug retrieves a book by slug with its genres loaded.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) GetBookBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE slug = ?`, slug)
	return s.finishBook(ctx, row)
}

// finishBook scans a single-row result and attaches genres.
func (s *Store) finishBook(ctx context.Context, row *sql.Row) (*domain.Book, error) {
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	b.Genres, err = loadBookGenres(ctx, s.db, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook updates a book row and its genre associations.
// When the title changed, the slug is re-resolved inside the transaction,
// excluding the book's own row so an unchanged title keeps its slug.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var currentTitle string
	err = tx.QueryRowContext(ctx, `SELECT title FROM books WHERE id = ?`, book.ID).Scan(&currentTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrBookNotFound
	}
	if err != nil {
		return err
	}

	if currentTitle != book.Title || book.Slug == "" {
		resolved, err := resolveSlug(ctx, tx, "books", book.Title, book.ID)
		if err != nil {
			return err
		}
		book.Slug = resolved
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books
		SET updated_at = ?, title = ?, description = ?, status = ?, slug = ?, image_path = ?
		WHERE id = ?`,
		formatTime(book.UpdatedAt),
		book.Title,
		book.Description,
		int(book.Status),
		book.Slug,
		nullString(book.ImagePath),
		book.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := setBookGenres(ctx, tx, book.ID, book.GenreIDs()); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteBook removes a book. Comments, likes, and genre links cascade away.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// listBooks runs a filtered, paginated book query. The where clause filters
// rows; the page is clamped against the filtered count before the final
// select so out-of-range requests return the last page.
func (s *Store) listBooks(ctx context.Context, where string, args []any, page store.Page) (*store.PagedResult[*domain.Book], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM books b ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	page = page.ClampTo(total)

	query := `SELECT ` + prefixColumns("b", bookColumns) + ` FROM books b ` + where +
		` ORDER BY b.created_at DESC LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range books {
		b.Genres, err = loadBookGenres(ctx, s.db, b.ID)
		if err != nil {
			return nil, err
		}
	}

	return store.NewPagedResult(books, page, total), nil
}

// ListPublishedBooks returns the published subset, newest first.
func (s *Store) ListPublishedBooks(ctx context.Context, page store.Page) (*store.PagedResult[*domain.Book], error) {
	return s.listBooks(ctx, `WHERE b.status = ?`, []any{int(domain.StatusPublished)}, page)
}

// ListPublishedBooksByGenre returns published books carrying the genre.
func (s *Store) ListPublishedBooksByGenre(ctx context.Context, genreSlug string, page store.Page) (*store.PagedResult[*domain.Book], error) {
	where := `JOIN book_genres bg ON bg.book_id = b.id
		JOIN genres g ON g.id = bg.genre_id
		WHERE b.status = ? AND g.slug = ?`
	return s.listBooks(ctx, where, []any{int(domain.StatusPublished), genreSlug}, page)
}

// ListBooksByAuthor returns all of an author's books, drafts included.
func (s *Store) ListBooksByAuthor(ctx context.Context, authorID string, page store.Page) (*store.PagedResult[*domain.Book], error) {
	return s.listBooks(ctx, `WHERE b.author_id = ?`, []any{authorID}, page)
}

// ListBooksByAuthorAndGenre returns an author's books carrying the genre.
func (s *Store) ListBooksByAuthorAndGenre(ctx context.Context, authorID, genreSlug string, page store.Page) (*store.PagedResult[*domain.Book], error) {
	where := `JOIN book_genres bg ON bg.book_id = b.id
		JOIN genres g ON g.id = bg.genre_id
		WHERE b.author_id = ? AND g.slug = ?`
	return s.listBooks(ctx, where, []any{authorID, genreSlug}, page)
}

// GetBooksByIDs loads the named books, skipping unknown IDs.
func (s *Store) GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error) {
	if len(ids) == 0 {
		return []*domain.Book{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// SetBookStatus transitions the named books to the given status and returns
// the number of rows actually changed (rows already in the state don't count).
func (s *Store) SetBookStatus(ctx context.Context, ids []string, status domain.BookStatus) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := []any{int(status), formatTime(time.Now().UTC())}
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, int(status))

	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET status = ?, updated_at = ? WHERE id IN (`+placeholders+`) AND status != ?`,
		args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
