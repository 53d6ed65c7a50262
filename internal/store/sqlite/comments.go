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

// CreateComment inserts a comment. A non-empty ParentID must reference an
// existing comment on the same book; the FK catches dangling parents.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	if comment.ParentID != "" {
		var parentBookID string
		err := s.db.QueryRowContext(ctx,
			`SELECT book_id FROM comments WHERE id = ?`, comment.ParentID).Scan(&parentBookID)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrCommentNotFound
		}
		if err != nil {
			return err
		}
		if parentBookID != comment.BookID {
			return store.ErrInvalidInput.WithMessage("parent comment belongs to a different book")
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, created_at, updated_at, book_id, author_id, content, parent_id, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		comment.ID,
		formatTime(comment.CreatedAt),
		formatTime(comment.UpdatedAt),
		comment.BookID,
		comment.AuthorID,
		comment.Content,
		nullString(comment.ParentID),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrBookNotFound
		}
		return err
	}
	return nil
}

// GetComment retrieves a comment by ID with its like count and author name.
// Returns store.ErrCommentNotFound if the comment does not exist.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.created_at, c.updated_at, c.book_id, c.author_id, c.content, c.parent_id, c.is_deleted,
			u.username,
			(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id)
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = ?`, id)

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var c domain.Comment

	var (
		createdAt string
		updatedAt string
		parentID  sql.NullString
		isDeleted int
	)

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.BookID,
		&c.AuthorID,
		&c.Content,
		&parentID,
		&isDeleted,
		&c.AuthorName,
		&c.LikeCount,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		c.ParentID = parentID.String
	}
	c.IsDeleted = isDeleted != 0

	return &c, nil
}

// DeleteComment removes a comment. Replies and likes cascade away with it.
// Returns store.ErrCommentNotFound if the comment does not exist.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrCommentNotFound
	}
	return nil
}

// ListCommentsForBook returns a page of top-level comments for a book, newest
// first, each carrying its replies in posting order. Pagination counts only
// top-level comments; replies ride along with their parent. viewerID marks
// which comments the viewer has liked; pass an empty string for anonymous
// viewers.
func (s *Store) ListCommentsForBook(ctx context.Context, bookID, viewerID string, page store.Page) (*store.PagedResult[*domain.Comment], error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE book_id = ? AND parent_id IS NULL`, bookID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	page = page.ClampTo(total)

	parents, err := s.queryComments(ctx, viewerID,
		`c.book_id = ? AND c.parent_id IS NULL ORDER BY c.created_at DESC LIMIT ? OFFSET ?`,
		bookID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	if len(parents) > 0 {
		parentIDs := make([]string, len(parents))
		byID := make(map[string]*domain.Comment, len(parents))
		for i, p := range parents {
			parentIDs[i] = p.ID
			byID[p.ID] = p
		}

		placeholders := strings.Repeat("?,", len(parentIDs))
		placeholders = placeholders[:len(placeholders)-1]
		args := []any{}
		for _, id := range parentIDs {
			args = append(args, id)
		}

		replies, err := s.queryComments(ctx, viewerID,
			`c.parent_id IN (`+placeholders+`) ORDER BY c.created_at ASC`, args...)
		if err != nil {
			return nil, err
		}
		for _, r := range replies {
			if p, ok := byID[r.ParentID]; ok {
				p.Replies = append(p.Replies, r)
			}
		}
	}

	return store.NewPagedResult(parents, page, total), nil
}

// queryComments runs a comment select with like counts and the viewer's
// liked flag attached. where is appended verbatim after the join clauses.
func (s *Store) queryComments(ctx context.Context, viewerID, where string, args ...any) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.created_at, c.updated_at, c.book_id, c.author_id, c.content, c.parent_id, c.is_deleted,
			u.username,
			(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id),
			EXISTS(SELECT 1 FROM comment_likes cl WHERE cl.comment_id = c.id AND cl.user_id = ?)
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE ` + where

	rows, err := s.db.QueryContext(ctx, query, append([]any{viewerID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		var (
			createdAt string
			updatedAt string
			parentID  sql.NullString
			isDeleted int
			liked     int
		)
		err := rows.Scan(
			&c.ID, &createdAt, &updatedAt, &c.BookID, &c.AuthorID, &c.Content,
			&parentID, &isDeleted, &c.AuthorName, &c.LikeCount, &liked,
		)
		if err != nil {
			return nil, err
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		c.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		if parentID.Valid {
			c.ParentID = parentID.String
		}
		c.IsDeleted = isDeleted != 0
		c.LikedByUser = liked != 0
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// ToggleCommentLike flips the user's like on a comment inside a transaction
// and reports the outcome plus the fresh count. Liking twice unlikes; the
// composite primary key on comment_likes keeps the pair unique.
func (s *Store) ToggleCommentLike(ctx context.Context, commentID, userID string) (liked bool, count int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE id = ?)`, commentID).Scan(&exists)
	if err != nil {
		return false, 0, err
	}
	if exists == 0 {
		return false, 0, store.ErrCommentNotFound
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id = ? AND user_id = ?`, commentID, userID)
	if err != nil {
		return false, 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	if removed == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO comment_likes (comment_id, user_id, created_at)
			VALUES (?, ?, ?)`,
			commentID, userID, formatTime(time.Now().UTC()))
		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return false, 0, store.ErrUserNotFound
			}
			return false, 0, err
		}
		liked = true
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = ?`, commentID).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// CountCommentLikes returns the current like count for a comment.
func (s *Store) CountCommentLikes(ctx context.Context, commentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = ?`, commentID).Scan(&count)
	return count, err
}
