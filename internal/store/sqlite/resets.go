package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

// CreatePasswordReset inserts a password reset token.
func (s *Store) CreatePasswordReset(ctx context.Context, reset *domain.PasswordReset) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		reset.Token,
		reset.UserID,
		formatTime(reset.CreatedAt),
		formatTime(reset.ExpiresAt),
	)
	return err
}

// GetPasswordReset retrieves a reset by token.
// Returns store.ErrNotFound for unknown tokens.
func (s *Store) GetPasswordReset(ctx context.Context, token string) (*domain.PasswordReset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at
		FROM password_resets WHERE token = ?`, token)

	var r domain.PasswordReset
	var createdAt, expiresAt string
	err := row.Scan(&r.Token, &r.UserID, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeletePasswordReset removes a reset token (single use).
func (s *Store) DeletePasswordReset(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM password_resets WHERE token = ?`, token)
	return err
}

// DeleteExpiredPasswordResets removes all expired tokens and returns the count.
func (s *Store) DeleteExpiredPasswordResets(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE expires_at < ?`, formatTime(time.Now()))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
