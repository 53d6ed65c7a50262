package domain

import "time"

// PasswordReset is a single-use token allowing a user to set a new password.
type PasswordReset struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry.
func (p *PasswordReset) Expired() bool {
	return time.Now().After(p.ExpiresAt)
}
