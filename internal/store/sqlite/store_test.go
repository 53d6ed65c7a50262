package sqlite

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func newTestUser(username string) *domain.User {
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$fake",
	}
	u.ID = id.MustGenerate("user")
	u.InitTimestamps()
	return u
}

func newTestBook(title, authorID string, status domain.BookStatus) *domain.Book {
	b := &domain.Book{
		Title:       title,
		Description: "a description of " + title,
		Status:      status,
		AuthorID:    authorID,
	}
	b.ID = id.MustGenerate("book")
	b.InitTimestamps()
	return b
}

func newTestGenre(name string) *domain.Genre {
	g := &domain.Genre{Name: name}
	g.ID = id.MustGenerate("genre")
	g.InitTimestamps()
	return g
}

func newTestComment(bookID, authorID, content string) *domain.Comment {
	c := &domain.Comment{
		BookID:   bookID,
		AuthorID: authorID,
		Content:  content,
	}
	c.ID = id.MustGenerate("comment")
	c.InitTimestamps()
	return c
}
