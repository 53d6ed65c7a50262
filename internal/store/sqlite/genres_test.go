package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

func TestCreateAndGetGenre(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := newTestGenre("Science Fiction")
	require.NoError(t, s.CreateGenre(ctx, g))
	assert.Equal(t, "science-fiction", g.Slug)

	got, err := s.GetGenreBySlug(ctx, "science-fiction")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, "Science Fiction", got.Name)
}

func TestCreateGenreDuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateGenre(ctx, newTestGenre("Horror")))

	err := s.CreateGenre(ctx, newTestGenre("Horror"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetGenreNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetGenre(ctx, "genre-missing")
	assert.ErrorIs(t, err, store.ErrGenreNotFound)
}

func TestListGenresOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Mystery", "Classic", "Romance"} {
		require.NoError(t, s.CreateGenre(ctx, newTestGenre(name)))
	}

	genres, err := s.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Classic", genres[0].Name)
	assert.Equal(t, "Mystery", genres[1].Name)
	assert.Equal(t, "Romance", genres[2].Name)
}

func TestListGenresForAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser("alice")
	require.NoError(t, s.CreateUser(ctx, alice))
	bob := newTestUser("bob")
	require.NoError(t, s.CreateUser(ctx, bob))

	scifi := newTestGenre("Science Fiction")
	require.NoError(t, s.CreateGenre(ctx, scifi))
	horror := newTestGenre("Horror")
	require.NoError(t, s.CreateGenre(ctx, horror))

	ab := newTestBook("Alice Book", alice.ID, domain.StatusPublished)
	ab.Genres = []*domain.Genre{scifi}
	require.NoError(t, s.CreateBook(ctx, ab))

	bb := newTestBook("Bob Book", bob.ID, domain.StatusPublished)
	bb.Genres = []*domain.Genre{horror}
	require.NoError(t, s.CreateBook(ctx, bb))

	genres, err := s.ListGenresForAuthor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, scifi.ID, genres[0].ID)
}
