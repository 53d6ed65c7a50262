package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

func seedBookWithAuthor(t *testing.T, s *Store) (*domain.User, *domain.Book) {
	t.Helper()
	ctx := context.Background()

	u := newTestUser("author")
	require.NoError(t, s.CreateUser(ctx, u))
	b := newTestBook("Commented Book", u.ID, domain.StatusPublished)
	require.NoError(t, s.CreateBook(ctx, b))
	return u, b
}

func TestCreateAndGetComment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	c := newTestComment(b.ID, u.ID, "a fine read")
	require.NoError(t, s.CreateComment(ctx, c))

	got, err := s.GetComment(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "a fine read", got.Content)
	assert.Equal(t, u.Username, got.AuthorName)
	assert.Zero(t, got.LikeCount)
	assert.False(t, got.IsReply())
}

func TestCreateReply(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	parent := newTestComment(b.ID, u.ID, "parent")
	require.NoError(t, s.CreateComment(ctx, parent))

	reply := newTestComment(b.ID, u.ID, "reply")
	reply.ParentID = parent.ID
	require.NoError(t, s.CreateComment(ctx, reply))

	got, err := s.GetComment(ctx, reply.ID)
	require.NoError(t, err)
	assert.True(t, got.IsReply())
	assert.Equal(t, parent.ID, got.ParentID)
}

func TestCreateReplyUnknownParent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	reply := newTestComment(b.ID, u.ID, "orphan")
	reply.ParentID = "comment-missing"
	err := s.CreateComment(ctx, reply)
	assert.ErrorIs(t, err, store.ErrCommentNotFound)
}

func TestCreateReplyCrossBookParent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)
	other := newTestBook("Other Book", u.ID, domain.StatusPublished)
	require.NoError(t, s.CreateBook(ctx, other))

	parent := newTestComment(other.ID, u.ID, "elsewhere")
	require.NoError(t, s.CreateComment(ctx, parent))

	reply := newTestComment(b.ID, u.ID, "confused")
	reply.ParentID = parent.ID
	err := s.CreateComment(ctx, reply)
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestDeleteCommentCascadesToReplies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	parent := newTestComment(b.ID, u.ID, "parent")
	require.NoError(t, s.CreateComment(ctx, parent))
	reply := newTestComment(b.ID, u.ID, "reply")
	reply.ParentID = parent.ID
	require.NoError(t, s.CreateComment(ctx, reply))

	require.NoError(t, s.DeleteComment(ctx, parent.ID))

	_, err := s.GetComment(ctx, parent.ID)
	assert.ErrorIs(t, err, store.ErrCommentNotFound)
	_, err = s.GetComment(ctx, reply.ID)
	assert.ErrorIs(t, err, store.ErrCommentNotFound)
}

func TestListCommentsForBookNestsReplies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	first := newTestComment(b.ID, u.ID, "first")
	require.NoError(t, s.CreateComment(ctx, first))
	second := newTestComment(b.ID, u.ID, "second")
	require.NoError(t, s.CreateComment(ctx, second))
	reply := newTestComment(b.ID, u.ID, "a reply to first")
	reply.ParentID = first.ID
	require.NoError(t, s.CreateComment(ctx, reply))

	result, err := s.ListCommentsForBook(ctx, b.ID, "", store.NewPage(1, 5))
	require.NoError(t, err)

	// Only top-level comments count toward pagination, newest first.
	assert.Equal(t, 2, result.TotalItems)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "second", result.Items[0].Content)
	assert.Empty(t, result.Items[0].Replies)
	assert.Equal(t, "first", result.Items[1].Content)
	require.Len(t, result.Items[1].Replies, 1)
	assert.Equal(t, "a reply to first", result.Items[1].Replies[0].Content)
}

func TestListCommentsForBookClampsPage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	for range 7 {
		require.NoError(t, s.CreateComment(ctx, newTestComment(b.ID, u.ID, "hello")))
	}

	result, err := s.ListCommentsForBook(ctx, b.ID, "", store.NewPage(42, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Page)
	assert.Len(t, result.Items, 2)
}

func TestToggleCommentLike(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)
	liker := newTestUser("liker")
	require.NoError(t, s.CreateUser(ctx, liker))

	c := newTestComment(b.ID, u.ID, "likeable")
	require.NoError(t, s.CreateComment(ctx, c))

	liked, count, err := s.ToggleCommentLike(ctx, c.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// A second toggle from the same user withdraws the like.
	liked, count, err = s.ToggleCommentLike(ctx, c.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
}

func TestToggleCommentLikeUnknownComment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, _ := seedBookWithAuthor(t, s)

	_, _, err := s.ToggleCommentLike(ctx, "comment-missing", u.ID)
	assert.ErrorIs(t, err, store.ErrCommentNotFound)
}

func TestListCommentsMarksViewerLikes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)
	liker := newTestUser("liker")
	require.NoError(t, s.CreateUser(ctx, liker))

	c := newTestComment(b.ID, u.ID, "likeable")
	require.NoError(t, s.CreateComment(ctx, c))

	_, _, err := s.ToggleCommentLike(ctx, c.ID, liker.ID)
	require.NoError(t, err)

	result, err := s.ListCommentsForBook(ctx, b.ID, liker.ID, store.NewPage(1, 5))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].LikedByUser)
	assert.Equal(t, 1, result.Items[0].LikeCount)

	// Anonymous viewers see the count but no liked flag.
	result, err = s.ListCommentsForBook(ctx, b.ID, "", store.NewPage(1, 5))
	require.NoError(t, err)
	assert.False(t, result.Items[0].LikedByUser)
	assert.Equal(t, 1, result.Items[0].LikeCount)
}

func TestDeleteCommentRemovesLikes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, b := seedBookWithAuthor(t, s)

	c := newTestComment(b.ID, u.ID, "short-lived")
	require.NoError(t, s.CreateComment(ctx, c))

	_, _, err := s.ToggleCommentLike(ctx, c.ID, u.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteComment(ctx, c.ID))

	count, err := s.CountCommentLikes(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
