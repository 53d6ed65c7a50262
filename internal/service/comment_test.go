package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

type commentTestEnv struct {
	*bookTestEnv
	comments *CommentService
	book     *domain.Book
}

func newCommentTestEnv(t *testing.T) *commentTestEnv {
	t.Helper()

	base := newBookTestEnv(t)

	book, err := base.books.CreateBook(context.Background(), base.alice, BookRequest{
		Title:   "Open for Discussion",
		Publish: true,
	})
	require.NoError(t, err)

	return &commentTestEnv{
		bookTestEnv: base,
		comments:    NewCommentService(base.store, testLogger),
		book:        book,
	}
}

func TestAddComment(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	comment, err := env.comments.AddComment(ctx, env.bob, env.book.Slug, AddCommentRequest{
		Content: "loved the ending",
	})
	require.NoError(t, err)
	assert.Equal(t, env.bob.ID(), comment.AuthorID)
	assert.Equal(t, "bob", comment.AuthorName)
	assert.NotEmpty(t, comment.AvatarColor)
	assert.Empty(t, comment.ParentID)
}

func TestAddCommentRequiresLogin(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	_, err := env.comments.AddComment(ctx, domain.AnonymousActor(), env.book.Slug, AddCommentRequest{
		Content: "drive-by remark",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAddCommentValidation(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	_, err := env.comments.AddComment(ctx, env.bob, env.book.Slug, AddCommentRequest{Content: ""})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestAddReply(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	parent, err := env.comments.AddComment(ctx, env.bob, env.book.Slug, AddCommentRequest{
		Content: "is this a standalone novel?",
	})
	require.NoError(t, err)

	reply, err := env.comments.AddComment(ctx, env.alice, env.book.Slug, AddCommentRequest{
		Content:  "first of a trilogy",
		ParentID: parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, reply.ParentID)

	result, err := env.comments.ListForBook(ctx, domain.AnonymousActor(), env.book.Slug, store.NewPage(1, CommentPageSize))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Len(t, result.Items[0].Replies, 1)
	assert.Equal(t, "first of a trilogy", result.Items[0].Replies[0].Content)
}

func TestDeleteCommentAuthorOrStaff(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	comment, err := env.comments.AddComment(ctx, env.bob, env.book.Slug, AddCommentRequest{
		Content: "regrettable take",
	})
	require.NoError(t, err)

	// A third party cannot delete it.
	carol := domain.ActorFor(registerTestUser(t, newTestAuthService(t, env.store, nil), "carol"))
	_, err = env.comments.DeleteComment(ctx, carol, comment.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))

	// The author can.
	_, err = env.comments.DeleteComment(ctx, env.bob, comment.ID)
	require.NoError(t, err)

	// Staff can remove anyone's comment.
	other, err := env.comments.AddComment(ctx, env.bob, env.book.Slug, AddCommentRequest{
		Content: "another take",
	})
	require.NoError(t, err)

	promoteToStaff(t, env.store, carol.User)
	_, err = env.comments.DeleteComment(ctx, carol, other.ID)
	require.NoError(t, err)

	result, err := env.comments.ListForBook(ctx, domain.AnonymousActor(), env.book.Slug, store.NewPage(1, CommentPageSize))
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestToggleLike(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	comment, err := env.comments.AddComment(ctx, env.alice, env.book.Slug, AddCommentRequest{
		Content: "worth a like",
	})
	require.NoError(t, err)

	res, err := env.comments.ToggleLike(ctx, env.bob, comment.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	// Same user again unlikes.
	res, err = env.comments.ToggleLike(ctx, env.bob, comment.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Zero(t, res.LikesCount)

	_, err = env.comments.ToggleLike(ctx, domain.AnonymousActor(), comment.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestListForBookMarksViewerLikes(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	comment, err := env.comments.AddComment(ctx, env.alice, env.book.Slug, AddCommentRequest{
		Content: "polarizing opinion",
	})
	require.NoError(t, err)

	_, err = env.comments.ToggleLike(ctx, env.bob, comment.ID)
	require.NoError(t, err)

	result, err := env.comments.ListForBook(ctx, env.bob, env.book.Slug, store.NewPage(1, CommentPageSize))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].LikedByUser)
	assert.Equal(t, 1, result.Items[0].LikeCount)

	result, err = env.comments.ListForBook(ctx, env.alice, env.book.Slug, store.NewPage(1, CommentPageSize))
	require.NoError(t, err)
	assert.False(t, result.Items[0].LikedByUser)
}

func TestListForBookDraftHiddenFromOthers(t *testing.T) {
	env := newCommentTestEnv(t)
	ctx := context.Background()

	draft, err := env.books.CreateBook(ctx, env.alice, BookRequest{Title: "Quiet Draft"})
	require.NoError(t, err)

	_, err = env.comments.ListForBook(ctx, env.bob, draft.Slug, store.NewPage(1, CommentPageSize))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
