package service

import (
	"context"
	"log/slog"

	"github.com/favouritebooks/favouritebooks-server/internal/access"
	"github.com/favouritebooks/favouritebooks-server/internal/color"
	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/id"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
	"github.com/favouritebooks/favouritebooks-server/internal/validation"
)

// CommentPageSize is how many top-level comments a page shows.
const CommentPageSize = 5

// CommentService manages the comment thread and like ledger on books.
type CommentService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCommentService creates a new comment service.
func NewCommentService(st store.Store, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
	}
}

// AddCommentRequest contains fields for posting a comment.
type AddCommentRequest struct {
	Content  string `json:"content" validate:"required,max=500"`
	ParentID string `json:"parent_id"`
}

// AddComment posts a comment on a book. The book must be visible to the
// actor; commenting on someone else's draft is impossible because the
// draft reads as not-found.
func (s *CommentService) AddComment(ctx context.Context, actor domain.Actor, bookSlug string, req AddCommentRequest) (*domain.Comment, error) {
	book, err := s.store.GetBookBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	if err := access.CanComment(actor, book); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	commentID, err := id.Generate("comment")
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		BookID:   book.ID,
		AuthorID: actor.ID(),
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	comment.ID = commentID
	comment.InitTimestamps()

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	comment.AuthorName = actor.User.Username
	comment.AvatarColor = color.ForUser(comment.AuthorID)

	s.logger.Info("comment added", "id", comment.ID, "book", book.ID, "author", actor.ID(), "reply", comment.IsReply())
	return comment, nil
}

// DeleteComment hard-deletes a comment. The author or a staff member may
// delete; anyone else is refused. Replies and likes go with it.
func (s *CommentService) DeleteComment(ctx context.Context, actor domain.Actor, commentID string) (*domain.Comment, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := access.CanDeleteComment(actor, comment); err != nil {
		return nil, err
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}

	s.logger.Info("comment deleted", "id", commentID, "book", comment.BookID, "actor", actor.ID())
	return comment, nil
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// ToggleLike flips the actor's like on a comment and returns the new state
// with the fresh count. Liking twice in a row withdraws the like.
func (s *CommentService) ToggleLike(ctx context.Context, actor domain.Actor, commentID string) (*LikeResult, error) {
	if err := access.CanLikeComment(actor); err != nil {
		return nil, err
	}

	liked, count, err := s.store.ToggleCommentLike(ctx, commentID, actor.ID())
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: liked, LikesCount: count}, nil
}

// ListForBook returns a page of a visible book's comment thread. The
// actor's likes are marked on each comment.
func (s *CommentService) ListForBook(ctx context.Context, actor domain.Actor, bookSlug string, page store.Page) (*store.PagedResult[*domain.Comment], error) {
	book, err := s.store.GetBookBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	if err := access.CanViewBook(actor, book); err != nil {
		return nil, err
	}

	result, err := s.store.ListCommentsForBook(ctx, book.ID, actor.ID(), page)
	if err != nil {
		return nil, err
	}

	for _, c := range result.Items {
		c.AvatarColor = color.ForUser(c.AuthorID)
		for _, r := range c.Replies {
			r.AvatarColor = color.ForUser(r.AuthorID)
		}
	}

	return result, nil
}
