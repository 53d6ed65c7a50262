package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// handleCreateComment posts a comment or reply on a book.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	slug := chi.URLParam(r, "slug")

	var req service.AddCommentRequest
	if isJSONRequest(r) {
		if err := decodeJSON(r, &req); err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			response.BadRequest(w, "invalid form submission", s.logger)
			return
		}
		req = service.AddCommentRequest{
			Content:  r.PostFormValue("content"),
			ParentID: r.PostFormValue("parent_id"),
		}
	}

	comment, err := s.services.Comment.AddComment(r.Context(), actor, slug, req)
	if err != nil {
		s.respondError(w, err, map[string]string{"content": req.Content})
		return
	}

	if isJSONRequest(r) {
		response.Created(w, comment, s.logger)
		return
	}
	response.SeeOther(w, r, "/book/"+slug)
}

// handleDeleteComment removes a comment. The page flow redirects back to
// the book either way: a refused delete leaves the comment in place and
// sends the user back with no success state rather than erroring.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	commentID := chi.URLParam(r, "id")

	comment, err := s.services.Comment.DeleteComment(r.Context(), actor, commentID)
	if err != nil {
		if isJSONRequest(r) {
			response.HandleError(w, err, s.logger)
			return
		}
		if domainerrors.Is(err, domainerrors.ErrForbidden) {
			response.SeeOther(w, r, s.backToBook(r, ""))
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	if isJSONRequest(r) {
		response.NoContent(w)
		return
	}
	response.SeeOther(w, r, s.backToBook(r, comment.BookID))
}

// backToBook resolves the redirect target after a comment mutation: the
// book's page when the book is known, otherwise the referring page.
func (s *Server) backToBook(r *http.Request, bookID string) string {
	if bookID != "" {
		if book, err := s.store.GetBook(r.Context(), bookID); err == nil {
			return "/book/" + book.Slug
		}
	}
	if ref := safeNext(refererPath(r), ""); ref != "" {
		return ref
	}
	return "/"
}

// handleToggleLike flips the current user's like on a comment. This is
// the one AJAX endpoint: the response body is the bare toggle state, no
// envelope, because the frontend script consumes the fields directly.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	commentID := chi.URLParam(r, "id")

	result, err := s.services.Comment.ToggleLike(r.Context(), actor, commentID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Raw(w, http.StatusOK, result, s.logger)
}
