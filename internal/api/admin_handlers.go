package api

import (
	"net/http"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// bulkStatusRequest carries the book IDs for a bulk status change.
type bulkStatusRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleBulkStatus(w http.ResponseWriter, r *http.Request, status domain.BookStatus) {
	actor := actorFrom(r.Context())

	var req bulkStatusRequest
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
		req.IDs = r.PostForm["ids"]
	}

	if len(req.IDs) == 0 {
		response.BadRequest(w, "no book ids given", s.logger)
		return
	}

	updated, err := s.services.Book.SetStatus(r.Context(), actor, req.IDs, status)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"updated": updated}, s.logger)
}

// handleBulkPublish publishes the given books and reports how many rows
// actually changed.
func (s *Server) handleBulkPublish(w http.ResponseWriter, r *http.Request) {
	s.handleBulkStatus(w, r, domain.StatusPublished)
}

// handleBulkUnpublish pulls the given books back to draft.
func (s *Server) handleBulkUnpublish(w http.ResponseWriter, r *http.Request) {
	s.handleBulkStatus(w, r, domain.StatusDraft)
}

// handleCreateGenre adds a genre to the vocabulary.
func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	var req service.CreateGenreRequest
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
		req.Name = r.PostFormValue("name")
	}

	genre, err := s.services.Genre.CreateGenre(r.Context(), actor, req)
	if err != nil {
		s.respondError(w, err, map[string]string{"name": req.Name})
		return
	}

	response.Created(w, genre, s.logger)
}
