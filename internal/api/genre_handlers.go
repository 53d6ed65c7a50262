package api

import (
	"net/http"

	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
)

// handleListGenres lists the full genre vocabulary.
func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	genres, err := s.services.Genre.ListGenres(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":   NewPageContext("Genres").WithActor(actor).WithActivePath("/genres"),
		"genres": genres,
	}, s.logger)
}
