package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/search"
)

// handleSearch answers catalog searches over published books.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		response.BadRequest(w, "query parameter q is required", s.logger)
		return
	}

	params := search.DefaultParams()
	params.Query = query

	if genres := q.Get("genres"); genres != "" {
		for _, slug := range strings.Split(genres, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				params.GenreSlugs = append(params.GenreSlugs, slug)
			}
		}
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset >= 0 {
		params.Offset = offset
	}
	if sort := q.Get("sort"); sort != "" {
		params.SortBy = sort
	}

	result, err := s.services.Search.Search(r.Context(), params)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		response.InternalError(w, "search failed", s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
