package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// bookRequestFrom binds a book create/edit submission from either body
// format.
func bookRequestFrom(r *http.Request) (service.BookRequest, error) {
	var req service.BookRequest
	if isJSONRequest(r) {
		err := decodeJSON(r, &req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	return service.BookRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		GenreIDs:    r.PostForm["genres"],
		ImagePath:   r.PostFormValue("image_path"),
		Publish:     formCheckbox(r.PostFormValue("publish")),
	}, nil
}

// bookEcho returns the submitted values for re-rendering a failed form.
func bookEcho(req service.BookRequest) map[string]any {
	return map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"genres":      req.GenreIDs,
		"image_path":  req.ImagePath,
		"publish":     req.Publish,
	}
}

// handleHome serves the landing page context with the newest published
// books.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	books, err := s.services.Book.ListPublished(r.Context(), "", parsePage(r, service.DefaultBookPageSize))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":  NewPageContext("FavouriteBooks").WithActor(actor).WithActivePath("/"),
		"books": books,
	}, s.logger)
}

// handleListBooks lists published books, optionally filtered by genre.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	genreSlug := chi.URLParam(r, "slug")

	books, err := s.services.Book.ListPublished(r.Context(), genreSlug, parsePage(r, service.DefaultBookPageSize))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	genres, err := s.services.Genre.ListGenres(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":   NewPageContext("Books").WithActor(actor).WithActivePath("/books"),
		"books":  books,
		"genres": genres,
		"genre":  genreSlug,
	}, s.logger)
}

// handleGetBook serves a book detail page with a page of its comment
// thread. Drafts read as not-found for everyone but their author.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	slug := chi.URLParam(r, "slug")

	book, err := s.services.Book.GetBookBySlug(r.Context(), actor, slug)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	comments, err := s.services.Comment.ListForBook(r.Context(), actor, slug, parsePage(r, service.CommentPageSize))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":     NewPageContext(book.Title).WithActor(actor),
		"book":     book,
		"comments": comments,
	}, s.logger)
}

// handleAddBookPage serves the add-book form context.
func (s *Server) handleAddBookPage(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	genres, err := s.services.Genre.ListGenres(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":   NewPageContext("Add Book").WithActor(actor).WithActivePath("/addbook"),
		"genres": genres,
	}, s.logger)
}

// handleCreateBook creates a book owned by the current user.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	req, err := bookRequestFrom(r)
	if err != nil {
		response.BadRequest(w, "invalid form submission", s.logger)
		return
	}

	book, err := s.services.Book.CreateBook(r.Context(), actor, req)
	if err != nil {
		s.respondError(w, err, bookEcho(req))
		return
	}

	if isJSONRequest(r) {
		response.Created(w, book, s.logger)
		return
	}
	response.SeeOther(w, r, "/book/"+book.Slug)
}

// handleMyBooks lists the current user's books, drafts included.
func (s *Server) handleMyBooks(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	genreSlug := chi.URLParam(r, "slug")

	books, err := s.services.Book.ListMine(r.Context(), actor, genreSlug, parsePage(r, service.DefaultBookPageSize))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	genres, err := s.services.Genre.ListGenresForAuthor(r.Context(), actor.ID())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":   NewPageContext("My Books").WithActor(actor).WithActivePath("/mybooks"),
		"books":  books,
		"genres": genres,
		"genre":  genreSlug,
	}, s.logger)
}

// handleEditBook updates a book. Non-authors get a 404, never a 403, so
// the handler cannot be used to probe who owns what.
func (s *Server) handleEditBook(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	slug := chi.URLParam(r, "slug")

	req, err := bookRequestFrom(r)
	if err != nil {
		response.BadRequest(w, "invalid form submission", s.logger)
		return
	}

	book, err := s.services.Book.UpdateBook(r.Context(), actor, slug, req)
	if err != nil {
		s.respondError(w, err, bookEcho(req))
		return
	}

	if isJSONRequest(r) {
		response.Success(w, book, s.logger)
		return
	}
	// The slug may have changed with the title.
	response.SeeOther(w, r, "/book/"+book.Slug)
}

// handleDeleteBook deletes a book and everything hanging off it.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	slug := chi.URLParam(r, "slug")

	if err := s.services.Book.DeleteBook(r.Context(), actor, slug); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if isJSONRequest(r) {
		response.NoContent(w)
		return
	}
	response.SeeOther(w, r, "/mybooks")
}
