package api

import (
	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This keeps the NewServer signature manageable and makes test wiring easy.
type Services struct {
	Auth     *service.AuthService
	Book     *service.BookService
	Comment  *service.CommentService
	Genre    *service.GenreService
	Feedback *service.FeedbackService
	Search   *service.SearchService
}
