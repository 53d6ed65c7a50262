// Package api provides the HTTP server and handlers for the FavouriteBooks
// application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/favouritebooks/favouritebooks-server/internal/auth"
	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/ratelimit"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

const loginPath = "/users/login"

// RateLimits configures the per-key throttles the server applies to
// abuse-prone endpoints.
type RateLimits struct {
	// Login attempts per second per client address.
	LoginRPS   float64
	LoginBurst int
	// Feedback submissions per second per user.
	FeedbackRPS   float64
	FeedbackBurst int
}

// DefaultRateLimits returns the production throttle settings.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		LoginRPS:      1,
		LoginBurst:    5,
		FeedbackRPS:   0.2,
		FeedbackBurst: 3,
	}
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	tokens          *auth.TokenService
	loginLimiter    *ratelimit.KeyedRateLimiter
	feedbackLimiter *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, tokens *auth.TokenService, limits RateLimits, logger *slog.Logger) *Server {
	s := &Server{
		store:           st,
		services:        services,
		tokens:          tokens,
		loginLimiter:    ratelimit.New(limits.LoginRPS, limits.LoginBurst),
		feedbackLimiter: ratelimit.New(limits.FeedbackRPS, limits.FeedbackBurst),
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the background refill goroutines of the rate limiters.
func (s *Server) Close() {
	s.loginLimiter.Stop()
	s.feedbackLimiter.Stop()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Actor resolution runs on every request; handlers read the actor
	// from the context and never touch tokens themselves.
	s.router.Use(s.withActor)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	// Public catalog.
	s.router.Get("/", s.handleHome)
	s.router.Get("/books", s.handleListBooks)
	s.router.Get("/books/genre/{slug}", s.handleListBooks)
	s.router.Get("/genres", s.handleListGenres)

	// Book detail and its comment thread.
	s.router.Route("/book/{slug}", func(r chi.Router) {
		r.Get("/", s.handleGetBook)
		r.Group(func(r chi.Router) {
			r.Use(s.requirePageAuth)
			r.Post("/edit", s.handleEditBook)
			r.Post("/delete", s.handleDeleteBook)
			r.Post("/comments", s.handleCreateComment)
		})
	})

	// Authoring.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requirePageAuth)
		r.Get("/addbook", s.handleAddBookPage)
		r.Post("/addbook", s.handleCreateBook)
		r.Get("/mybooks", s.handleMyBooks)
		r.Get("/mybooks/genre/{slug}", s.handleMyBooks)
	})

	// Comments reached by ID rather than through the book.
	s.router.Route("/comments/{id}", func(r chi.Router) {
		r.With(s.requirePageAuth).Post("/delete", s.handleDeleteComment)
		r.With(s.requireAPIAuth).Post("/like", s.handleToggleLike)
	})

	// Accounts.
	s.router.Route("/users", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Post("/password-reset", s.handlePasswordResetRequest)
		r.Post("/password-reset/confirm", s.handlePasswordResetConfirm)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAPIAuth)
			r.Post("/password-change", s.handlePasswordChange)
			r.Get("/profile", s.handleProfile)
		})
	})

	s.router.With(s.requireAPIAuth).Post("/feedback", s.handleFeedback)

	// JSON API.
	s.router.Get("/api/v1/search", s.handleSearch)

	// Staff operations.
	s.router.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAPIAuth, s.requireStaff)
		r.Post("/books/publish", s.handleBulkPublish)
		r.Post("/books/unpublish", s.handleBulkUnpublish)
		r.Post("/genres", s.handleCreateGenre)
	})
}

// handleHealthCheck reports server health.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
