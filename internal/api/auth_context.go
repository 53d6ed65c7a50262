package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyActor contextKey = "actor"

// sessionCookieName is the cookie carrying the PASETO session token.
const sessionCookieName = "session"

// withActor resolves the request's identity from the session cookie or a
// Bearer token and attaches a domain.Actor to the context. An absent,
// invalid or expired token yields an anonymous actor; nothing here refuses
// a request. The user is loaded fresh so a staff flag flipped since login
// takes effect immediately.
func (s *Server) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.AnonymousActor()

		if token := sessionToken(r); token != "" {
			claims, err := s.tokens.VerifySessionToken(token)
			if err == nil {
				user, err := s.store.GetUser(r.Context(), claims.UserID)
				if err == nil {
					actor = domain.ActorFor(user)
				}
			}
		}

		ctx := context.WithValue(r.Context(), contextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionToken extracts the session token from the cookie or the
// Authorization header. The cookie wins when both are present.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// actorFrom returns the actor attached by withActor. Requests that bypass
// the middleware read as anonymous.
func actorFrom(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(contextKeyActor).(domain.Actor); ok {
		return actor
	}
	return domain.AnonymousActor()
}

// requirePageAuth guards page flows: anonymous requests are redirected to
// the login page with the original path preserved in the next parameter.
func (s *Server) requirePageAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !actorFrom(r.Context()).IsAuthenticated() {
			response.RedirectToLogin(w, r, loginPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAPIAuth guards JSON endpoints: anonymous requests get a 401.
func (s *Server) requireAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !actorFrom(r.Context()).IsAuthenticated() {
			response.Unauthorized(w, "authentication required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireStaff must run after requireAPIAuth.
func (s *Server) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !actorFrom(r.Context()).IsStaff() {
			response.Forbidden(w, "staff access required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// setSessionCookie installs the session token as an HttpOnly cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.SessionDuration().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
