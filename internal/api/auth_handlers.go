package api

import (
	"net/http"

	"github.com/favouritebooks/favouritebooks-server/internal/color"
	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// respondError answers a failed mutation. Validation failures echo the
// submitted values back alongside the field errors; everything else goes
// through the shared error mapping.
func (s *Server) respondError(w http.ResponseWriter, err error, values any) {
	var derr *domainerrors.Error
	if values != nil && domainerrors.As(err, &derr) && derr.Code == domainerrors.CodeValidation {
		response.ValidationError(w, derr.Message, derr.Details, values, s.logger)
		return
	}
	response.HandleError(w, err, s.logger)
}

// handleRegister creates an account and logs the new user straight in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
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
		req = service.RegisterRequest{
			Username:    r.PostFormValue("username"),
			Email:       r.PostFormValue("email"),
			Password:    r.PostFormValue("password"),
			DisplayName: r.PostFormValue("display_name"),
		}
	}

	user, token, err := s.services.Auth.Register(r.Context(), req)
	if err != nil {
		// Never echo the password back.
		s.respondError(w, err, map[string]string{
			"username":     req.Username,
			"email":        req.Email,
			"display_name": req.DisplayName,
		})
		return
	}

	s.setSessionCookie(w, token)

	if isJSONRequest(r) {
		response.Created(w, map[string]any{"user": user, "token": token}, s.logger)
		return
	}
	response.SeeOther(w, r, "/")
}

// handleLogin verifies credentials and installs the session cookie.
// Attempts are rate limited per client address.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(clientAddress(r)) {
		s.logger.Warn("login rate limit exceeded", "addr", clientAddress(r))
		response.TooManyRequests(w, "too many login attempts, try again later", s.logger)
		return
	}

	var req service.LoginRequest
	next := ""
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
		req = service.LoginRequest{
			Username: r.PostFormValue("username"),
			Password: r.PostFormValue("password"),
		}
		next = r.PostFormValue("next")
	}

	user, token, err := s.services.Auth.Login(r.Context(), req)
	if err != nil {
		s.respondError(w, err, map[string]string{"username": req.Username})
		return
	}

	s.setSessionCookie(w, token)

	if isJSONRequest(r) {
		response.Success(w, map[string]any{"user": user, "token": token}, s.logger)
		return
	}
	response.SeeOther(w, r, safeNext(next, "/"))
}

// handleLogout clears the session cookie. The PASETO token itself stays
// valid until expiry; there is no server-side session state to revoke.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)

	if isJSONRequest(r) {
		response.NoContent(w)
		return
	}
	response.SeeOther(w, r, "/")
}

// handlePasswordChange replaces the current user's password.
func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	var req service.ChangePasswordRequest
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
		req = service.ChangePasswordRequest{
			CurrentPassword: r.PostFormValue("current_password"),
			NewPassword:     r.PostFormValue("new_password"),
		}
	}

	if err := s.services.Auth.ChangePassword(r.Context(), actorFrom(r.Context()), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if isJSONRequest(r) {
		response.NoContent(w)
		return
	}
	response.SeeOther(w, r, "/users/profile")
}

// handlePasswordResetRequest mails a reset link. The response is the same
// whether or not the address has an account.
func (s *Server) handlePasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	email := ""
	if isJSONRequest(r) {
		var req struct {
			Email string `json:"email"`
		}
		if err := decodeJSON(r, &req); err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		email = req.Email
	} else {
		if err := r.ParseForm(); err != nil {
			response.BadRequest(w, "invalid form submission", s.logger)
			return
		}
		email = r.PostFormValue("email")
	}

	if err := s.services.Auth.RequestPasswordReset(r.Context(), email); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{
		"message": "if that address has an account, a reset link is on its way",
	}, s.logger)
}

// handlePasswordResetConfirm consumes a reset token and sets the new
// password.
func (s *Server) handlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req service.ResetPasswordRequest
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
		req = service.ResetPasswordRequest{
			Token:    r.PostFormValue("token"),
			Password: r.PostFormValue("password"),
		}
	}

	if err := s.services.Auth.ResetPassword(r.Context(), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if isJSONRequest(r) {
		response.NoContent(w)
		return
	}
	response.SeeOther(w, r, loginPath)
}

// handleProfile returns the current user with a page context.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	genres, err := s.services.Genre.ListGenresForAuthor(r.Context(), actor.ID())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"page":         NewPageContext("Profile").WithActor(actor),
		"user":         actor.User,
		"avatar_color": color.ForUser(actor.ID()),
		"genres":       genres,
	}, s.logger)
}
