package api

import (
	"net/http"

	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// handleFeedback forwards a feedback submission to the site operators.
// Submissions are throttled per user so nobody can flood the inbox.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	if !s.feedbackLimiter.Allow(actor.ID()) {
		s.logger.Warn("feedback rate limit exceeded", "user_id", actor.ID())
		response.TooManyRequests(w, "too many submissions, try again later", s.logger)
		return
	}

	var req service.FeedbackRequest
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
		req = service.FeedbackRequest{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Content: r.PostFormValue("content"),
		}
	}

	if err := s.services.Feedback.Submit(r.Context(), req); err != nil {
		s.respondError(w, err, map[string]string{
			"name":    req.Name,
			"email":   req.Email,
			"content": req.Content,
		})
		return
	}

	if isJSONRequest(r) {
		response.Success(w, map[string]string{"message": "thanks for the feedback"}, s.logger)
		return
	}
	response.SeeOther(w, r, "/")
}
