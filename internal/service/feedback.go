package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/favouritebooks/favouritebooks-server/internal/domain"
	"github.com/favouritebooks/favouritebooks-server/internal/mailer"
	"github.com/favouritebooks/favouritebooks-server/internal/validation"
)

// FeedbackService forwards feedback submissions to the site operators by
// email. Nothing is persisted; a delivery failure is the caller's problem
// to report, never silently dropped.
type FeedbackService struct {
	mailer    mailer.Mailer
	recipient string
	logger    *slog.Logger
	validator *validation.Validator
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(m mailer.Mailer, recipient string, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		mailer:    m,
		recipient: recipient,
		logger:    logger,
		validator: validation.New(),
	}
}

// FeedbackRequest contains a feedback form submission.
type FeedbackRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,max=2000"`
}

// Submit validates and mails the feedback. The sender's address goes in
// Reply-To so operators can answer directly.
func (s *FeedbackService) Submit(ctx context.Context, req FeedbackRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	fb := domain.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Content: req.Content,
	}

	msg := mailer.Message{
		To:      s.recipient,
		ReplyTo: fb.Email,
		Subject: fmt.Sprintf("Feedback from %s", fb.Email),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n", fb.Name, fb.Email, fb.Content),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return err
	}

	s.logger.Info("feedback forwarded", "from", fb.Email)
	return nil
}
