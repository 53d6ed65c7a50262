// Package mailer provides outbound email delivery over SMTP, with a
// logging fallback for installs that don't configure a mail host.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/favouritebooks/favouritebooks-server/internal/config"
	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
)

// Message is a plain-text email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers messages. Delivery failures are returned to the caller,
// never swallowed; the feedback flow depends on surfacing them.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP delivers mail through a configured SMTP relay.
type SMTP struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// NewSMTP creates an SMTP mailer from config.
func NewSMTP(cfg config.MailConfig, logger *slog.Logger) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &SMTP{
		client: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// Send delivers the message, wrapping transport failures as delivery errors.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeDelivery, "invalid from address")
	}
	if err := m.To(msg.To); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeDelivery, "invalid recipient address")
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeDelivery, "invalid reply-to address")
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("mail delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeDelivery, "failed to deliver email")
	}

	s.logger.Info("mail delivered", "to", msg.To, "subject", msg.Subject)
	return nil
}

// Log writes messages to the log instead of sending them. Used in
// development and tests, and whenever no SMTP host is configured.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging mailer.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Send logs the message and reports success.
func (l *Log) Send(_ context.Context, msg Message) error {
	l.logger.Info("mail (not sent, no SMTP host configured)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// New returns an SMTP mailer when a host is configured, otherwise a
// logging mailer.
func New(cfg config.MailConfig, logger *slog.Logger) (Mailer, error) {
	if cfg.Host == "" {
		return NewLog(logger), nil
	}
	return NewSMTP(cfg, logger)
}
