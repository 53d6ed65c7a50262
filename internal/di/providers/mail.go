package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/favouritebooks/favouritebooks-server/internal/config"
	"github.com/favouritebooks/favouritebooks-server/internal/mailer"
)

// ProvideMailer provides the outbound mailer. Without SMTP settings the
// log mailer is used, which keeps local development working.
func ProvideMailer(i do.Injector) (mailer.Mailer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	return mailer.New(cfg.Mail, log)
}
