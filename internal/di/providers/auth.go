package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/favouritebooks/favouritebooks-server/internal/auth"
	"github.com/favouritebooks/favouritebooks-server/internal/config"
)

// SessionKey is the hex-encoded PASETO key for session tokens.
type SessionKey string

// ProvideSessionKey loads or generates the session key. A key from the
// environment wins over the one persisted under the data path.
func ProvideSessionKey(i do.Injector) (SessionKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	if cfg.Auth.SessionKey != "" {
		return SessionKey(cfg.Auth.SessionKey), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return "", err
	}
	cfg.Auth.SessionKey = key

	log.Info("session key loaded", "session_duration", cfg.Auth.SessionDuration)
	return SessionKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[SessionKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.SessionDuration)
}
