package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/favouritebooks/favouritebooks-server/internal/config"
	"github.com/favouritebooks/favouritebooks-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	db, err := sqlite.Open(cfg.DatabasePath(), log)
	if err != nil {
		return nil, err
	}

	log.Info("database initialized", "path", cfg.DatabasePath())

	return &StoreHandle{Store: db}, nil
}
