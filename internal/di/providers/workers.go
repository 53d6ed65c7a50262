package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/do/v2"

	"github.com/favouritebooks/favouritebooks-server/internal/service"
)

// ResetSweepJob periodically removes expired password reset tokens.
type ResetSweepJob struct {
	auth   *service.AuthService
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// ProvideResetSweepJob provides the background reset token sweeper and
// starts it immediately.
func ProvideResetSweepJob(i do.Injector) (*ResetSweepJob, error) {
	authService := do.MustInvoke[*service.AuthService](i)
	log := do.MustInvoke[*slog.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	job := &ResetSweepJob{
		auth:   authService,
		logger: log,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go job.run(ctx)

	return job, nil
}

func (j *ResetSweepJob) run(ctx context.Context) {
	defer close(j.done)

	// Sweep once at startup to clear tokens that expired while the
	// server was down.
	j.auth.SweepExpiredResets(ctx)

	ticker := time.NewTicker(resetSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.auth.SweepExpiredResets(ctx)
		}
	}
}

// Shutdown implements do.Shutdownable.
func (j *ResetSweepJob) Shutdown() error {
	j.cancel()
	<-j.done
	j.logger.Info("reset token sweeper stopped")
	return nil
}
