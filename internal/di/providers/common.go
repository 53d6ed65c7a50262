package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown.
	shutdownTimeout = 30 * time.Second

	// resetSweepInterval is how often expired password reset tokens are
	// purged.
	resetSweepInterval = time.Hour
)
