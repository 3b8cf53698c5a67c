package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingSyncJob *TrackingSyncJob
	tariffExpiryJob *TariffExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	syncTrackingHandler commands.SyncTrackingCommandHandler,
	expireTariffsHandler commands.ExpireTariffsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingSyncJob: NewTrackingSyncJob(syncTrackingHandler, logger),
		tariffExpiryJob: NewTariffExpiryJob(expireTariffsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking sync job: %w", err)
	}

	if err := jm.tariffExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.trackingSyncJob.Stop()
		return fmt.Errorf("failed to start tariff expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.tariffExpiryJob.Stop()
	jm.trackingSyncJob.Stop()
}
