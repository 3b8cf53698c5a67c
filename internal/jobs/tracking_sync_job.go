package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TrackingSyncJob manages the scheduled synchronization with carrier tracking
// feeds. Runs every minute to apply new scans to moving shipments and advance
// label-sent returns.
type TrackingSyncJob struct {
	handler commands.SyncTrackingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTrackingSyncJob creates a new job for tracking synchronization.
// Uses SyncTrackingCommandHandler to process the sweep every minute.
func NewTrackingSyncJob(handler commands.SyncTrackingCommandHandler, logger *slog.Logger) *TrackingSyncJob {
	return &TrackingSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "tracking_sync_job"),
	}
}

// Start begins the tracking sync job to run every minute.
func (j *TrackingSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncTrackingCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Tracking sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking sync job started (running every minute)")
	return nil
}

// Stop stops the tracking sync job.
func (j *TrackingSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking sync job stopped")
}
