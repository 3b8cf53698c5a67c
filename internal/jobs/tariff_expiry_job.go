package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TariffExpiryJob manages the scheduled deactivation of expired tariffs.
// Runs hourly; tariff validity has day granularity, so an hourly sweep keeps
// quotes honest without hammering the catalog.
type TariffExpiryJob struct {
	handler commands.ExpireTariffsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTariffExpiryJob creates a new job for tariff expiry.
// Uses ExpireTariffsCommandHandler to process the sweep every hour.
func NewTariffExpiryJob(handler commands.ExpireTariffsCommandHandler, logger *slog.Logger) *TariffExpiryJob {
	return &TariffExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "tariff_expiry_job"),
	}
}

// Start begins the tariff expiry job to run at the top of every hour.
func (j *TariffExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpireTariffsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Tariff expiry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tariff expiry job started (running hourly)")
	return nil
}

// Stop stops the tariff expiry job.
func (j *TariffExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tariff expiry job stopped")
}
