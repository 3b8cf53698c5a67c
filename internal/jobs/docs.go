// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. TrackingSyncJob - Runs every minute to pull carrier tracking feeds, apply new scans to moving shipments, and advance label-sent returns to InTransit
// 2. TariffExpiryJob - Runs hourly to deactivate tariffs whose validity window has closed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncTrackingHandler, expireTariffsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The tracking sync job uses the cron expression "0 * * * * *" (every minute):
// carrier feeds change on the scale of minutes, not seconds. The tariff expiry
// job uses "0 0 * * * *" (hourly) since tariff validity has day granularity.
//
// # Error Handling
//
// - Both jobs log failures and wait for the next tick; a failed sweep is retried in full
// - Per-feed failures inside the tracking sweep are skipped so one carrier cannot stall the rest
// - Failed job starts will stop any already running jobs
package jobs
