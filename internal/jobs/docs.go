// Package jobs provides scheduled background tasks for the parcel system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the parcel service.
//
// # Available Jobs
//
// 1. TrackingRetentionJob - Runs daily to prune tracking points older than the retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(pruneTrackingPointsHandler, retentionDays, logger)
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
// The retention job uses the cron expression "0 3 * * *" which means it runs
// once a day at 03:00. Tracking points only need to be trimmed occasionally,
// so a daily sweep keeps the table small without adding load.
//
// # Error Handling
//
// - Retention job logs prune failures and retries on the next scheduled run
// - Failed job starts will stop any already running jobs
package jobs
