package jobs

import (
	"fmt"
	"log/slog"

	"parcelflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingRetentionJob *TrackingRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	pruneTrackingPointsHandler commands.PruneTrackingPointsCommandHandler,
	trackingRetentionDays int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingRetentionJob: NewTrackingRetentionJob(pruneTrackingPointsHandler, trackingRetentionDays, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingRetentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingRetentionJob.Stop()
}
