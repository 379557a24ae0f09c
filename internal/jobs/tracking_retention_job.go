package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TrackingRetentionJob manages the scheduled pruning of old tracking points.
// Runs once a day to delete points older than the configured retention window.
type TrackingRetentionJob struct {
	handler       commands.PruneTrackingPointsCommandHandler
	retentionDays int
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewTrackingRetentionJob creates a new job for pruning tracking points.
// Uses PruneTrackingPointsCommandHandler to delete everything older than
// retentionDays once a day.
func NewTrackingRetentionJob(
	handler commands.PruneTrackingPointsCommandHandler,
	retentionDays int,
	logger *slog.Logger,
) *TrackingRetentionJob {
	return &TrackingRetentionJob{
		handler:       handler,
		retentionDays: retentionDays,
		cron:          cron.New(),
		logger:        logger.With("component", "tracking_retention_job"),
	}
}

// Start begins the tracking retention job to run daily at 03:00.
func (j *TrackingRetentionJob) Start() error {
	_, err := j.cron.AddFunc("0 3 * * *", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)
		cmd, err := commands.NewPruneTrackingPointsCommand(cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Tracking retention job misconfigured", "error", err)
			return
		}

		removed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Tracking retention job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Tracking retention job completed",
			"removed", removed,
			"cutoff", cutoff,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking retention job started (running daily)",
		"retention_days", j.retentionDays,
	)
	return nil
}

// Stop stops the tracking retention job.
func (j *TrackingRetentionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking retention job stopped")
}
