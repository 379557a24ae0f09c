package commands

import (
	"context"
)

// PruneTrackingPointsCommandHandler removes tracking samples past retention.
type PruneTrackingPointsCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewPruneTrackingPointsCommandHandler creates a handler for retention sweeps.
func NewPruneTrackingPointsCommandHandler(uowFactory TrackingUoWFactory) PruneTrackingPointsCommandHandler {
	return PruneTrackingPointsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the retention sweep and returns the number of removed samples.
func (h PruneTrackingPointsCommandHandler) Handle(
	ctx context.Context,
	cmd PruneTrackingPointsCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.TrackingRepository().DeleteOlderThan(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
