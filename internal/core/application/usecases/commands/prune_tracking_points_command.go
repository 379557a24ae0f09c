package commands

import (
	"errors"
	"time"

	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrPruneTrackingPointsCommandIsNotConstructed = errors.New(
	"PruneTrackingPointsCommand must be created via NewPruneTrackingPointsCommand constructor",
)

// PruneTrackingPointsCommand represents a retention sweep over the tracking
// feed: location samples recorded before the cutoff are removed. Issued by
// the scheduled retention job, never by request handlers.
type PruneTrackingPointsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewPruneTrackingPointsCommand creates a retention sweep command.
func NewPruneTrackingPointsCommand(cutoff time.Time) (PruneTrackingPointsCommand, error) {
	pruneCommand := PruneTrackingPointsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if cutoff.IsZero() {
		return PruneTrackingPointsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	pruneCommand.cutoff = cutoff
	return pruneCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PruneTrackingPointsCommand) Validate() error {
	return c.guard.Validate(ErrPruneTrackingPointsCommandIsNotConstructed)
}

// Cutoff returns the retention cutoff; samples older than this are removed.
func (c PruneTrackingPointsCommand) Cutoff() time.Time {
	return c.cutoff
}
