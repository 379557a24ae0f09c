package ports

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/tracking"
)

// TrackingRepository defines the append-only persistence contract for
// agent-reported location samples.
type TrackingRepository interface {
	// Add appends one location sample.
	Add(ctx context.Context, point *tracking.Point) error

	// DeleteOlderThan removes samples recorded before the cutoff.
	// Used by the retention job; returns the number of removed samples.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
