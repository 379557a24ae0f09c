// Package ports defines the contracts between the parcel lifecycle engine and
// its infrastructure: repositories, the unit of work, the real-time event
// publisher, and the notification transports. These interfaces establish
// dependency inversion and testability.
package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Reads exclude soft-deleted parcels: a deleted parcel behaves as absent and
// surfaces as an ObjectNotFoundError.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateIfStatus persists the aggregate only if its stored status still
	// equals expected. A concurrent transition that already moved the parcel
	// away from expected makes the write fail with a StatusConflictError,
	// leaving the stored state untouched. This is the engine's optimistic
	// guard against two simultaneous transitions on one parcel.
	UpdateIfStatus(ctx context.Context, aggregate *parcel.Parcel, expected parcel.Status) error

	// Get retrieves a live parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a live parcel by its tracking code.
	GetByTrackingCode(ctx context.Context, code parcel.TrackingCode) (*parcel.Parcel, error)
}

// StatusHistoryRepository defines the append-only persistence contract for
// status transition records. Records are never mutated after insertion.
type StatusHistoryRepository interface {
	// Add appends a transition record.
	Add(ctx context.Context, record *parcel.StatusHistoryRecord) error
}
