package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/guard"
)

var ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
	"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
)

// GetStatusHistoryQuery retrieves the full transition history of one parcel,
// newest first. The read is access-scoped: customers see only their own
// parcels, agents only their assigned ones.
type GetStatusHistoryQuery struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actor    actor.Actor

	guard guard.ConstructorGuard
}

// NewGetStatusHistoryQuery creates a history query for the given parcel and actor.
func NewGetStatusHistoryQuery(parcelID kernel.UUID, requestedBy actor.Actor) (GetStatusHistoryQuery, error) {
	historyQuery := GetStatusHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcelID.Validate(),
		requestedBy.Validate(),
	); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	historyQuery.parcelID = parcelID
	historyQuery.actor = requestedBy
	return historyQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

// ParcelID returns the parcel whose history is requested.
func (q GetStatusHistoryQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Actor returns the requesting actor.
func (q GetStatusHistoryQuery) Actor() actor.Actor {
	return q.actor
}

// StatusHistoryEntryResponse represents one transition record in the history.
type StatusHistoryEntryResponse struct {
	ID              kernel.UUID
	Status          parcel.Status
	Note            string
	ChangedByUserID kernel.UUID
	CreatedAt       time.Time
}
