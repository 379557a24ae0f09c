package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/guard"
)

var ErrGetParcelByTrackingCodeQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingCodeQuery must be created via NewGetParcelByTrackingCodeQuery constructor",
)

// trackingExportLimit is the number of samples returned with the full
// tracking export.
const trackingExportLimit = 50

// GetParcelByTrackingCodeQuery retrieves the tracking view of a parcel by its
// shareable code: the parcel summary, its full status history, and the recent
// tracking samples. The read is access-scoped like every other parcel read:
// the code is a lookup key, not an access capability.
type GetParcelByTrackingCodeQuery struct { //nolint:recvcheck //using for validation
	trackingCode parcel.TrackingCode
	actor        actor.Actor

	guard guard.ConstructorGuard
}

// NewGetParcelByTrackingCodeQuery creates a tracking-view query for the given
// code and actor. The raw input is normalized and validated against the
// issued format.
func NewGetParcelByTrackingCodeQuery(rawCode string, requestedBy actor.Actor) (GetParcelByTrackingCodeQuery, error) {
	code, err := parcel.TrackingCodeFromString(rawCode)
	if err != nil {
		return GetParcelByTrackingCodeQuery{}, err
	}

	if err := requestedBy.Validate(); err != nil {
		return GetParcelByTrackingCodeQuery{}, err
	}

	return GetParcelByTrackingCodeQuery{
		trackingCode: code,
		actor:        requestedBy,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelByTrackingCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingCodeQueryIsNotConstructed)
}

// TrackingCode returns the normalized tracking code.
func (q GetParcelByTrackingCodeQuery) TrackingCode() parcel.TrackingCode {
	return q.trackingCode
}

// Actor returns the requesting actor.
func (q GetParcelByTrackingCodeQuery) Actor() actor.Actor {
	return q.actor
}

// ParcelSummaryResponse is the read model of one parcel.
type ParcelSummaryResponse struct {
	ID                kernel.UUID
	TrackingCode      parcel.TrackingCode
	Status            parcel.Status
	PickupAddress     string
	DeliveryAddress   string
	ParcelType        string
	ParcelSize        string
	Weight            float64
	PaymentType       parcel.PaymentType
	CODAmount         int64
	ScheduledPickupAt *time.Time
	DeliveredAt       *time.Time
	FailureReason     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GetParcelByTrackingCodeQueryResponse is the assembled tracking view.
type GetParcelByTrackingCodeQueryResponse struct {
	Parcel  ParcelSummaryResponse
	History []StatusHistoryEntryResponse
	Feed    GetTrackingFeedQueryResponse
}
