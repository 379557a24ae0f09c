package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrGetTrackingFeedQueryIsNotConstructed = errors.New(
	"GetTrackingFeedQuery must be created via NewGetTrackingFeedQuery constructor",
)

// DefaultTrackingFeedLimit is the number of recent samples returned to the
// live feed. The full export uses a higher limit.
const DefaultTrackingFeedLimit = 20

// GetTrackingFeedQuery retrieves the most recent location sample plus the
// last N samples of one parcel, newest first. Access-scoped like every other
// parcel read.
type GetTrackingFeedQuery struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actor    actor.Actor
	limit    int

	guard guard.ConstructorGuard
}

// NewGetTrackingFeedQuery creates a tracking feed query.
// A non-positive limit falls back to the live-feed default.
func NewGetTrackingFeedQuery(
	parcelID kernel.UUID,
	requestedBy actor.Actor,
	limit int,
) (GetTrackingFeedQuery, error) {
	feedQuery := GetTrackingFeedQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcelID.Validate(),
		requestedBy.Validate(),
	); err != nil {
		return GetTrackingFeedQuery{}, err
	}
	if limit > 1000 {
		return GetTrackingFeedQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}
	if limit <= 0 {
		limit = DefaultTrackingFeedLimit
	}

	feedQuery.parcelID = parcelID
	feedQuery.actor = requestedBy
	feedQuery.limit = limit
	return feedQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingFeedQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingFeedQueryIsNotConstructed)
}

// ParcelID returns the parcel whose feed is requested.
func (q GetTrackingFeedQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Actor returns the requesting actor.
func (q GetTrackingFeedQuery) Actor() actor.Actor {
	return q.actor
}

// Limit returns the maximum number of samples to return.
func (q GetTrackingFeedQuery) Limit() int {
	return q.limit
}

// TrackingPointResponse represents one location sample in the feed.
type TrackingPointResponse struct {
	ID        kernel.UUID
	AgentID   kernel.UUID
	Lat       float64
	Lng       float64
	Speed     *float64
	Heading   *float64
	CreatedAt time.Time
}

// GetTrackingFeedQueryResponse carries the feed: the latest sample (nil when
// the parcel has no samples yet) plus the recent samples, newest first.
type GetTrackingFeedQueryResponse struct {
	Latest *TrackingPointResponse
	Points []TrackingPointResponse
}
