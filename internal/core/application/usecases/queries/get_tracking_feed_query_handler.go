package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcelflow/internal/core/domain/model/kernel"
)

// GetTrackingFeedQueryHandler reads the recent location samples of a parcel.
type GetTrackingFeedQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingFeedQueryHandler creates a handler for tracking feed queries.
func NewGetTrackingFeedQueryHandler(db *gorm.DB) GetTrackingFeedQueryHandler {
	return GetTrackingFeedQueryHandler{db: db}
}

// Handle executes the feed query, newest sample first.
func (h GetTrackingFeedQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingFeedQuery,
) (GetTrackingFeedQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingFeedQueryResponse{}, err
	}

	scope, err := loadParcelScope(ctx, h.db, query.ParcelID())
	if err != nil {
		return GetTrackingFeedQueryResponse{}, err
	}
	if err = ensureScopedAccess(scope, query.Actor()); err != nil {
		return GetTrackingFeedQueryResponse{}, err
	}

	points, err := h.fetchPoints(ctx, query.ParcelID(), query.Limit())
	if err != nil {
		return GetTrackingFeedQueryResponse{}, err
	}

	response := GetTrackingFeedQueryResponse{Points: points}
	if len(points) > 0 {
		response.Latest = &points[0]
	}
	return response, nil
}

func (h GetTrackingFeedQueryHandler) fetchPoints(
	ctx context.Context,
	parcelID kernel.UUID,
	limit int,
) ([]TrackingPointResponse, error) {
	points := make([]TrackingPointResponse, 0, limit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			agent_id,
			lat,
			lng,
			speed,
			heading,
			created_at
		FROM tracking_points
		WHERE parcel_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, parcelID.String(), limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point TrackingPointResponse
		var id, agentID uuid.UUID
		var speed, heading sql.NullFloat64
		var createdAt time.Time

		if err = rows.Scan(&id, &agentID, &point.Lat, &point.Lng, &speed, &heading, &createdAt); err != nil {
			return nil, err
		}

		if point.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if point.AgentID, err = kernel.UUIDFromBytes(agentID[:]); err != nil {
			return nil, err
		}
		if speed.Valid {
			point.Speed = &speed.Float64
		}
		if heading.Valid {
			point.Heading = &heading.Float64
		}
		point.CreatedAt = createdAt
		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
