// Package trackingrepo provides persistence for agent-reported location
// samples. The table is append-only from the engine's point of view; rows
// only ever leave through the retention job.
package trackingrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingPointDTO represents one stored location sample.
type TrackingPointDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID  uuid.UUID `gorm:"type:uuid;index"`
	AgentID   uuid.UUID `gorm:"type:uuid"`
	Lat       float64
	Lng       float64
	Speed     *float64
	Heading   *float64
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for location samples.
func (TrackingPointDTO) TableName() string {
	return "tracking_points"
}

// fromDomain converts a location sample to its database representation.
func fromDomain(point *tracking.Point) TrackingPointDTO {
	return TrackingPointDTO{
		ID:        point.ID().Bytes(),
		ParcelID:  point.ParcelID().Bytes(),
		AgentID:   point.AgentID().Bytes(),
		Lat:       point.Position().Lat(),
		Lng:       point.Position().Lng(),
		Speed:     point.Speed(),
		Heading:   point.Heading(),
		CreatedAt: point.CreatedAt(),
	}
}

