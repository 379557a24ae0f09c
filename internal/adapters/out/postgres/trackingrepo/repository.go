package trackingrepo

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// Add appends one location sample.
func (r *GormTrackingRepository) Add(ctx context.Context, point *tracking.Point) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := fromDomain(point)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// DeleteOlderThan removes samples recorded before the cutoff and returns the
// number of removed rows.
func (r *GormTrackingRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&TrackingPointDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
