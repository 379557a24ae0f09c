package parcelrepo

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormParcelRepository implements ParcelRepository using GORM.
// Soft-deleted parcels are invisible to every read.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database unconditionally.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcelID", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus saves the parcel only if its stored status still equals
// expected. A zero row count means another transition won the race; the
// caller gets a StatusConflictError and the stored row is untouched.
func (r *GormParcelRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *parcel.Parcel,
	expected parcel.Status,
) error {
	if err := errors.Join(aggregate.Validate(), expected.Validate()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND status = ? AND deleted_at IS NULL", dto.ID, expected.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStatusConflictError(aggregate.ID().String(), expected.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a live parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND deleted_at IS NULL", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcelID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a live parcel by its shareable tracking code.
func (r *GormParcelRepository) GetByTrackingCode(
	ctx context.Context,
	code parcel.TrackingCode,
) (*parcel.Parcel, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tracking_code = ? AND deleted_at IS NULL", code.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
// The table is append-only; records are never updated or deleted.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GORM status history repository.
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Add appends a transition record.
func (r *GormStatusHistoryRepository) Add(ctx context.Context, record *parcel.StatusHistoryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
