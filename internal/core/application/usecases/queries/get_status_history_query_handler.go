package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
)

// GetStatusHistoryQueryHandler reads a parcel's transition records.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the history query, newest record first.
// Fails with an ObjectNotFoundError when the parcel is missing or deleted and
// an AccessForbiddenError when the actor may not read this parcel.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]StatusHistoryEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, err := loadParcelScope(ctx, h.db, query.ParcelID())
	if err != nil {
		return nil, err
	}
	if err = ensureScopedAccess(scope, query.Actor()); err != nil {
		return nil, err
	}

	return h.fetchHistory(ctx, query.ParcelID())
}

// fetchHistory reads the transition records of one parcel, newest first,
// without the scope check. Callers apply their own access rule.
func (h GetStatusHistoryQueryHandler) fetchHistory(
	ctx context.Context,
	parcelID kernel.UUID,
) ([]StatusHistoryEntryResponse, error) {
	records := make([]StatusHistoryEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			note,
			changed_by_user_id,
			created_at
		FROM parcel_status_histories
		WHERE parcel_id = ?
		ORDER BY created_at DESC, id DESC
	`, parcelID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record StatusHistoryEntryResponse
		var id, changedBy uuid.UUID
		var status string
		var createdAt time.Time

		if err = rows.Scan(&id, &status, &record.Note, &changedBy, &createdAt); err != nil {
			return nil, err
		}

		if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if record.ChangedByUserID, err = kernel.UUIDFromBytes(changedBy[:]); err != nil {
			return nil, err
		}
		record.Status = parcel.Status(status)
		record.CreatedAt = createdAt
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
