package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"
)

// GetParcelByTrackingCodeQueryHandler serves the tracking view looked up by code.
type GetParcelByTrackingCodeQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelByTrackingCodeQueryHandler creates a handler for code-keyed tracking reads.
func NewGetParcelByTrackingCodeQueryHandler(db *gorm.DB) GetParcelByTrackingCodeQueryHandler {
	return GetParcelByTrackingCodeQueryHandler{db: db}
}

// Handle resolves the code to a live parcel, applies the parcel access policy
// for the requesting actor, and assembles summary, history, and the recent
// tracking samples. A deleted or unknown code fails with an
// ObjectNotFoundError; an out-of-scope actor fails with an
// AccessForbiddenError.
func (h GetParcelByTrackingCodeQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByTrackingCodeQuery,
) (GetParcelByTrackingCodeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelByTrackingCodeQueryResponse{}, err
	}

	summary, err := h.fetchSummary(ctx, query.TrackingCode())
	if err != nil {
		return GetParcelByTrackingCodeQueryResponse{}, err
	}

	scope, err := loadParcelScope(ctx, h.db, summary.ID)
	if err != nil {
		return GetParcelByTrackingCodeQueryResponse{}, err
	}
	if err = ensureScopedAccess(scope, query.Actor()); err != nil {
		return GetParcelByTrackingCodeQueryResponse{}, err
	}

	historyHandler := NewGetStatusHistoryQueryHandler(h.db)
	history, err := historyHandler.fetchHistory(ctx, summary.ID)
	if err != nil {
		return GetParcelByTrackingCodeQueryResponse{}, err
	}

	feedHandler := NewGetTrackingFeedQueryHandler(h.db)
	points, err := feedHandler.fetchPoints(ctx, summary.ID, trackingExportLimit)
	if err != nil {
		return GetParcelByTrackingCodeQueryResponse{}, err
	}

	feed := GetTrackingFeedQueryResponse{Points: points}
	if len(points) > 0 {
		feed.Latest = &points[0]
	}

	return GetParcelByTrackingCodeQueryResponse{
		Parcel:  summary,
		History: history,
		Feed:    feed,
	}, nil
}

func (h GetParcelByTrackingCodeQueryHandler) fetchSummary(
	ctx context.Context,
	code parcel.TrackingCode,
) (ParcelSummaryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			pickup_address,
			delivery_address,
			parcel_type,
			parcel_size,
			weight,
			payment_type,
			cod_amount,
			scheduled_pickup_at,
			delivered_at,
			failure_reason,
			created_at,
			updated_at
		FROM parcels
		WHERE tracking_code = ? AND deleted_at IS NULL
	`, code.String()).Row()

	var summary ParcelSummaryResponse
	var id uuid.UUID
	var trackingCode, status, paymentType string
	var scheduledPickupAt, deliveredAt sql.NullTime

	err := row.Scan(
		&id,
		&trackingCode,
		&status,
		&summary.PickupAddress,
		&summary.DeliveryAddress,
		&summary.ParcelType,
		&summary.ParcelSize,
		&summary.Weight,
		&paymentType,
		&summary.CODAmount,
		&scheduledPickupAt,
		&deliveredAt,
		&summary.FailureReason,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ParcelSummaryResponse{}, errs.NewObjectNotFoundError("trackingCode", code.String())
		}
		return ParcelSummaryResponse{}, err
	}

	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ParcelSummaryResponse{}, err
	}
	summary.TrackingCode = parcel.TrackingCode(trackingCode)
	summary.Status = parcel.Status(status)
	summary.PaymentType = parcel.PaymentType(paymentType)
	if scheduledPickupAt.Valid {
		t := scheduledPickupAt.Time
		summary.ScheduledPickupAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		summary.DeliveredAt = &t
	}
	return summary, nil
}
