package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
)

// ListCustomerParcelsQueryHandler reads one page of a customer's parcels.
type ListCustomerParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListCustomerParcelsQueryHandler creates a handler for customer parcel listings.
func NewListCustomerParcelsQueryHandler(db *gorm.DB) ListCustomerParcelsQueryHandler {
	return ListCustomerParcelsQueryHandler{db: db}
}

// Handle executes the listing query, newest booking first.
// Soft-deleted parcels are excluded from both the page and the total.
func (h ListCustomerParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerParcelsQuery,
) (ListCustomerParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListCustomerParcelsQueryResponse{}, err
	}

	where := "customer_id = ? AND deleted_at IS NULL"
	args := []any{query.CustomerID().String()}
	if query.StatusFilter() != parcel.StatusUnknown {
		where += " AND status = ?"
		args = append(args, query.StatusFilter().String())
	}
	if query.DateFrom() != nil {
		where += " AND created_at >= ?"
		args = append(args, *query.DateFrom())
	}
	if query.DateTo() != nil {
		where += " AND created_at <= ?"
		args = append(args, *query.DateTo())
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM parcels WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return ListCustomerParcelsQueryResponse{}, err
	}

	items := make([]ParcelSummaryResponse, 0, query.PageSize())

	rows, err := h.db.WithContext(ctx).Raw(`
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
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, query.PageSize(), query.Offset())...).Rows()
	if err != nil {
		return ListCustomerParcelsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item ParcelSummaryResponse
		var id uuid.UUID
		var trackingCode, status, paymentType string
		var scheduledPickupAt, deliveredAt sql.NullTime

		err = rows.Scan(
			&id,
			&trackingCode,
			&status,
			&item.PickupAddress,
			&item.DeliveryAddress,
			&item.ParcelType,
			&item.ParcelSize,
			&item.Weight,
			&paymentType,
			&item.CODAmount,
			&scheduledPickupAt,
			&deliveredAt,
			&item.FailureReason,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return ListCustomerParcelsQueryResponse{}, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListCustomerParcelsQueryResponse{}, err
		}
		item.TrackingCode = parcel.TrackingCode(trackingCode)
		item.Status = parcel.Status(status)
		item.PaymentType = parcel.PaymentType(paymentType)
		if scheduledPickupAt.Valid {
			t := scheduledPickupAt.Time
			item.ScheduledPickupAt = &t
		}
		if deliveredAt.Valid {
			t := deliveredAt.Time
			item.DeliveredAt = &t
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return ListCustomerParcelsQueryResponse{}, err
	}

	return ListCustomerParcelsQueryResponse{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}
