// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate and its append-only status history, handling the conversion
// between domain entities and database representations.
package parcelrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. Indexed for lookup by tracking code, customer, agent
// assignment, and status.
type ParcelDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode      string    `gorm:"uniqueIndex"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index"`
	PickupAddress     string
	DeliveryAddress   string
	ParcelType        string
	ParcelSize        string
	Weight            float64
	PaymentType       string
	CODAmount         int64      `gorm:"column:cod_amount"`
	Status            string     `gorm:"index"`
	AssignedAgentID   *uuid.UUID `gorm:"type:uuid;index"`
	ScheduledPickupAt *time.Time
	DeliveredAt       *time.Time
	FailureReason     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time `gorm:"index"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusHistoryDTO represents one immutable status transition record.
type StatusHistoryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID        uuid.UUID `gorm:"type:uuid;index"`
	Status          string
	Note            string
	ChangedByUserID uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time `gorm:"index"`
}

// TableName specifies the database table name for history records.
func (StatusHistoryDTO) TableName() string {
	return "parcel_status_histories"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var agentID *uuid.UUID
	if id := aggregate.AssignedAgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return ParcelDTO{
		ID:                aggregate.ID().Bytes(),
		TrackingCode:      aggregate.TrackingCode().String(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		PickupAddress:     aggregate.PickupAddress(),
		DeliveryAddress:   aggregate.DeliveryAddress(),
		ParcelType:        aggregate.ParcelType(),
		ParcelSize:        aggregate.ParcelSize(),
		Weight:            aggregate.Weight(),
		PaymentType:       aggregate.PaymentType().String(),
		CODAmount:         aggregate.CODAmount(),
		Status:            aggregate.Status().String(),
		AssignedAgentID:   agentID,
		ScheduledPickupAt: aggregate.ScheduledPickupAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		FailureReason:     aggregate.FailureReason(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		DeletedAt:         aggregate.DeletedAt(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	code, err := parcel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AssignedAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AssignedAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	details := parcel.BookingDetails{
		PickupAddress:     dto.PickupAddress,
		DeliveryAddress:   dto.DeliveryAddress,
		ParcelType:        dto.ParcelType,
		ParcelSize:        dto.ParcelSize,
		Weight:            dto.Weight,
		PaymentType:       parcel.PaymentType(dto.PaymentType),
		CODAmount:         dto.CODAmount,
		ScheduledPickupAt: dto.ScheduledPickupAt,
	}

	return parcel.RestoreParcel(
		id, code, customerID, details,
		parcel.Status(dto.Status), agentID,
		dto.DeliveredAt, dto.FailureReason,
		dto.CreatedAt, dto.UpdatedAt, dto.DeletedAt,
	)
}

// historyFromDomain converts a status history record to its database representation.
func historyFromDomain(record *parcel.StatusHistoryRecord) StatusHistoryDTO {
	return StatusHistoryDTO{
		ID:              record.ID().Bytes(),
		ParcelID:        record.ParcelID().Bytes(),
		Status:          record.Status().String(),
		Note:            record.Note(),
		ChangedByUserID: record.ChangedByUserID().Bytes(),
		CreatedAt:       record.CreatedAt(),
	}
}
