package parcel

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
)

// StatusHistoryRecord is an immutable, append-only record of a single status
// transition. Records are never mutated after insertion and are read
// newest-first.
type StatusHistoryRecord struct {
	id              kernel.UUID
	parcelID        kernel.UUID
	status          Status
	note            string
	changedByUserID kernel.UUID
	createdAt       time.Time

	isConstructed bool
}

// ErrStatusHistoryRecordIsNotConstructed is returned when a record was not
// created through its factory method.
var ErrStatusHistoryRecordIsNotConstructed = errors.New(
	"StatusHistoryRecord must be created via NewStatusHistoryRecord or RestoreStatusHistoryRecord")

// NewStatusHistoryRecord creates a history record for a transition that just
// happened.
func NewStatusHistoryRecord(
	id kernel.UUID,
	parcelID kernel.UUID,
	status Status,
	note string,
	changedByUserID kernel.UUID,
	now time.Time,
) (*StatusHistoryRecord, error) {
	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		status.Validate(),
		changedByUserID.Validate(),
	); err != nil {
		return nil, err
	}

	return &StatusHistoryRecord{
		id:              id,
		parcelID:        parcelID,
		status:          status,
		note:            note,
		changedByUserID: changedByUserID,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreStatusHistoryRecord reconstructs a record from persistence.
func RestoreStatusHistoryRecord(
	id kernel.UUID,
	parcelID kernel.UUID,
	status Status,
	note string,
	changedByUserID kernel.UUID,
	createdAt time.Time,
) (*StatusHistoryRecord, error) {
	return NewStatusHistoryRecord(id, parcelID, status, note, changedByUserID, createdAt)
}

// Validate ensures the record was created through a factory method.
func (r *StatusHistoryRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStatusHistoryRecordIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (r *StatusHistoryRecord) ID() kernel.UUID {
	return r.id
}

// ParcelID returns the parcel this record belongs to.
func (r *StatusHistoryRecord) ParcelID() kernel.UUID {
	return r.parcelID
}

// Status returns the status the parcel moved to.
func (r *StatusHistoryRecord) Status() Status {
	return r.status
}

// Note returns the free-text note recorded with the transition, if any.
func (r *StatusHistoryRecord) Note() string {
	return r.note
}

// ChangedByUserID returns the actor that performed the transition.
func (r *StatusHistoryRecord) ChangedByUserID() kernel.UUID {
	return r.changedByUserID
}

// CreatedAt returns the time the transition was recorded.
func (r *StatusHistoryRecord) CreatedAt() time.Time {
	return r.createdAt
}
