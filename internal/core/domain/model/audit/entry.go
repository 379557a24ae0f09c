// Package audit provides the append-only audit trail entity produced for
// privileged (administrative) mutations.
package audit

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// Actions recorded by the engine.
const (
	ActionParcelAssigned      = "PARCEL_ASSIGNED"
	ActionParcelStatusUpdated = "PARCEL_STATUS_UPDATED"
	ActionParcelDeleted       = "PARCEL_DELETED"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// its factory method.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry records one privileged action. Entries are immutable once written.
type Entry struct {
	id        kernel.UUID
	actorID   kernel.UUID
	action    string
	details   map[string]any
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit entry for a privileged action.
func NewEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	action string,
	details map[string]any,
	now time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), actorID.Validate()); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValueIsRequiredError("action")
	}
	if details == nil {
		details = map[string]any{}
	}

	return &Entry{
		id:            id,
		actorID:       actorID,
		action:        action,
		details:       details,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an audit entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	action string,
	details map[string]any,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(id, actorID, action, details, createdAt)
}

// Validate ensures the entry was created through a factory method.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// ActorID returns the administrator that performed the action.
func (e *Entry) ActorID() kernel.UUID { return e.actorID }

// Action returns the recorded action name.
func (e *Entry) Action() string { return e.action }

// Details returns the structured action payload.
func (e *Entry) Details() map[string]any { return e.details }

// CreatedAt returns the time the action was recorded.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
