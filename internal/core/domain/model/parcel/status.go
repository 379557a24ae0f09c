package parcel

import (
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with defined transitions to ensure parcels
// follow the correct journey from booking to delivery, failure, or cancellation.
//
// State transitions:
//
//	BOOKED ──┬──> ASSIGNED ──> PICKED_UP ──> IN_TRANSIT ──> DELIVERED
//	         │        ^             │             │
//	         │        │             v             v
//	         │        └────────── FAILED <────────┘
//	         │                      │
//	         └──> CANCELLED <───────┘   (ASSIGNED may also cancel)
//
// DELIVERED and CANCELLED are terminal. Status is a value object that
// validates state transitions and is stored as its string representation.
type Status string

const (
	// StatusUnknown represents an invalid or undefined status.
	// The empty value helps catch uninitialized Status values.
	StatusUnknown Status = ""

	// StatusBooked is the initial status assigned at booking time.
	StatusBooked Status = "BOOKED"

	// StatusAssigned indicates a delivery agent has been assigned.
	StatusAssigned Status = "ASSIGNED"

	// StatusPickedUp indicates the agent collected the parcel.
	StatusPickedUp Status = "PICKED_UP"

	// StatusInTransit indicates the parcel is on its way to the delivery address.
	StatusInTransit Status = "IN_TRANSIT"

	// StatusDelivered indicates successful delivery. Terminal.
	StatusDelivered Status = "DELIVERED"

	// StatusFailed indicates a failed pickup or delivery attempt.
	// Failed parcels can be re-assigned or cancelled.
	StatusFailed Status = "FAILED"

	// StatusCancelled indicates the booking was cancelled. Terminal.
	StatusCancelled Status = "CANCELLED"
)

// transitionTable is the explicit state machine: for each status, the set of
// statuses it may move to. Terminal statuses map to an empty set.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusBooked:    {StatusAssigned, StatusCancelled},
		StatusAssigned:  {StatusPickedUp, StatusCancelled},
		StatusPickedUp:  {StatusInTransit, StatusFailed},
		StatusInTransit: {StatusDelivered, StatusFailed},
		StatusDelivered: {},
		StatusFailed:    {StatusAssigned, StatusCancelled},
		StatusCancelled: {},
	}
}

// Validate checks if the Status value is one of the defined parcel statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the stored representation of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if s == StatusUnknown {
		return "UNKNOWN"
	}
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed from the status.
// DELIVERED and CANCELLED are the only terminal statuses.
func (s Status) IsTerminal() bool {
	next, ok := transitionTable()[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to next. It is a pure lookup with no side effects, usable
// for pre-validation independent of persistence.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a state transition.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (StatusUnknown, *StatusTransitionError) naming both statuses otherwise
//
// This method is used by Parcel.TransitionTo to enforce the lifecycle rules.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(next) {
		return StatusUnknown, NewStatusTransitionError(s, next)
	}
	return next, nil
}

// StatusTransitionError is returned when a requested status change is not in
// the current status's allowed transition set. The message names both the
// current and the requested status.
type StatusTransitionError struct {
	From Status
	To   Status
}

// NewStatusTransitionError creates a StatusTransitionError for the given pair.
func NewStatusTransitionError(from, to Status) *StatusTransitionError {
	return &StatusTransitionError{From: from, To: to}
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status change from %s to %s", e.From, e.To)
}

// Unwrap classifies the error as a BadRequest-family validation failure.
func (e *StatusTransitionError) Unwrap() error {
	return errs.ErrValueIsInvalid
}
