package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/guard"
)

var ErrChangeParcelStatusCommandIsNotConstructed = errors.New(
	"ChangeParcelStatusCommand must be created via NewChangeParcelStatusCommand constructor",
)

// ChangeParcelStatusCommand represents a request to move a parcel to the next
// lifecycle status. Whether the move is allowed for this actor and from the
// parcel's current status is decided by the handler against the live aggregate.
type ChangeParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	nextStatus parcel.Status
	note       string
	actor      actor.Actor

	guard guard.ConstructorGuard
}

// NewChangeParcelStatusCommand creates a status transition command.
// Validates the parcel identifier, the requested status value, and the actor.
func NewChangeParcelStatusCommand(
	parcelID kernel.UUID,
	nextStatus parcel.Status,
	note string,
	requestedBy actor.Actor,
) (ChangeParcelStatusCommand, error) {
	statusCommand := ChangeParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setParcelID(parcelID),
		statusCommand.setNextStatus(nextStatus),
		statusCommand.setActor(requestedBy),
	); err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	statusCommand.note = note
	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the parcel to transition.
func (c ChangeParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NextStatus returns the requested target status.
func (c ChangeParcelStatusCommand) NextStatus() parcel.Status {
	return c.nextStatus
}

// Note returns the optional free-text note attached to the transition.
func (c ChangeParcelStatusCommand) Note() string {
	return c.note
}

// Actor returns the authenticated actor requesting the transition.
func (c ChangeParcelStatusCommand) Actor() actor.Actor {
	return c.actor
}

func (c *ChangeParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ChangeParcelStatusCommand) setNextStatus(next parcel.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.nextStatus = next
	return nil
}

func (c *ChangeParcelStatusCommand) setActor(requestedBy actor.Actor) error {
	if err := errors.Join(requestedBy.ID.Validate(), requestedBy.Role.Validate()); err != nil {
		return err
	}

	c.actor = requestedBy
	return nil
}
