package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrSoftDeleteParcelCommandIsNotConstructed = errors.New(
	"SoftDeleteParcelCommand must be created via NewSoftDeleteParcelCommand constructor",
)

// SoftDeleteParcelCommand represents an administrator removing a parcel from
// view. The record is never hard-deleted while history and tracking exist;
// it is marked deleted and excluded from all reads.
type SoftDeleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	admin    actor.Actor

	guard guard.ConstructorGuard
}

// NewSoftDeleteParcelCommand creates a parcel deletion command.
// Only administrators may delete parcels.
func NewSoftDeleteParcelCommand(parcelID kernel.UUID, admin actor.Actor) (SoftDeleteParcelCommand, error) {
	deleteCommand := SoftDeleteParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deleteCommand.setParcelID(parcelID),
		deleteCommand.setAdmin(admin),
	); err != nil {
		return SoftDeleteParcelCommand{}, err
	}

	return deleteCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SoftDeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to delete.
func (c SoftDeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Admin returns the administrator performing the deletion.
func (c SoftDeleteParcelCommand) Admin() actor.Actor {
	return c.admin
}

func (c *SoftDeleteParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *SoftDeleteParcelCommand) setAdmin(admin actor.Actor) error {
	if err := errors.Join(admin.ID.Validate(), admin.Role.Validate()); err != nil {
		return err
	}
	if admin.Role != actor.RoleAdmin {
		return errs.NewAccessForbiddenError("parcel deletion requires an administrator")
	}

	c.admin = admin
	return nil
}
