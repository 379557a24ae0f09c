package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrAssignParcelAgentCommandIsNotConstructed = errors.New(
	"AssignParcelAgentCommand must be created via NewAssignParcelAgentCommand constructor",
)

// AssignParcelAgentCommand represents an administrator assigning a delivery
// agent to a parcel. Assignment is a privileged mutation and is audited.
type AssignParcelAgentCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	agentID  kernel.UUID
	admin    actor.Actor

	guard guard.ConstructorGuard
}

// NewAssignParcelAgentCommand creates an agent assignment command.
// Only administrators may assign agents.
func NewAssignParcelAgentCommand(
	parcelID kernel.UUID,
	agentID kernel.UUID,
	admin actor.Actor,
) (AssignParcelAgentCommand, error) {
	assignCommand := AssignParcelAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setParcelID(parcelID),
		assignCommand.setAgentID(agentID),
		assignCommand.setAdmin(admin),
	); err != nil {
		return AssignParcelAgentCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignParcelAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelAgentCommandIsNotConstructed)
}

// ParcelID returns the parcel to assign.
func (c AssignParcelAgentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AgentID returns the delivery agent to assign.
func (c AssignParcelAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Admin returns the administrator performing the assignment.
func (c AssignParcelAgentCommand) Admin() actor.Actor {
	return c.admin
}

func (c *AssignParcelAgentCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignParcelAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *AssignParcelAgentCommand) setAdmin(admin actor.Actor) error {
	if err := errors.Join(admin.ID.Validate(), admin.Role.Validate()); err != nil {
		return err
	}
	if admin.Role != actor.RoleAdmin {
		return errs.NewAccessForbiddenError("agent assignment requires an administrator")
	}

	c.admin = admin
	return nil
}
