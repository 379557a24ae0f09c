// Package actor provides the authenticated-actor identity consumed from the
// external auth layer. The engine never issues or validates credentials; it
// only scopes access by the actor's role and identity.
package actor

import (
	"errors"
	"fmt"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// Role classifies an authenticated actor.
type Role string

const (
	// RoleAdmin has unrestricted access; administrative mutations are audited.
	RoleAdmin Role = "ADMIN"

	// RoleAgent is a delivery agent. Agents only see and mutate parcels
	// currently assigned to them.
	RoleAgent Role = "AGENT"

	// RoleCustomer is a booking customer. Customers only see their own parcels.
	RoleCustomer Role = "CUSTOMER"
)

// Validate checks if the Role is one of the defined roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleAgent, RoleCustomer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the stored representation of the role.
func (r Role) String() string {
	return string(r)
}

// Actor is an authenticated user acting on the engine.
type Actor struct {
	ID       kernel.UUID
	Role     Role
	IsActive bool
}

// Validate checks the actor's identity and role.
func (a Actor) Validate() error {
	return errors.Join(a.ID.Validate(), a.Role.Validate())
}
