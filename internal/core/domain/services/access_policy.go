package services

import (
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"
)

// AccessPolicy is a domain service that enforces role/ownership scoping on
// parcel reads and agent-initiated mutations.
//
// Business rules:
//   - ADMIN actors are unrestricted
//   - CUSTOMER actors may only access their own parcels
//   - AGENT actors may only access parcels currently assigned to them
//
// The same policy is applied uniformly to detail reads, history reads,
// tracking-feed reads, and agent-initiated status transitions.
//
// Example usage:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.EnsureParcelAccess(p, user); err != nil {
//	    // errors.Is(err, errs.ErrAccessForbidden)
//	    return err
//	}
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// EnsureParcelAccess checks whether the actor may access the parcel.
//
// Returns:
//   - nil when access is allowed
//   - *errs.AccessForbiddenError on a role/ownership mismatch
//   - a validation error when the parcel or actor is invalid
func (policy AccessPolicy) EnsureParcelAccess(p *parcel.Parcel, a actor.Actor) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return policy.EnsureScope(p.CustomerID(), p.AssignedAgentID(), a)
}

// EnsureScope applies the same policy to a parcel's raw ownership fields.
// Used by read-side handlers that work from query rows instead of a fully
// restored aggregate.
func (AccessPolicy) EnsureScope(customerID kernel.UUID, assignedAgentID *kernel.UUID, a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	switch a.Role {
	case actor.RoleAdmin:
		return nil
	case actor.RoleCustomer:
		if !customerID.IsEqual(a.ID) {
			return errs.NewAccessForbiddenError("parcel not available for this user")
		}
		return nil
	case actor.RoleAgent:
		if assignedAgentID == nil || !assignedAgentID.IsEqual(a.ID) {
			return errs.NewAccessForbiddenError("parcel not assigned to this agent")
		}
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}
