package services_test

import (
	"testing"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParcel(t *testing.T, customerID kernel.UUID) *parcel.Parcel {
	t.Helper()

	code, err := parcel.NewTrackingCode()
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), code, customerID, parcel.BookingDetails{
		PickupAddress:   "12 Gulshan Ave, Dhaka",
		DeliveryAddress: "7 Station Rd, Chattogram",
		ParcelType:      "PACKAGE",
		ParcelSize:      "MEDIUM",
		Weight:          2.5,
		PaymentType:     parcel.PaymentCOD,
		CODAmount:       500,
	}, time.Now().UTC())
	require.NoError(t, err)

	return p
}

func TestAccessPolicy_EnsureParcelAccess(t *testing.T) {
	policy := services.NewAccessPolicy()
	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	t.Run("admin may access any parcel", func(t *testing.T) {
		p := newTestParcel(t, customerID)
		admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}

		assert.NoError(t, policy.EnsureParcelAccess(p, admin))
	})

	t.Run("customer may access own parcel", func(t *testing.T) {
		p := newTestParcel(t, customerID)
		owner := actor.Actor{ID: customerID, Role: actor.RoleCustomer, IsActive: true}

		assert.NoError(t, policy.EnsureParcelAccess(p, owner))
	})

	t.Run("customer may not access another customer's parcel", func(t *testing.T) {
		p := newTestParcel(t, customerID)
		stranger := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleCustomer, IsActive: true}

		err := policy.EnsureParcelAccess(p, stranger)

		assert.ErrorIs(t, err, errs.ErrAccessForbidden)
	})

	t.Run("assigned agent may access the parcel", func(t *testing.T) {
		p := newTestParcel(t, customerID)
		require.NoError(t, p.AssignAgent(agentID, time.Now().UTC()))
		agent := actor.Actor{ID: agentID, Role: actor.RoleAgent, IsActive: true}

		assert.NoError(t, policy.EnsureParcelAccess(p, agent))
	})

	t.Run("unassigned agent is rejected", func(t *testing.T) {
		p := newTestParcel(t, customerID)
		agent := actor.Actor{ID: agentID, Role: actor.RoleAgent, IsActive: true}

		err := policy.EnsureParcelAccess(p, agent)

		assert.ErrorIs(t, err, errs.ErrAccessForbidden)
	})

	t.Run("agent assigned to a different parcel is rejected", func(t *testing.T) {
		p := newTestParcel(t, customerID)
		require.NoError(t, p.AssignAgent(kernel.NewUUID(), time.Now().UTC()))
		agent := actor.Actor{ID: agentID, Role: actor.RoleAgent, IsActive: true}

		err := policy.EnsureParcelAccess(p, agent)

		assert.ErrorIs(t, err, errs.ErrAccessForbidden)
	})

	t.Run("invalid parcel fails validation before scoping", func(t *testing.T) {
		var p parcel.Parcel
		admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}

		assert.Error(t, policy.EnsureParcelAccess(&p, admin))
	})
}

func TestAccessPolicy_EnsureScope(t *testing.T) {
	policy := services.NewAccessPolicy()
	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	t.Run("scoping works on raw ownership fields", func(t *testing.T) {
		owner := actor.Actor{ID: customerID, Role: actor.RoleCustomer, IsActive: true}
		agent := actor.Actor{ID: agentID, Role: actor.RoleAgent, IsActive: true}

		assert.NoError(t, policy.EnsureScope(customerID, &agentID, owner))
		assert.NoError(t, policy.EnsureScope(customerID, &agentID, agent))
		assert.ErrorIs(t, policy.EnsureScope(customerID, nil, agent), errs.ErrAccessForbidden)
	})

	t.Run("invalid actor is rejected", func(t *testing.T) {
		var a actor.Actor

		assert.Error(t, policy.EnsureScope(customerID, nil, a))
	})

	t.Run("unknown role is invalid", func(t *testing.T) {
		a := actor.Actor{ID: kernel.NewUUID(), Role: actor.Role("ROBOT"), IsActive: true}

		err := policy.EnsureScope(customerID, nil, a)

		assert.Error(t, err)
	})
}
