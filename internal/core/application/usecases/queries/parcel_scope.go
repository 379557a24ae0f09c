// Package queries contains read operations over the engine's stored state.
// Handlers issue direct SQL through gorm for read performance in the CQRS
// pattern; they never load full aggregates. Reads are access-scoped with the
// same policy the write side applies.
package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/pkg/errs"
)

// parcelScope is the ownership slice of one parcel row, enough to apply the
// access policy without restoring the aggregate.
type parcelScope struct {
	ParcelID        kernel.UUID
	CustomerID      kernel.UUID
	AssignedAgentID *kernel.UUID
}

// loadParcelScope fetches the ownership fields of a live parcel.
// Soft-deleted parcels behave as absent.
func loadParcelScope(ctx context.Context, db *gorm.DB, parcelID kernel.UUID) (parcelScope, error) {
	row := db.WithContext(ctx).Raw(`
		SELECT customer_id, assigned_agent_id
		FROM parcels
		WHERE id = ? AND deleted_at IS NULL
	`, parcelID.String()).Row()

	var customerID uuid.UUID
	var agentID sql.Null[uuid.UUID]
	if err := row.Scan(&customerID, &agentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return parcelScope{}, errs.NewObjectNotFoundError("parcelID", parcelID.String())
		}
		return parcelScope{}, err
	}

	scope := parcelScope{ParcelID: parcelID}
	var err error
	if scope.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return parcelScope{}, err
	}
	if agentID.Valid {
		assigned, idErr := kernel.UUIDFromBytes(agentID.V[:])
		if idErr != nil {
			return parcelScope{}, idErr
		}
		scope.AssignedAgentID = &assigned
	}
	return scope, nil
}

// ensureScopedAccess applies the uniform parcel access policy to a read.
func ensureScopedAccess(scope parcelScope, a actor.Actor) error {
	return services.NewAccessPolicy().EnsureScope(scope.CustomerID, scope.AssignedAgentID, a)
}
