package commands_test

import (
	"testing"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSoftDeleteParcelCommand_NonAdminIsRejected(t *testing.T) {
	customer := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleCustomer, IsActive: true}
	_, err := commands.NewSoftDeleteParcelCommand(kernel.NewUUID(), customer)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAccessForbidden)
}

func TestSoftDeleteParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}
	stored := restoredParcel(t, kernel.NewUUID(), parcel.StatusCancelled, nil)

	cmd, err := commands.NewSoftDeleteParcelCommand(stored.ID(), admin)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("AuditLogRepository").Return(auditRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.IsDeleted()
	})).Return(nil).Once()
	auditRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionParcelDeleted && e.ActorID().IsEqual(admin.ID)
	})).Return(nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSoftDeleteParcelCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	parcelRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSoftDeleteParcelCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}
	parcelID := kernel.NewUUID()

	cmd, err := commands.NewSoftDeleteParcelCommand(parcelID, admin)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("Get", mock.Anything, parcelID).
		Return(nil, errs.NewObjectNotFoundError("parcelID", parcelID.String())).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSoftDeleteParcelCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
