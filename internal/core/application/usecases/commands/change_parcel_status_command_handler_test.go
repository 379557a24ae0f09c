package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredParcel(t *testing.T, customerID kernel.UUID, status parcel.Status, agentID *kernel.UUID) *parcel.Parcel {
	t.Helper()
	code, err := parcel.NewTrackingCode()
	require.NoError(t, err)
	now := time.Now().UTC()
	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), code, customerID,
		parcel.BookingDetails{
			PickupAddress:   "12 Gulshan Ave, Dhaka",
			DeliveryAddress: "7 Station Rd, Chattogram",
			ParcelType:      "PACKAGE",
			ParcelSize:      "MEDIUM",
			Weight:          2.5,
			PaymentType:     parcel.PaymentCOD,
			CODAmount:       500,
		},
		status, agentID, nil, "", now, now, nil)
	require.NoError(t, err)
	return p
}

func TestChangeParcelStatusCommandHandler_Handle_AgentSuccess(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	stored := restoredParcel(t, customerID, parcel.StatusAssigned, &agentID)
	agent := actor.Actor{ID: agentID, Role: actor.RoleAgent, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusPickedUp, "picked up at door", agent)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	historyRepo := new(MockStatusHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("StatusHistoryRepository").Return(historyRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	parcelRepo.On("UpdateIfStatus", mock.Anything, stored, parcel.StatusAssigned).Return(nil).Once()
	historyRepo.On("Add", mock.Anything, mock.MatchedBy(func(r *parcel.StatusHistoryRecord) bool {
		return r.Status() == parcel.StatusPickedUp &&
			r.Note() == "picked up at door" &&
			r.ChangedByUserID().IsEqual(agentID)
	})).Return(nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	for _, topic := range []string{
		ports.ParcelTopic(stored.ID()),
		ports.CustomerTopic(customerID),
		ports.AgentTopic(agentID),
	} {
		publisher.On("Publish", mock.Anything, topic, ports.EventParcelStatus,
			mock.MatchedBy(func(p commands.StatusChangedPayload) bool {
				return p.Status == "PICKED_UP" && p.Note == "picked up at door"
			})).Return(nil).Once()
	}

	notifier := new(MockParcelNotifier)
	notifier.On("NotifyParcelEvent", mock.Anything, stored,
		notify.TemplateParcelStatusUpdated, mock.AnythingOfType("notify.Context")).Once()
	notifier.On("CreateUserNotification", mock.Anything, customerID, actor.RoleCustomer,
		"PARCEL_STATUS_UPDATED", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()

	h := commands.NewChangeParcelStatusCommandHandler(factory, publisher, notifier, testLogger())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.StatusPickedUp, updated.Status())

	parcelRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChangeParcelStatusCommandHandler_Handle_AdminIsAudited(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	stored := restoredParcel(t, customerID, parcel.StatusBooked, nil)
	admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusCancelled, "duplicate booking", admin)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	historyRepo := new(MockStatusHistoryRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("StatusHistoryRepository").Return(historyRepo).Once()
	uow.On("AuditLogRepository").Return(auditRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	parcelRepo.On("UpdateIfStatus", mock.Anything, stored, parcel.StatusBooked).Return(nil).Once()
	historyRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	auditRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == audit.ActionParcelStatusUpdated &&
			e.ActorID().IsEqual(admin.ID) &&
			e.Details()["from"] == "BOOKED" &&
			e.Details()["to"] == "CANCELLED"
	})).Return(nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	notifier := new(MockParcelNotifier)
	notifier.On("NotifyParcelEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()

	h := commands.NewChangeParcelStatusCommandHandler(factory, publisher, notifier, testLogger())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.StatusCancelled, updated.Status())

	auditRepo.AssertExpectations(t)
	notifier.AssertNotCalled(t, "CreateUserNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeParcelStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}
	parcelID := kernel.NewUUID()

	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, parcel.StatusCancelled, "", admin)
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

	h := commands.NewChangeParcelStatusCommandHandler(
		factory, new(MockEventPublisher), new(MockParcelNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeParcelStatusCommandHandler_Handle_UnassignedAgentIsForbidden(t *testing.T) {
	ctx := t.Context()
	assignedAgent := kernel.NewUUID()
	stored := restoredParcel(t, kernel.NewUUID(), parcel.StatusAssigned, &assignedAgent)
	otherAgent := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAgent, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusPickedUp, "", otherAgent)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewChangeParcelStatusCommandHandler(
		factory, publisher, new(MockParcelNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAccessForbidden)

	parcelRepo.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeParcelStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	stored := restoredParcel(t, kernel.NewUUID(), parcel.StatusAssigned, &agentID)
	agent := actor.Actor{ID: agentID, Role: actor.RoleAgent, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusDelivered, "", agent)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeParcelStatusCommandHandler(
		factory, new(MockEventPublisher), new(MockParcelNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)

	var transitionErr *parcel.StatusTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, parcel.StatusAssigned, transitionErr.From)
	assert.Equal(t, parcel.StatusDelivered, transitionErr.To)
	parcelRepo.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeParcelStatusCommandHandler_Handle_ConcurrentWriteConflict(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	stored := restoredParcel(t, customerID, parcel.StatusBooked, nil)
	admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusCancelled, "", admin)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	parcelRepo.On("UpdateIfStatus", mock.Anything, stored, parcel.StatusBooked).
		Return(errs.NewStatusConflictError("parcel", "BOOKED")).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	notifier := new(MockParcelNotifier)

	h := commands.NewChangeParcelStatusCommandHandler(factory, publisher, notifier, testLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStatusConflict)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyParcelEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeParcelStatusCommandHandler_Handle_CustomerCancelsOwnBooking(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	stored := restoredParcel(t, customerID, parcel.StatusBooked, nil)
	customer := actor.Actor{ID: customerID, Role: actor.RoleCustomer, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusCancelled, "changed my mind", customer)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	historyRepo := new(MockStatusHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("StatusHistoryRepository").Return(historyRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	parcelRepo.On("UpdateIfStatus", mock.Anything, stored, parcel.StatusBooked).Return(nil).Once()
	historyRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	notifier := new(MockParcelNotifier)
	notifier.On("NotifyParcelEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once()

	h := commands.NewChangeParcelStatusCommandHandler(factory, publisher, notifier, testLogger())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.StatusCancelled, updated.Status())
}

func TestChangeParcelStatusCommandHandler_Handle_OtherCustomerIsForbidden(t *testing.T) {
	ctx := t.Context()
	stored := restoredParcel(t, kernel.NewUUID(), parcel.StatusBooked, nil)
	stranger := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleCustomer, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(stored.ID(), parcel.StatusCancelled, "", stranger)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	parcelRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockParcelMutationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeParcelStatusCommandHandler(
		factory, new(MockEventPublisher), new(MockParcelNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAccessForbidden)
}

// A begin failure must not leak a transaction or reach the repositories.
func TestChangeParcelStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	admin := actor.Actor{ID: kernel.NewUUID(), Role: actor.RoleAdmin, IsActive: true}

	cmd, err := commands.NewChangeParcelStatusCommand(kernel.NewUUID(), parcel.StatusCancelled, "", admin)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockParcelMutationUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewChangeParcelStatusCommandHandler(
		factory, new(MockEventPublisher), new(MockParcelNotifier), testLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
