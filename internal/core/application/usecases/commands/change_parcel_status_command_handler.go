package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// ChangeParcelStatusCommandHandler is the single writer of parcel status.
// It loads the aggregate, checks access for the requesting actor, validates
// the transition against the state machine, and persists with an optimistic
// status check so two concurrent transitions cannot both land.
//
// Side effects run only after the commit succeeds, in order: history is
// already committed with the parcel; then real-time fan-out, then customer
// notification. Each is best-effort and independent of the others.
type ChangeParcelStatusCommandHandler struct {
	uowFactory   ParcelMutationUoWFactory
	accessPolicy services.AccessPolicy
	publisher    ports.EventPublisher
	notifier     ParcelNotifier
	logger       *slog.Logger
}

// NewChangeParcelStatusCommandHandler creates a handler for status transitions.
func NewChangeParcelStatusCommandHandler(
	uowFactory ParcelMutationUoWFactory,
	publisher ports.EventPublisher,
	notifier ParcelNotifier,
	logger *slog.Logger,
) ChangeParcelStatusCommandHandler {
	return ChangeParcelStatusCommandHandler{
		uowFactory:   uowFactory,
		accessPolicy: services.NewAccessPolicy(),
		publisher:    publisher,
		notifier:     notifier,
		logger:       logger,
	}
}

// Handle processes the status transition command.
// Fails with an ObjectNotFoundError when the parcel is missing or deleted,
// an AccessForbiddenError when the actor may not touch this parcel, a
// StatusTransitionError when the requested pair is not allowed, and a
// StatusConflictError when a concurrent transition won the write.
func (h ChangeParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeParcelStatusCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = h.accessPolicy.EnsureParcelAccess(aggregate, cmd.Actor()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	previousStatus := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.NextStatus(), cmd.Note(), now); err != nil {
		return nil, err
	}

	if err = parcelRepo.UpdateIfStatus(ctx, aggregate, previousStatus); err != nil {
		return nil, err
	}

	record, err := parcel.NewStatusHistoryRecord(
		kernel.NewUUID(), aggregate.ID(), aggregate.Status(), cmd.Note(), cmd.Actor().ID, now)
	if err != nil {
		return nil, err
	}
	if err = uow.StatusHistoryRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if cmd.Actor().Role == actor.RoleAdmin {
		entry, auditErr := audit.NewEntry(kernel.NewUUID(), cmd.Actor().ID, audit.ActionParcelStatusUpdated,
			map[string]any{
				"parcelId": aggregate.ID().String(),
				"from":     previousStatus.String(),
				"to":       aggregate.Status().String(),
				"note":     cmd.Note(),
			}, now)
		if auditErr != nil {
			return nil, auditErr
		}
		if auditErr = uow.AuditLogRepository().Add(ctx, entry); auditErr != nil {
			return nil, auditErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanOut(ctx, aggregate, cmd.Note())

	h.notifier.NotifyParcelEvent(ctx, aggregate, notify.TemplateParcelStatusUpdated, notify.Context{
		Status: aggregate.Status(),
		Note:   cmd.Note(),
	})

	if cmd.Actor().Role == actor.RoleAgent {
		h.notifyCustomerInApp(ctx, aggregate)
	}

	return aggregate, nil
}

func (h ChangeParcelStatusCommandHandler) fanOut(ctx context.Context, aggregate *parcel.Parcel, note string) {
	payload := StatusChangedPayload{
		ParcelID:     aggregate.ID().String(),
		Status:       aggregate.Status().String(),
		Note:         note,
		TrackingCode: aggregate.TrackingCode().String(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}

	topics := []string{
		ports.ParcelTopic(aggregate.ID()),
		ports.CustomerTopic(aggregate.CustomerID()),
	}
	if agentID := aggregate.AssignedAgentID(); agentID != nil {
		topics = append(topics, ports.AgentTopic(*agentID))
	}

	for _, topic := range topics {
		if err := h.publisher.Publish(ctx, topic, ports.EventParcelStatus, payload); err != nil {
			h.logger.WarnContext(ctx, "status fan-out failed", "topic", topic, "error", err)
		}
	}
}

func (h ChangeParcelStatusCommandHandler) notifyCustomerInApp(ctx context.Context, aggregate *parcel.Parcel) {
	_, err := h.notifier.CreateUserNotification(ctx, aggregate.CustomerID(), actor.RoleCustomer,
		notify.TemplateParcelStatusUpdated,
		"Parcel update",
		fmt.Sprintf("Your parcel %s is now %s",
			aggregate.TrackingCode().String(),
			notify.StatusLabel(aggregate.Status(), notify.LangEN)),
		map[string]any{
			"parcelId":     aggregate.ID().String(),
			"status":       aggregate.Status().String(),
			"trackingCode": aggregate.TrackingCode().String(),
		})
	if err != nil {
		h.logger.WarnContext(ctx, "in-app notification failed",
			"parcel_id", aggregate.ID().String(), "error", err)
	}
}
