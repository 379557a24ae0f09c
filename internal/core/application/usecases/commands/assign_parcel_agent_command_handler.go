package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
)

// AssignParcelAgentCommandHandler assigns a delivery agent to a parcel.
// Assignment goes through the state machine (the parcel must be in a status
// that allows moving to ASSIGNED), records history and an audit entry, and
// after commit fans out the change and notifies the assigned agent in-app.
type AssignParcelAgentCommandHandler struct {
	uowFactory ParcelMutationUoWFactory
	publisher  ports.EventPublisher
	notifier   ParcelNotifier
	logger     *slog.Logger
}

// NewAssignParcelAgentCommandHandler creates a handler for agent assignment.
func NewAssignParcelAgentCommandHandler(
	uowFactory ParcelMutationUoWFactory,
	publisher ports.EventPublisher,
	notifier ParcelNotifier,
	logger *slog.Logger,
) AssignParcelAgentCommandHandler {
	return AssignParcelAgentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the assignment command.
func (h AssignParcelAgentCommandHandler) Handle(
	ctx context.Context,
	cmd AssignParcelAgentCommand,
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

	now := time.Now().UTC()
	previousStatus := aggregate.Status()
	if err = aggregate.AssignAgent(cmd.AgentID(), now); err != nil {
		return nil, err
	}

	if err = parcelRepo.UpdateIfStatus(ctx, aggregate, previousStatus); err != nil {
		return nil, err
	}

	record, err := parcel.NewStatusHistoryRecord(
		kernel.NewUUID(), aggregate.ID(), aggregate.Status(), "", cmd.Admin().ID, now)
	if err != nil {
		return nil, err
	}
	if err = uow.StatusHistoryRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(kernel.NewUUID(), cmd.Admin().ID, audit.ActionParcelAssigned,
		map[string]any{
			"parcelId": aggregate.ID().String(),
			"agentId":  cmd.AgentID().String(),
		}, now)
	if err != nil {
		return nil, err
	}
	if err = uow.AuditLogRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanOut(ctx, aggregate)
	h.notifyAgentInApp(ctx, aggregate, cmd.AgentID())

	return aggregate, nil
}

func (h AssignParcelAgentCommandHandler) fanOut(ctx context.Context, aggregate *parcel.Parcel) {
	payload := StatusChangedPayload{
		ParcelID:     aggregate.ID().String(),
		Status:       aggregate.Status().String(),
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
			h.logger.WarnContext(ctx, "assignment fan-out failed", "topic", topic, "error", err)
		}
	}
}

func (h AssignParcelAgentCommandHandler) notifyAgentInApp(
	ctx context.Context,
	aggregate *parcel.Parcel,
	agentID kernel.UUID,
) {
	_, err := h.notifier.CreateUserNotification(ctx, agentID, actor.RoleAgent,
		"PARCEL_ASSIGNED",
		"Parcel assigned",
		"A new parcel has been assigned to you: "+aggregate.TrackingCode().String(),
		map[string]any{
			"parcelId":     aggregate.ID().String(),
			"trackingCode": aggregate.TrackingCode().String(),
		})
	if err != nil {
		h.logger.WarnContext(ctx, "in-app notification failed",
			"parcel_id", aggregate.ID().String(), "error", err)
	}
}
