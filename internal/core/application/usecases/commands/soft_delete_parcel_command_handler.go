package commands

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
)

// SoftDeleteParcelCommandHandler marks a parcel deleted and records the audit
// entry in the same transaction. Subsequent reads treat the parcel as absent.
type SoftDeleteParcelCommandHandler struct {
	uowFactory ParcelMutationUoWFactory
}

// NewSoftDeleteParcelCommandHandler creates a handler for parcel deletion.
func NewSoftDeleteParcelCommandHandler(uowFactory ParcelMutationUoWFactory) SoftDeleteParcelCommandHandler {
	return SoftDeleteParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command.
// Fails with an ObjectNotFoundError when the parcel is missing or already deleted.
func (h SoftDeleteParcelCommandHandler) Handle(ctx context.Context, cmd SoftDeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.MarkDeleted(now); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := audit.NewEntry(kernel.NewUUID(), cmd.Admin().ID, audit.ActionParcelDeleted,
		map[string]any{
			"parcelId":     aggregate.ID().String(),
			"trackingCode": aggregate.TrackingCode().String(),
		}, now)
	if err != nil {
		return err
	}
	if err = uow.AuditLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
