package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
)

// CreateBookingCommandHandler handles the business logic for parcel booking.
// Issues a fresh tracking code, creates the parcel in BOOKED status together
// with its first history record, and after commit publishes the booking to the
// real-time topics and dispatches the booking notification to the customer.
type CreateBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	publisher  ports.EventPublisher
	notifier   ParcelNotifier
	logger     *slog.Logger
}

// NewCreateBookingCommandHandler creates a handler for booking operations.
func NewCreateBookingCommandHandler(
	uowFactory BookingUoWFactory,
	publisher ports.EventPublisher,
	notifier ParcelNotifier,
	logger *slog.Logger,
) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the booking command.
// The parcel write and the initial BOOKED history record commit atomically;
// fan-out and customer notification run only after the commit succeeds and
// their failure never fails the booking.
func (h CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	trackingCode, err := parcel.NewTrackingCode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booked, err := parcel.NewParcel(cmd.ParcelID(), trackingCode, cmd.CustomerID(), cmd.Details(), now)
	if err != nil {
		return nil, err
	}

	record, err := parcel.NewStatusHistoryRecord(
		kernel.NewUUID(), booked.ID(), parcel.StatusBooked, "Booking created", cmd.CustomerID(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, booked); err != nil {
		return nil, err
	}

	if err = uow.StatusHistoryRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.fanOut(ctx, booked)
	h.notifier.NotifyParcelEvent(ctx, booked, notify.TemplateParcelBooked, notify.Context{
		ScheduledPickupAt: booked.ScheduledPickupAt(),
	})

	return booked, nil
}

func (h CreateBookingCommandHandler) fanOut(ctx context.Context, booked *parcel.Parcel) {
	payload := StatusChangedPayload{
		ParcelID:     booked.ID().String(),
		Status:       booked.Status().String(),
		TrackingCode: booked.TrackingCode().String(),
		UpdatedAt:    booked.UpdatedAt(),
	}

	for _, topic := range []string{
		ports.ParcelTopic(booked.ID()),
		ports.CustomerTopic(booked.CustomerID()),
	} {
		if err := h.publisher.Publish(ctx, topic, ports.EventParcelStatus, payload); err != nil {
			h.logger.WarnContext(ctx, "booking fan-out failed", "topic", topic, "error", err)
		}
	}
}
