package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// TrackingPointPayload is the raw sample fanned out to the parcel topic.
type TrackingPointPayload struct {
	ParcelID  string    `json:"parcelId"`
	AgentID   string    `json:"agentId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordTrackingPointCommandHandler ingests agent location samples.
// The sample never touches the status machine: it is appended to the tracking
// feed and fanned out raw to the parcel topic only.
type RecordTrackingPointCommandHandler struct {
	uowFactory TrackingUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRecordTrackingPointCommandHandler creates a handler for tracking ingestion.
func NewRecordTrackingPointCommandHandler(
	uowFactory TrackingUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RecordTrackingPointCommandHandler {
	return RecordTrackingPointCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the tracking ingestion command.
// Fails with an AccessForbiddenError unless the parcel exists and the
// reporting agent is its currently assigned agent; a missing parcel is
// reported as forbidden, not as not-found.
func (h RecordTrackingPointCommandHandler) Handle(
	ctx context.Context,
	cmd RecordTrackingPointCommand,
) (*tracking.Point, error) {
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

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		// A missing parcel is indistinguishable from an unassigned one for the
		// reporting agent.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewAccessForbiddenError("parcel not assigned to this agent")
		}
		return nil, err
	}

	if !aggregate.IsAssignedTo(cmd.AgentID()) {
		return nil, errs.NewAccessForbiddenError("parcel not assigned to this agent")
	}

	point, err := tracking.NewPoint(
		kernel.NewUUID(),
		aggregate.ID(),
		cmd.AgentID(),
		cmd.Position(),
		cmd.Speed(),
		cmd.Heading(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingRepository().Add(ctx, point); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	payload := TrackingPointPayload{
		ParcelID:  point.ParcelID().String(),
		AgentID:   point.AgentID().String(),
		Lat:       point.Position().Lat(),
		Lng:       point.Position().Lng(),
		Speed:     point.Speed(),
		Heading:   point.Heading(),
		CreatedAt: point.CreatedAt(),
	}
	topic := ports.ParcelTopic(point.ParcelID())
	if err = h.publisher.Publish(ctx, topic, ports.EventParcelTracking, payload); err != nil {
		h.logger.WarnContext(ctx, "tracking fan-out failed", "topic", topic, "error", err)
	}

	return point, nil
}
