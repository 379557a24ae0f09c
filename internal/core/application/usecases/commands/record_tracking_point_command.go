package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrRecordTrackingPointCommandIsNotConstructed = errors.New(
	"RecordTrackingPointCommand must be created via NewRecordTrackingPointCommand constructor",
)

// RecordTrackingPointCommand represents an agent reporting a location sample
// for a parcel in transit. Only the agent currently assigned to the parcel may
// record points; the handler verifies assignment against the live aggregate.
type RecordTrackingPointCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	agentID  kernel.UUID
	position kernel.GeoPoint
	speed    *float64
	heading  *float64

	guard guard.ConstructorGuard
}

// NewRecordTrackingPointCommand creates a tracking ingestion command.
// Coordinates are validated by the GeoPoint value object; speed and heading
// are optional and validated by the tracking point constructor.
func NewRecordTrackingPointCommand(
	parcelID kernel.UUID,
	agentID kernel.UUID,
	position kernel.GeoPoint,
	speed, heading *float64,
) (RecordTrackingPointCommand, error) {
	trackingCommand := RecordTrackingPointCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCommand.setParcelID(parcelID),
		trackingCommand.setAgentID(agentID),
		trackingCommand.setPosition(position),
	); err != nil {
		return RecordTrackingPointCommand{}, err
	}

	trackingCommand.speed = speed
	trackingCommand.heading = heading
	return trackingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordTrackingPointCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingPointCommandIsNotConstructed)
}

// ParcelID returns the parcel the sample belongs to.
func (c RecordTrackingPointCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// AgentID returns the reporting agent.
func (c RecordTrackingPointCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Position returns the reported coordinates.
func (c RecordTrackingPointCommand) Position() kernel.GeoPoint {
	return c.position
}

// Speed returns the reported speed, or nil when not reported.
func (c RecordTrackingPointCommand) Speed() *float64 {
	return c.speed
}

// Heading returns the reported heading, or nil when not reported.
func (c RecordTrackingPointCommand) Heading() *float64 {
	return c.heading
}

func (c *RecordTrackingPointCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RecordTrackingPointCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *RecordTrackingPointCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}
