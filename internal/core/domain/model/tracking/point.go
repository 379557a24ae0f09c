// Package tracking provides the append-only location sample entity produced
// by delivery agents while carrying a parcel. Points are owned by their
// recorder and never mutated after insertion.
package tracking

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// ErrPointIsNotConstructed is returned when a Point was not created through
// its factory methods.
var ErrPointIsNotConstructed = errors.New("Point must be created via NewPoint or RestorePoint")

const (
	headingMin = 0.0
	headingMax = 360.0
)

// Point is a single agent-reported location sample for a parcel.
// Speed (km/h) and heading (degrees) are optional; nil means unreported.
type Point struct {
	id       kernel.UUID
	parcelID kernel.UUID
	agentID  kernel.UUID
	position kernel.GeoPoint
	speed    *float64
	heading  *float64

	createdAt time.Time

	isConstructed bool
}

// NewPoint creates a location sample reported just now by the assigned agent.
func NewPoint(
	id kernel.UUID,
	parcelID kernel.UUID,
	agentID kernel.UUID,
	position kernel.GeoPoint,
	speed, heading *float64,
	now time.Time,
) (*Point, error) {
	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		agentID.Validate(),
		position.Validate(),
	); err != nil {
		return nil, err
	}

	if speed != nil && *speed < 0 {
		return nil, errs.NewValueIsInvalidError("speed")
	}
	if heading != nil && (*heading < headingMin || *heading >= headingMax) {
		return nil, errs.NewValueIsOutOfRangeError("heading", *heading, headingMin, headingMax)
	}

	return &Point{
		id:            id,
		parcelID:      parcelID,
		agentID:       agentID,
		position:      position,
		speed:         speed,
		heading:       heading,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestorePoint reconstructs a location sample from persistence.
func RestorePoint(
	id kernel.UUID,
	parcelID kernel.UUID,
	agentID kernel.UUID,
	position kernel.GeoPoint,
	speed, heading *float64,
	createdAt time.Time,
) (*Point, error) {
	return NewPoint(id, parcelID, agentID, position, speed, heading, createdAt)
}

// Validate ensures the point was created through a factory method.
func (p *Point) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPointIsNotConstructed
	}
	return nil
}

// ID returns the sample identifier.
func (p *Point) ID() kernel.UUID {
	return p.id
}

// ParcelID returns the parcel the sample belongs to.
func (p *Point) ParcelID() kernel.UUID {
	return p.parcelID
}

// AgentID returns the agent that reported the sample.
func (p *Point) AgentID() kernel.UUID {
	return p.agentID
}

// Position returns the reported coordinates.
func (p *Point) Position() kernel.GeoPoint {
	return p.position
}

// Speed returns the reported speed in km/h, or nil if unreported.
func (p *Point) Speed() *float64 {
	return p.speed
}

// Heading returns the reported heading in degrees, or nil if unreported.
func (p *Point) Heading() *float64 {
	return p.heading
}

// CreatedAt returns the time the sample was recorded.
func (p *Point) CreatedAt() time.Time {
	return p.createdAt
}
