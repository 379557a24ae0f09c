package parcel

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
// through the NewParcel or RestoreParcel factory methods. This ensures all
// parcels are properly validated.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

// BookingDetails carries the customer-provided booking payload used to
// construct a new parcel.
type BookingDetails struct {
	PickupAddress     string
	DeliveryAddress   string
	ParcelType        string
	ParcelSize        string
	Weight            float64
	PaymentType       PaymentType
	CODAmount         int64
	ScheduledPickupAt *time.Time
}

// Parcel represents a single shipment booking tracked from pickup request to
// delivery, failure, or cancellation. It is the aggregate root that owns the
// authoritative status of the journey.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier, tracking code, and customer
//   - Status is always one of the defined lifecycle statuses
//   - Status changes only happen through TransitionTo / AssignAgent,
//     which enforce the transition table
//   - CODAmount is zero unless the payment type is cash on delivery
//   - DeliveredAt is set exactly when the parcel reaches DELIVERED
//   - Soft-deleted parcels keep their history and tracking records
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Parcel struct {
	id           kernel.UUID
	trackingCode TrackingCode
	customerID   kernel.UUID

	pickupAddress   string
	deliveryAddress string
	parcelType      string
	parcelSize      string
	weight          float64

	paymentType PaymentType
	codAmount   int64

	status          Status
	assignedAgentID *kernel.UUID

	scheduledPickupAt *time.Time
	deliveredAt       *time.Time
	failureReason     string

	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time

	isConstructed bool
}

// NewParcel creates a new Parcel in BOOKED status from a booking payload.
// This is the only way to create a parcel for a fresh booking, ensuring all
// business invariants hold from the start.
//
// The COD amount is forced to zero for prepaid bookings; for cash on delivery
// it must not be negative.
func NewParcel(
	id kernel.UUID,
	trackingCode TrackingCode,
	customerID kernel.UUID,
	details BookingDetails,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        StatusBooked,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
		p.setAddresses(details.PickupAddress, details.DeliveryAddress),
		p.setShape(details.ParcelType, details.ParcelSize, details.Weight),
		p.setPayment(details.PaymentType, details.CODAmount),
	); err != nil {
		return nil, err
	}

	p.scheduledPickupAt = details.ScheduledPickupAt
	return p, nil
}

// RestoreParcel reconstructs a Parcel from persistence without running the
// booking-time defaults. All stored fields are restored as-is; validation
// still applies to identifiers, payment type, and status.
func RestoreParcel(
	id kernel.UUID,
	trackingCode TrackingCode,
	customerID kernel.UUID,
	details BookingDetails,
	status Status,
	assignedAgentID *kernel.UUID,
	deliveredAt *time.Time,
	failureReason string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) (*Parcel, error) {
	p := &Parcel{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
		p.setAddresses(details.PickupAddress, details.DeliveryAddress),
		p.setShape(details.ParcelType, details.ParcelSize, details.Weight),
		status.Validate(),
		details.PaymentType.Validate(),
	); err != nil {
		return nil, err
	}

	if assignedAgentID != nil {
		if err := assignedAgentID.Validate(); err != nil {
			return nil, err
		}
	}

	p.paymentType = details.PaymentType
	p.codAmount = details.CODAmount
	p.scheduledPickupAt = details.ScheduledPickupAt
	p.status = status
	p.assignedAgentID = assignedAgentID
	p.deliveredAt = deliveredAt
	p.failureReason = failureReason
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	p.deletedAt = deletedAt
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the human-shareable tracking code issued at booking.
func (p *Parcel) TrackingCode() TrackingCode {
	return p.trackingCode
}

// CustomerID returns the owning customer's identifier.
func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

// PickupAddress returns the pickup address text captured at booking.
func (p *Parcel) PickupAddress() string {
	return p.pickupAddress
}

// DeliveryAddress returns the delivery address text captured at booking.
func (p *Parcel) DeliveryAddress() string {
	return p.deliveryAddress
}

// ParcelType returns the declared parcel type.
func (p *Parcel) ParcelType() string {
	return p.parcelType
}

// ParcelSize returns the declared parcel size.
func (p *Parcel) ParcelSize() string {
	return p.parcelSize
}

// Weight returns the declared weight in kilograms.
func (p *Parcel) Weight() float64 {
	return p.weight
}

// PaymentType returns how the parcel is paid for.
func (p *Parcel) PaymentType() PaymentType {
	return p.paymentType
}

// CODAmount returns the amount collected at delivery.
// Always zero for prepaid parcels.
func (p *Parcel) CODAmount() int64 {
	return p.codAmount
}

// Status returns the current lifecycle status of the parcel.
func (p *Parcel) Status() Status {
	return p.status
}

// AssignedAgentID returns the assigned agent's identifier.
// Returns nil if no agent is assigned.
func (p *Parcel) AssignedAgentID() *kernel.UUID {
	return p.assignedAgentID
}

// ScheduledPickupAt returns the requested pickup time, if any.
func (p *Parcel) ScheduledPickupAt() *time.Time {
	return p.scheduledPickupAt
}

// DeliveredAt returns the delivery time, set only once the parcel
// reaches DELIVERED.
func (p *Parcel) DeliveredAt() *time.Time {
	return p.deliveredAt
}

// FailureReason returns the note recorded with the most recent FAILED
// transition. Empty when the parcel is not in a failed state.
func (p *Parcel) FailureReason() string {
	return p.failureReason
}

// CreatedAt returns the booking time.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// DeletedAt returns the soft-delete time, or nil for live parcels.
func (p *Parcel) DeletedAt() *time.Time {
	return p.deletedAt
}

// IsDeleted reports whether the parcel has been soft-deleted.
// Soft-deleted parcels behave as absent for every read and transition.
func (p *Parcel) IsDeleted() bool {
	return p.deletedAt != nil
}

// IsAssignedTo reports whether the given agent is the parcel's assigned agent.
func (p *Parcel) IsAssignedTo(agentID kernel.UUID) bool {
	return p.assignedAgentID != nil && p.assignedAgentID.IsEqual(agentID)
}

// TransitionTo moves the parcel to the requested status.
//
// This method enforces the following business rules:
//   - The requested status must be in the current status's transition set
//   - DeliveredAt is set only when the target is DELIVERED
//   - FailureReason is set to the note when the target is FAILED,
//     and cleared on every other transition
//
// Returns a *StatusTransitionError naming both statuses when the transition
// table does not allow the move; the stored state is left untouched.
func (p *Parcel) TransitionTo(next Status, note string, now time.Time) error {
	newStatus, err := p.status.TransitionTo(next)
	if err != nil {
		return err
	}

	p.status = newStatus
	if newStatus == StatusDelivered {
		p.deliveredAt = &now
	}
	if newStatus == StatusFailed {
		p.failureReason = note
	} else {
		p.failureReason = ""
	}
	p.updatedAt = now
	return nil
}

// AssignAgent assigns the parcel to a delivery agent and moves it to ASSIGNED.
// Assignment follows the same transition table as any other status change,
// so only BOOKED and FAILED parcels can be assigned.
func (p *Parcel) AssignAgent(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if err := p.TransitionTo(StatusAssigned, "", now); err != nil {
		return err
	}

	p.assignedAgentID = &agentID
	return nil
}

// MarkDeleted soft-deletes the parcel. History and tracking records are kept;
// the parcel itself becomes invisible to reads and rejects further transitions.
func (p *Parcel) MarkDeleted(now time.Time) error {
	if p.IsDeleted() {
		return errs.NewObjectNotFoundError("parcel", p.id.String())
	}

	p.deletedAt = &now
	p.updatedAt = now
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(code TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

func (p *Parcel) setAddresses(pickup, delivery string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if delivery == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	p.pickupAddress = pickup
	p.deliveryAddress = delivery
	return nil
}

func (p *Parcel) setShape(parcelType, parcelSize string, weight float64) error {
	if parcelType == "" {
		return errs.NewValueIsRequiredError("parcel type")
	}
	if parcelSize == "" {
		return errs.NewValueIsRequiredError("parcel size")
	}
	if weight < 0 {
		return errs.NewValueIsInvalidError("weight")
	}
	p.parcelType = parcelType
	p.parcelSize = parcelSize
	p.weight = weight
	return nil
}

func (p *Parcel) setPayment(paymentType PaymentType, codAmount int64) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}
	if codAmount < 0 {
		return errs.NewValueIsInvalidError("cod amount")
	}

	p.paymentType = paymentType
	if paymentType == PaymentPrepaid {
		codAmount = 0
	}
	p.codAmount = codAmount
	return nil
}
