package commands

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrCreateBookingCommandIsNotConstructed = errors.New(
	"CreateBookingCommand must be created via NewCreateBookingCommand constructor",
)

// CreateBookingCommand represents a customer's request to book a parcel
// pickup. Carries the booking details the new aggregate is built from; the
// tracking code is issued by the handler, never supplied by the caller.
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	customerID kernel.UUID

	pickupAddress     string
	deliveryAddress   string
	parcelType        string
	parcelSize        string
	weight            float64
	paymentType       parcel.PaymentType
	codAmount         int64
	scheduledPickupAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand creates a command to book a new parcel.
// Validates identifiers, addresses, parcel shape and payment details.
func NewCreateBookingCommand(
	parcelID kernel.UUID,
	customerID kernel.UUID,
	pickupAddress, deliveryAddress string,
	parcelType, parcelSize string,
	weight float64,
	paymentType parcel.PaymentType,
	codAmount int64,
	scheduledPickupAt *time.Time,
) (CreateBookingCommand, error) {
	bookingCommand := CreateBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bookingCommand.setParcelID(parcelID),
		bookingCommand.setCustomerID(customerID),
		bookingCommand.setAddresses(pickupAddress, deliveryAddress),
		bookingCommand.setShape(parcelType, parcelSize, weight),
		bookingCommand.setPayment(paymentType, codAmount),
	); err != nil {
		return CreateBookingCommand{}, err
	}

	bookingCommand.scheduledPickupAt = scheduledPickupAt
	return bookingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

// ParcelID returns the identifier the new parcel will be created under.
func (c CreateBookingCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// CustomerID returns the booking customer.
func (c CreateBookingCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Details returns the booking details for the aggregate constructor.
func (c CreateBookingCommand) Details() parcel.BookingDetails {
	return parcel.BookingDetails{
		PickupAddress:     c.pickupAddress,
		DeliveryAddress:   c.deliveryAddress,
		ParcelType:        c.parcelType,
		ParcelSize:        c.parcelSize,
		Weight:            c.weight,
		PaymentType:       c.paymentType,
		CODAmount:         c.codAmount,
		ScheduledPickupAt: c.scheduledPickupAt,
	}
}

func (c *CreateBookingCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateBookingCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateBookingCommand) setAddresses(pickup, delivery string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	if delivery == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}

func (c *CreateBookingCommand) setShape(parcelType, parcelSize string, weight float64) error {
	if parcelType == "" {
		return errs.NewValueIsRequiredError("parcel type")
	}
	if parcelSize == "" {
		return errs.NewValueIsRequiredError("parcel size")
	}
	if weight <= 0 {
		return errs.NewValueIsInvalidError("weight must be greater than 0")
	}

	c.parcelType = parcelType
	c.parcelSize = parcelSize
	c.weight = weight
	return nil
}

func (c *CreateBookingCommand) setPayment(paymentType parcel.PaymentType, codAmount int64) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}
	if codAmount < 0 {
		return errs.NewValueIsInvalidError("cod amount must not be negative")
	}

	c.paymentType = paymentType
	c.codAmount = codAmount
	return nil
}
