package parcel

import (
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// PaymentType represents how a parcel is paid for.
type PaymentType string

const (
	// PaymentCOD is cash on delivery: the amount is collected by the agent
	// at delivery time. CODAmount is only meaningful for this type.
	PaymentCOD PaymentType = "COD"

	// PaymentPrepaid means the booking was paid up front.
	// The COD amount is forced to zero for prepaid parcels.
	PaymentPrepaid PaymentType = "PREPAID"
)

// Validate checks if the PaymentType is one of the supported values.
func (p PaymentType) Validate() error {
	switch p {
	case PaymentCOD, PaymentPrepaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment type is invalid",
			fmt.Errorf("%q is not a valid payment type", string(p)))
	}
}

// String returns the stored representation of the payment type.
func (p PaymentType) String() string {
	return string(p)
}
