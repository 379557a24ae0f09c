// Package parcel provides domain entities and business logic for the parcel
// lifecycle. It implements the Parcel aggregate root with the authoritative
// status state machine for a shipment's journey from booking to delivery,
// failure, or cancellation.
//
// The package includes:
//   - Parcel: The aggregate root that owns identity, booking details, and status
//   - Status: A state machine that enforces valid lifecycle transitions
//   - TrackingCode: The human-shareable identifier issued at booking time
//   - PaymentType: COD or prepaid payment classification
//   - StatusHistoryRecord: Append-only audit of every transition
//
// Key business rules:
//   - Parcels start in BOOKED and end in DELIVERED or CANCELLED
//   - FAILED parcels may be re-assigned or cancelled
//   - The COD amount is only meaningful for cash-on-delivery parcels
//   - DeliveredAt is set exactly when a parcel reaches DELIVERED
//   - Parcels are soft-deleted so history and tracking records survive
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
