// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the parcel lifecycle engine. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - AccessPolicy: role/ownership scoping for parcel reads and mutations
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
