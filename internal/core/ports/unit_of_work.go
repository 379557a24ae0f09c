package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repository access bound to the current
// transaction. Client code must explicitly manage transaction lifecycle.
//
// The parcel write is the engine's atomicity boundary: a command commits the
// authoritative state change (and any same-transaction appends) here, and
// best-effort side effects run only after Commit succeeds.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository bound to the current transaction.
	ParcelRepository() ParcelRepository

	// StatusHistoryRepository returns a StatusHistoryRepository bound to the current transaction.
	StatusHistoryRepository() StatusHistoryRepository

	// TrackingRepository returns a TrackingRepository bound to the current transaction.
	TrackingRepository() TrackingRepository

	// NotificationRepository returns a NotificationRepository bound to the current transaction.
	NotificationRepository() NotificationRepository

	// NotificationLogRepository returns a NotificationLogRepository bound to the current transaction.
	NotificationLogRepository() NotificationLogRepository

	// AuditLogRepository returns an AuditLogRepository bound to the current transaction.
	AuditLogRepository() AuditLogRepository
}
