// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit best-effort side effects.
package commands

import (
	"context"
	"time"

	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest slice of repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// HistoryRepoFactory provides access to the status history repository within a transaction.
	HistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	// TrackingRepoFactory provides access to the tracking repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// AuditRepoFactory provides access to the audit log repository within a transaction.
	AuditRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// BookingUoW manages transactions for booking creation: the parcel write
	// plus its initial history record.
	BookingUoW interface {
		TxManager
		ParcelRepoFactory
		HistoryRepoFactory
	}

	// BookingUoWFactory creates new booking unit of work instances.
	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// ParcelMutationUoW manages transactions for status transitions and other
	// parcel mutations, covering the parcel write, the history append, and the
	// audit append for privileged actors.
	ParcelMutationUoW interface {
		TxManager
		ParcelRepoFactory
		HistoryRepoFactory
		AuditRepoFactory
	}

	// ParcelMutationUoWFactory creates new parcel mutation unit of work instances.
	ParcelMutationUoWFactory interface {
		Create() ParcelMutationUoW
	}

	// TrackingUoW manages transactions for tracking ingestion and pruning.
	// The parcel repository is read-only here: it only verifies assignment.
	TrackingUoW interface {
		TxManager
		ParcelRepoFactory
		TrackingRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}
)

// ParcelNotifier sends best-effort customer and in-app notifications after the
// authoritative write commits. Implemented by notify.Notifier; failures inside
// the pipeline are logged there and never reach the command handler.
type ParcelNotifier interface {
	NotifyParcelEvent(ctx context.Context, p *parcel.Parcel, templateKey string, tctx notify.Context)
	CreateUserNotification(
		ctx context.Context,
		userID kernel.UUID,
		role actor.Role,
		kind, title, body string,
		data map[string]any,
	) (*notification.Notification, error)
}

// StatusChangedPayload is the fan-out payload published to the parcel,
// customer, and agent topics on every status change.
type StatusChangedPayload struct {
	ParcelID     string    `json:"parcelId"`
	Status       string    `json:"status"`
	Note         string    `json:"note,omitempty"`
	TrackingCode string    `json:"trackingCode"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
