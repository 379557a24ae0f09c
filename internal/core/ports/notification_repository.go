package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"
)

// NotificationLogRepository defines the append-only persistence contract for
// dispatch attempt records. Every email/SMS attempt is logged regardless of
// outcome.
type NotificationLogRepository interface {
	// Add appends a dispatch log entry.
	Add(ctx context.Context, entry *notification.LogEntry) error
}

// NotificationRepository defines the persistence contract for in-app
// notifications shown in a user's feed.
type NotificationRepository interface {
	// Add persists a new in-app notification.
	Add(ctx context.Context, n *notification.Notification) error

	// Get retrieves a notification by id, scoped to the owning user.
	Get(ctx context.Context, id, userID kernel.UUID) (*notification.Notification, error)

	// Update persists read-state changes.
	Update(ctx context.Context, n *notification.Notification) error

	// MarkAllRead marks every unread notification of the user as read.
	MarkAllRead(ctx context.Context, userID kernel.UUID) error

	// CountUnread returns the user's current unread count.
	CountUnread(ctx context.Context, userID kernel.UUID) (int64, error)
}

// AuditLogRepository defines the append-only persistence contract for
// privileged-action records.
type AuditLogRepository interface {
	// Add appends an audit entry.
	Add(ctx context.Context, entry *audit.Entry) error
}
