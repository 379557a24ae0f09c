package notification

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through its factory method.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification")

// Notification is an in-app notification shown in a user's feed.
// It is delivered in real time over the user's topic and kept until read.
type Notification struct {
	id     kernel.UUID
	userID kernel.UUID
	role   actor.Role

	kind  string
	title string
	body  string
	data  map[string]any

	isRead bool
	readAt *time.Time

	createdAt time.Time

	isConstructed bool
}

// NewNotification creates an unread in-app notification.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	role actor.Role,
	kind, title, body string,
	data map[string]any,
	now time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("notification type")
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("notification title")
	}
	if data == nil {
		data = map[string]any{}
	}

	return &Notification{
		id:            id,
		userID:        userID,
		role:          role,
		kind:          kind,
		title:         title,
		body:          body,
		data:          data,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	userID kernel.UUID,
	role actor.Role,
	kind, title, body string,
	data map[string]any,
	isRead bool,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, userID, role, kind, title, body, data, createdAt)
	if err != nil {
		return nil, err
	}
	n.isRead = isRead
	n.readAt = readAt
	return n, nil
}

// Validate ensures the notification was created through a factory method.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// MarkRead marks the notification as read. Reading twice is a no-op;
// the original read time is kept.
func (n *Notification) MarkRead(now time.Time) {
	if n.isRead {
		return
	}
	n.isRead = true
	n.readAt = &now
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// UserID returns the user the notification targets.
func (n *Notification) UserID() kernel.UUID { return n.userID }

// Role returns the role-scoped topic the notification is mirrored to.
func (n *Notification) Role() actor.Role { return n.role }

// Type returns the notification type key.
func (n *Notification) Type() string { return n.kind }

// Title returns the display title.
func (n *Notification) Title() string { return n.title }

// Body returns the display body.
func (n *Notification) Body() string { return n.body }

// Data returns the structured payload attached to the notification.
func (n *Notification) Data() map[string]any { return n.data }

// IsRead reports whether the user has read the notification.
func (n *Notification) IsRead() bool { return n.isRead }

// ReadAt returns when the notification was read, or nil while unread.
func (n *Notification) ReadAt() *time.Time { return n.readAt }

// CreatedAt returns the creation time.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
