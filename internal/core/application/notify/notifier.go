package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

// Notifier is the notification dispatch pipeline. It renders channel-specific
// content for a parcel event and dispatches each eligible channel
// concurrently and independently, logging every attempt.
//
// Dispatch is best-effort: transport failures are recorded as FAILED log
// entries and never propagate to the caller, so one channel's failure cannot
// abort a sibling dispatch or the surrounding business operation.
type Notifier struct {
	directory     ports.CustomerDirectory
	email         ports.EmailSender
	sms           ports.SMSSender
	logs          ports.NotificationLogRepository
	notifications ports.NotificationRepository
	publisher     ports.EventPublisher
	logger        *slog.Logger
}

// NewNotifier creates the dispatch pipeline with its transports and stores.
func NewNotifier(
	directory ports.CustomerDirectory,
	email ports.EmailSender,
	sms ports.SMSSender,
	logs ports.NotificationLogRepository,
	notifications ports.NotificationRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *Notifier {
	return &Notifier{
		directory:     directory,
		email:         email,
		sms:           sms,
		logs:          logs,
		notifications: notifications,
		publisher:     publisher,
		logger:        logger.With("component", "notifier"),
	}
}

// NotifyParcelEvent renders and dispatches a parcel event to the owning
// customer over every channel whose precondition holds: the customer has an
// email and rendering produced subject and body, or the customer has a phone
// and rendering produced text.
//
// The call is a no-op when the parcel has no resolvable customer or when no
// channel precondition holds. It returns once every eligible dispatch has
// completed; it never returns a transport error.
func (n *Notifier) NotifyParcelEvent(ctx context.Context, p *parcel.Parcel, templateKey string, tctx Context) {
	if err := p.Validate(); err != nil {
		n.logger.ErrorContext(ctx, "notify skipped: invalid parcel", "error", err)
		return
	}

	contact, err := n.directory.GetContact(ctx, p.CustomerID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			n.logger.ErrorContext(ctx, "notify skipped: contact lookup failed",
				"parcel_id", p.ID().String(), "error", err)
		}
		return
	}

	if tctx.Status == parcel.StatusUnknown {
		tctx.Status = p.Status()
	}
	tctx.TrackingCode = p.TrackingCode().String()
	tctx.CustomerName = contact.Name
	tctx.PickupAddress = p.PickupAddress()
	tctx.DeliveryAddress = p.DeliveryAddress()

	rendered := Render(templateKey, NormalizeLanguage(contact.Language), tctx)

	var wg sync.WaitGroup

	if contact.Email != "" && rendered.EmailSubject != "" && rendered.EmailHTML != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, sendErr := n.email.Send(ctx, contact.Email, rendered.EmailSubject, rendered.EmailHTML)
			n.logDispatch(ctx, p.ID(), notification.ChannelEmail, contact.Email, templateKey, outcome, sendErr)
		}()
	}

	if contact.Phone != "" && rendered.SMSText != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, sendErr := n.sms.Send(ctx, contact.Phone, rendered.SMSText)
			n.logDispatch(ctx, p.ID(), notification.ChannelSMS, contact.Phone, templateKey, outcome, sendErr)
		}()
	}

	wg.Wait()
}

// logDispatch appends the outcome of one dispatch attempt. Transport errors
// and FAILED outcomes are logged as FAILED; SKIPPED outcomes leave no entry.
func (n *Notifier) logDispatch(
	ctx context.Context,
	parcelID kernel.UUID,
	channel notification.Channel,
	recipient, templateKey string,
	outcome ports.DispatchOutcome,
	sendErr error,
) {
	status := notification.DispatchSent
	switch {
	case sendErr != nil:
		n.logger.WarnContext(ctx, "notification channel failed",
			"channel", string(channel), "parcel_id", parcelID.String(), "error", sendErr)
		status = notification.DispatchFailed
	case outcome.Status == notification.DispatchFailed:
		status = notification.DispatchFailed
	case outcome.Status == notification.DispatchSkipped:
		return
	}

	entry, err := notification.NewLogEntry(
		kernel.NewUUID(),
		parcelID,
		channel,
		recipient,
		templateKey,
		status,
		outcome.ProviderMessageID,
		time.Now().UTC(),
	)
	if err != nil {
		n.logger.ErrorContext(ctx, "notification log entry invalid", "error", err)
		return
	}

	if err := n.logs.Add(ctx, entry); err != nil {
		n.logger.ErrorContext(ctx, "notification log append failed", "error", err)
	}
}

// NotificationPayload is the real-time payload for an in-app notification
// event, delivered alongside the user's current unread count.
type NotificationPayload struct {
	Notification NotificationView `json:"notification"`
	UnreadCount  int64            `json:"unreadCount"`
}

// NotificationView is the wire representation of one in-app notification.
type NotificationView struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
	IsRead    bool           `json:"isRead"`
	ReadAt    *time.Time     `json:"readAt"`
	CreatedAt time.Time      `json:"createdAt"`
}

func viewOf(n *notification.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID().String(),
		Type:      n.Type(),
		Title:     n.Title(),
		Body:      n.Body(),
		Data:      n.Data(),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

// CreateUserNotification persists an in-app notification and publishes it,
// with the user's unread count, to the user's topic and redundantly to the
// role-scoped topic for clients joined only by legacy room name.
//
// The real-time publish is best-effort; a failed publish leaves the stored
// notification authoritative and is only logged.
func (n *Notifier) CreateUserNotification(
	ctx context.Context,
	userID kernel.UUID,
	role actor.Role,
	kind, title, body string,
	data map[string]any,
) (*notification.Notification, error) {
	item, err := notification.NewNotification(
		kernel.NewUUID(), userID, role, kind, title, body, data, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := n.notifications.Add(ctx, item); err != nil {
		return nil, err
	}

	unread, err := n.notifications.CountUnread(ctx, userID)
	if err != nil {
		n.logger.WarnContext(ctx, "unread count failed", "user_id", userID.String(), "error", err)
		unread = 0
	}

	payload := NotificationPayload{Notification: viewOf(item), UnreadCount: unread}

	n.publish(ctx, ports.UserTopic(userID), payload)
	switch role {
	case actor.RoleCustomer:
		n.publish(ctx, ports.CustomerTopic(userID), payload)
	case actor.RoleAgent:
		n.publish(ctx, ports.AgentTopic(userID), payload)
	case actor.RoleAdmin:
		// admins have no legacy role room
	}

	return item, nil
}

func (n *Notifier) publish(ctx context.Context, topic string, payload NotificationPayload) {
	if err := n.publisher.Publish(ctx, topic, ports.EventUserNotification, payload); err != nil {
		n.logger.WarnContext(ctx, "notification publish failed", "topic", topic, "error", err)
	}
}

// MarkNotificationRead marks one notification as read for its owning user and
// returns the refreshed payload. Reading an already-read notification keeps
// its original read time.
func (n *Notifier) MarkNotificationRead(
	ctx context.Context,
	notificationID, userID kernel.UUID,
) (NotificationPayload, error) {
	item, err := n.notifications.Get(ctx, notificationID, userID)
	if err != nil {
		return NotificationPayload{}, err
	}

	if !item.IsRead() {
		item.MarkRead(time.Now().UTC())
		if err := n.notifications.Update(ctx, item); err != nil {
			return NotificationPayload{}, err
		}
	}

	unread, err := n.notifications.CountUnread(ctx, userID)
	if err != nil {
		return NotificationPayload{}, err
	}

	return NotificationPayload{Notification: viewOf(item), UnreadCount: unread}, nil
}

// MarkAllNotificationsRead marks every unread notification of the user as read.
func (n *Notifier) MarkAllNotificationsRead(ctx context.Context, userID kernel.UUID) error {
	return n.notifications.MarkAllRead(ctx, userID)
}
