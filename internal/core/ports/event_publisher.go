package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
)

// Real-time event names delivered to topic subscribers.
const (
	// EventParcelStatus carries a status-change payload.
	EventParcelStatus = "parcel:status"
	// EventParcelTracking carries a raw tracking point.
	EventParcelTracking = "parcel:tracking"
	// EventUserNotification carries an in-app notification plus unread count.
	EventUserNotification = "notification:new"
)

// Topic name builders. A topic is a named real-time channel with zero or more
// current subscribers; delivery reaches current members only.

// ParcelTopic returns the topic carrying all events for one parcel.
func ParcelTopic(parcelID kernel.UUID) string {
	return "parcel:" + parcelID.String()
}

// CustomerTopic returns the topic carrying events for one customer's parcels.
func CustomerTopic(customerID kernel.UUID) string {
	return "customer:" + customerID.String()
}

// AgentTopic returns the topic carrying events for one agent's assignments.
func AgentTopic(agentID kernel.UUID) string {
	return "agent:" + agentID.String()
}

// UserTopic returns the per-user topic carrying in-app notifications.
func UserTopic(userID kernel.UUID) string {
	return "user:" + userID.String()
}

// EventPublisher publishes events to topic-scoped subscriber groups.
//
// Delivery is best-effort and at-most-once: a returned error means the
// publish attempt failed, but callers on authoritative write paths log and
// swallow it — missed events are reconciled through the read operations
// (status history, tracking feed), never replayed.
//
// The publisher is an injected capability rather than process-wide shared
// state, so fan-out is mockable per test.
type EventPublisher interface {
	Publish(ctx context.Context, topic, event string, payload any) error
}
