// Package notificationrepo provides persistence for in-app notifications and
// the append-only dispatch log.
package notificationrepo

import (
	"encoding/json"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents one stored in-app notification.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Role      string
	Type      string
	Title     string
	Body      string
	Data      []byte `gorm:"type:jsonb"`
	IsRead    bool   `gorm:"index"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for in-app notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// NotificationLogDTO represents one stored dispatch attempt record.
type NotificationLogDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID          uuid.UUID `gorm:"type:uuid;index"`
	Channel           string
	Recipient         string
	TemplateKey       string
	Status            string
	ProviderMessageID string
	CreatedAt         time.Time
}

// TableName specifies the database table name for dispatch log entries.
func (NotificationLogDTO) TableName() string {
	return "notification_logs"
}

// fromDomain converts an in-app notification to its database representation.
func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	var data []byte
	if n.Data() != nil {
		raw, err := json.Marshal(n.Data())
		if err != nil {
			return NotificationDTO{}, err
		}
		data = raw
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		Role:      n.Role().String(),
		Type:      n.Type(),
		Title:     n.Title(),
		Body:      n.Body(),
		Data:      data,
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an in-app notification using RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if len(dto.Data) > 0 {
		if err = json.Unmarshal(dto.Data, &data); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(
		id, userID, actor.Role(dto.Role),
		dto.Type, dto.Title, dto.Body, data,
		dto.IsRead, dto.ReadAt, dto.CreatedAt,
	)
}

// logFromDomain converts a dispatch log entry to its database representation.
func logFromDomain(entry *notification.LogEntry) NotificationLogDTO {
	return NotificationLogDTO{
		ID:                entry.ID().Bytes(),
		ParcelID:          entry.ParcelID().Bytes(),
		Channel:           string(entry.Channel()),
		Recipient:         entry.Recipient(),
		TemplateKey:       entry.TemplateKey(),
		Status:            string(entry.Status()),
		ProviderMessageID: entry.ProviderMessageID(),
		CreatedAt:         entry.CreatedAt(),
	}
}
