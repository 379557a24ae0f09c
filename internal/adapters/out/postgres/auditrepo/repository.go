// Package auditrepo provides persistence for the append-only record of
// privileged administrative actions.
package auditrepo

import (
	"context"
	"encoding/json"
	"time"

	"parcelflow/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogDTO represents one stored audit record.
type AuditLogDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID   uuid.UUID `gorm:"type:uuid;index"`
	Action    string    `gorm:"index"`
	Details   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// TableName specifies the database table name for audit records.
func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

// GormAuditLogRepository implements AuditLogRepository using GORM.
// The table is append-only; entries are never updated or deleted.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GORM audit log repository.
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Add appends an audit entry.
func (r *GormAuditLogRepository) Add(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	var details []byte
	if entry.Details() != nil {
		raw, err := json.Marshal(entry.Details())
		if err != nil {
			return err
		}
		details = raw
	}

	dto := AuditLogDTO{
		ID:        entry.ID().Bytes(),
		ActorID:   entry.ActorID().Bytes(),
		Action:    entry.Action(),
		Details:   details,
		CreatedAt: entry.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
