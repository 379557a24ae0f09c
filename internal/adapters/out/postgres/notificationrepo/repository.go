package notificationrepo

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
// Every read is scoped to the owning user; a notification belonging to
// someone else behaves as absent.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add persists a new in-app notification.
func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a notification by id, scoped to the owning user.
func (r *GormNotificationRepository) Get(
	ctx context.Context,
	id, userID kernel.UUID,
) (*notification.Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND user_id = ?", id.Bytes(), userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notificationID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists read-state changes.
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Updates(map[string]any{
			"is_read": n.IsRead(),
			"read_at": n.ReadAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notificationID", n.ID().String())
	}

	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("user_id = ? AND is_read = FALSE", userID.Bytes()).
		Updates(map[string]any{
			"is_read": true,
			"read_at": gorm.Expr("NOW()"),
		}).Error
}

// CountUnread returns the user's current unread count.
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID kernel.UUID) (int64, error) {
	if err := userID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("user_id = ? AND is_read = FALSE", userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GormNotificationLogRepository implements NotificationLogRepository using GORM.
// The dispatch log is append-only.
type GormNotificationLogRepository struct {
	db *gorm.DB
}

// NewGormNotificationLogRepository creates a new GORM dispatch log repository.
func NewGormNotificationLogRepository(db *gorm.DB) *GormNotificationLogRepository {
	return &GormNotificationLogRepository{db: db}
}

// Add appends a dispatch log entry.
func (r *GormNotificationLogRepository) Add(ctx context.Context, entry *notification.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := logFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
