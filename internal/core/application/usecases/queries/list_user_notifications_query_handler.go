package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcelflow/internal/core/domain/model/kernel"
)

// ListUserNotificationsQueryHandler reads a user's in-app notification feed.
type ListUserNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewListUserNotificationsQueryHandler creates a handler for feed queries.
func NewListUserNotificationsQueryHandler(db *gorm.DB) ListUserNotificationsQueryHandler {
	return ListUserNotificationsQueryHandler{db: db}
}

// Handle executes the feed query, newest notification first.
func (h ListUserNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListUserNotificationsQuery,
) (ListUserNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListUserNotificationsQueryResponse{}, err
	}

	where := "user_id = ?"
	args := []any{query.UserID().String()}
	if query.OnlyUnread() {
		where += " AND is_read = FALSE"
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM notifications WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return ListUserNotificationsQueryResponse{}, err
	}

	var unread int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = FALSE",
			query.UserID().String()).
		Scan(&unread).Error; err != nil {
		return ListUserNotificationsQueryResponse{}, err
	}

	items := make([]UserNotificationResponse, 0, query.PageSize())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			title,
			body,
			data,
			is_read,
			read_at,
			created_at
		FROM notifications
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, query.PageSize(), query.Offset())...).Rows()
	if err != nil {
		return ListUserNotificationsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item UserNotificationResponse
		var id uuid.UUID
		var rawData []byte
		var readAt sql.NullTime
		var createdAt time.Time

		err = rows.Scan(&id, &item.Type, &item.Title, &item.Body, &rawData,
			&item.IsRead, &readAt, &createdAt)
		if err != nil {
			return ListUserNotificationsQueryResponse{}, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListUserNotificationsQueryResponse{}, err
		}
		if len(rawData) > 0 {
			if err = json.Unmarshal(rawData, &item.Data); err != nil {
				return ListUserNotificationsQueryResponse{}, err
			}
		}
		if readAt.Valid {
			t := readAt.Time
			item.ReadAt = &t
		}
		item.CreatedAt = createdAt
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return ListUserNotificationsQueryResponse{}, err
	}

	return ListUserNotificationsQueryResponse{
		Items:       items,
		Total:       total,
		UnreadCount: unread,
		Page:        query.Page(),
		PageSize:    query.PageSize(),
	}, nil
}
