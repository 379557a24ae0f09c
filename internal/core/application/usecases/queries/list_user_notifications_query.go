package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrListUserNotificationsQueryIsNotConstructed = errors.New(
	"ListUserNotificationsQuery must be created via NewListUserNotificationsQuery constructor",
)

// ListUserNotificationsQuery retrieves a user's in-app notification feed,
// newest first, together with the current unread count. Users only ever see
// their own feed; the user id comes from the authenticated session.
type ListUserNotificationsQuery struct { //nolint:recvcheck //using for validation
	userID     kernel.UUID
	onlyUnread bool
	page       int
	pageSize   int

	guard guard.ConstructorGuard
}

// NewListUserNotificationsQuery creates a notification feed query.
func NewListUserNotificationsQuery(
	userID kernel.UUID,
	onlyUnread bool,
	page, pageSize int,
) (ListUserNotificationsQuery, error) {
	feedQuery := ListUserNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := userID.Validate(); err != nil {
		return ListUserNotificationsQuery{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		return ListUserNotificationsQuery{}, errs.NewValueIsOutOfRangeError(
			"page size", pageSize, 1, maxPageSize)
	}

	feedQuery.userID = userID
	feedQuery.onlyUnread = onlyUnread
	feedQuery.page = page
	feedQuery.pageSize = pageSize
	return feedQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUserNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListUserNotificationsQueryIsNotConstructed)
}

// UserID returns the feed owner.
func (q ListUserNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

// OnlyUnread reports whether read notifications are excluded.
func (q ListUserNotificationsQuery) OnlyUnread() bool {
	return q.onlyUnread
}

// Page returns the 1-based page number.
func (q ListUserNotificationsQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q ListUserNotificationsQuery) PageSize() int {
	return q.pageSize
}

// Offset returns the number of rows to skip.
func (q ListUserNotificationsQuery) Offset() int {
	return (q.page - 1) * q.pageSize
}

// UserNotificationResponse is one notification in the feed.
type UserNotificationResponse struct {
	ID        kernel.UUID
	Type      string
	Title     string
	Body      string
	Data      map[string]any
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

// ListUserNotificationsQueryResponse is one page of the feed plus the
// user's current unread count.
type ListUserNotificationsQueryResponse struct {
	Items       []UserNotificationResponse
	Total       int64
	UnreadCount int64
	Page        int
	PageSize    int
}
