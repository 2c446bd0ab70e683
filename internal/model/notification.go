package model

import "time"

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// Notification is directed from an actor to a recipient. Rows are created
// as a side effect of like/comment/follow mutations, never for
// self-actions.
type Notification struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"-"`
	FromUserID int64     `db:"from_user_id" json:"fromUserId"`
	Type       string    `db:"type" json:"type"`
	PostID     *int64    `db:"post_id" json:"postId,omitempty"`
	Message    string    `db:"message" json:"message"`
	ReadStatus bool      `db:"read_status" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	// Actor fields joined from users.
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
	Avatar   string `db:"avatar" json:"avatar"`
}

// NotificationListResponse wraps a notification page with the unread badge
// count.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}
