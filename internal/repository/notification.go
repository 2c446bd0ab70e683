package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
)

// notificationRepository implements NotificationRepository using sqlx
type notificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, from_user_id, type, post_id, message)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		n.UserID, n.FromUserID, n.Type, n.PostID, n.Message)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted notification id: %w", err)
	}
	n.ID = id
	return nil
}

// GetByUserID returns the recipient's notifications newest first, each
// joined with the actor's profile fields.
func (r *notificationRepository) GetByUserID(ctx context.Context, userID int64, page model.Page) ([]model.Notification, error) {
	query := `
		SELECT n.id, n.user_id, n.from_user_id, n.type, n.post_id, n.message,
		       n.read_status, n.created_at,
		       u.username, u.full_name, u.avatar
		FROM notifications n
		JOIN users u ON u.id = n.from_user_id
		WHERE n.user_id = ?
		ORDER BY n.created_at DESC
		LIMIT ? OFFSET ?
	`

	notifications := []model.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET read_status = 1 WHERE user_id = ? AND read_status = 0`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_status = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
