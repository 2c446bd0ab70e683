package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
)

// likeRepository implements LikeRepository using sqlx
type likeRepository struct {
	db *sqlx.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = ? AND user_id = ?)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return exists, nil
}

// Create inserts a like edge. The UNIQUE(post_id, user_id) constraint is
// the backstop against concurrent duplicate toggles.
func (r *likeRepository) Create(ctx context.Context, postID, userID int64) error {
	query := `INSERT OR IGNORE INTO likes (post_id, user_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID int64) error {
	query := `DELETE FROM likes WHERE post_id = ? AND user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (r *likeRepository) Count(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM likes WHERE post_id = ?`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// GetLikers returns the users who liked a post, most recent like first.
func (r *likeRepository) GetLikers(ctx context.Context, postID int64, limit int) ([]model.Liker, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.verified, l.created_at
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.post_id = ?
		ORDER BY l.created_at DESC
		LIMIT ?
	`

	likers := []model.Liker{}
	err := r.db.SelectContext(ctx, &likers, query, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get likers: %w", err)
	}
	return likers, nil
}
