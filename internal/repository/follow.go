package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
)

// followRepository implements FollowRepository using sqlx
type followRepository struct {
	db *sqlx.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND following_id = ?)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// Create inserts a follow edge. UNIQUE(follower_id, following_id) absorbs
// concurrent duplicate toggles.
func (r *followRepository) Create(ctx context.Context, followerID, followingID int64) error {
	query := `INSERT OR IGNORE INTO follows (follower_id, following_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("failed to insert follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	query := `DELETE FROM follows WHERE follower_id = ? AND following_id = ?`

	if _, err := r.db.ExecContext(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *followRepository) Counts(ctx context.Context, userID int64) (*model.FollowCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = ?) AS followers_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = ?) AS following_count
	`

	var counts model.FollowCounts
	err := r.db.GetContext(ctx, &counts, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow counts: %w", err)
	}
	return &counts, nil
}

func (r *followRepository) FollowersCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM follows WHERE following_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

// GetSuggestions returns users the viewer does not already follow,
// excluding the viewer, ranked by follower count. Ties break randomly so
// repeated calls rotate equally popular accounts.
func (r *followRepository) GetSuggestions(ctx context.Context, viewerID int64, limit int) ([]model.Suggestion, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.verified,
		       (SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count
		FROM users u
		WHERE u.id != ?
		  AND u.id NOT IN (SELECT following_id FROM follows WHERE follower_id = ?)
		ORDER BY followers_count DESC, RANDOM()
		LIMIT ?
	`

	suggestions := []model.Suggestion{}
	err := r.db.SelectContext(ctx, &suggestions, query, viewerID, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	return suggestions, nil
}

// GetMutual returns followers of the target that the viewer also follows.
func (r *followRepository) GetMutual(ctx context.Context, viewerID, targetID int64, limit int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.verified,
		       1 AS is_following
		FROM users u
		WHERE u.id IN (SELECT follower_id FROM follows WHERE following_id = ?)
		  AND u.id IN (SELECT following_id FROM follows WHERE follower_id = ?)
		LIMIT ?
	`

	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, query, targetID, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get mutual followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID int64) ([]model.FollowEntry, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.verified, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = ?
		ORDER BY f.created_at DESC
	`

	entries := []model.FollowEntry{}
	err := r.db.SelectContext(ctx, &entries, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return entries, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID int64) ([]model.FollowEntry, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.verified, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC
	`

	entries := []model.FollowEntry{}
	err := r.db.SelectContext(ctx, &entries, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	return entries, nil
}
