package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
)

// storyRepository implements StoryRepository using sqlx
type storyRepository struct {
	db *sqlx.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

// Create inserts a story. expires_at defaults to 24 hours from now at the
// schema level.
func (r *storyRepository) Create(ctx context.Context, s *model.Story) error {
	query := `INSERT INTO stories (user_id, image_url) VALUES (?, ?)`

	res, err := r.db.ExecContext(ctx, query, s.UserID, s.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to insert story: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted story id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*s = *created
	return nil
}

func (r *storyRepository) GetByID(ctx context.Context, storyID int64) (*model.Story, error) {
	query := `
		SELECT s.id, s.user_id, s.image_url, s.created_at, s.expires_at,
		       u.username, u.full_name, u.avatar,
		       0 AS viewed
		FROM stories s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ? AND s.expires_at > datetime('now')
	`

	var s model.Story
	err := r.db.GetContext(ctx, &s, query, storyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &s, nil
}

// GetFeed returns unexpired stories from the viewer and their follow set,
// oldest author activity first. Expired rows are filtered here, never
// purged.
func (r *storyRepository) GetFeed(ctx context.Context, viewerID int64) ([]model.Story, error) {
	query := `
		SELECT s.id, s.user_id, s.image_url, s.created_at, s.expires_at,
		       u.username, u.full_name, u.avatar,
		       EXISTS(SELECT 1 FROM story_views WHERE story_id = s.id AND user_id = ?) AS viewed
		FROM stories s
		JOIN users u ON u.id = s.user_id
		WHERE s.expires_at > datetime('now')
		  AND s.user_id IN (
			SELECT following_id FROM follows WHERE follower_id = ?
			UNION
			SELECT ?
		  )
		ORDER BY s.created_at ASC
	`

	stories := []model.Story{}
	err := r.db.SelectContext(ctx, &stories, query, viewerID, viewerID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get story feed: %w", err)
	}
	return stories, nil
}

// MarkViewed records a story view. Repeat views are no-ops via the
// UNIQUE(story_id, user_id) constraint.
func (r *storyRepository) MarkViewed(ctx context.Context, storyID, viewerID int64) error {
	query := `INSERT OR IGNORE INTO story_views (story_id, user_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, storyID, viewerID); err != nil {
		return fmt.Errorf("failed to mark story viewed: %w", err)
	}
	return nil
}
