package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
)

// postColumns is the shared projection for post reads: the post row, its
// author, and the viewer-relative aggregates recomputed by correlated
// sub-queries. The viewer id is the first bound parameter.
const postColumns = `
	p.id, p.user_id, p.caption, p.image_url, p.location, p.created_at,
	u.username, u.full_name, u.avatar, u.verified,
	(SELECT COUNT(*) FROM likes WHERE post_id = p.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE post_id = p.id) AS comments_count,
	EXISTS(SELECT 1 FROM likes WHERE post_id = p.id AND user_id = ?) AS is_liked
`

// postRepository implements PostRepository using sqlx
type postRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post and reloads the generated fields.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (user_id, caption, image_url, location)
		VALUES (?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, p.UserID, p.Caption, p.ImageURL, p.Location)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted post id: %w", err)
	}

	created, err := r.GetByID(ctx, id, p.UserID)
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = ?
	`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, viewerID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

// GetFeed returns the newest posts authored by the viewer's follow set or
// the viewer themselves. An empty follow set still yields the viewer's own
// posts.
func (r *postRepository) GetFeed(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id IN (
			SELECT following_id FROM follows WHERE follower_id = ?
			UNION
			SELECT ?
		)
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?
	`

	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, query,
		viewerID, viewerID, viewerID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return posts, nil
}

// GetExplore returns a random page of posts. The ordering is re-rolled on
// every call.
func (r *postRepository) GetExplore(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY RANDOM()
		LIMIT ? OFFSET ?
	`

	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, query, viewerID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get explore posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetByUsername(ctx context.Context, username string, viewerID int64, page model.Page) ([]model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE u.username = ?
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?
	`

	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, query,
		viewerID, username, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get user posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetAuthorID(ctx context.Context, postID int64) (int64, error) {
	var authorID int64
	err := r.db.GetContext(ctx, &authorID, `SELECT user_id FROM posts WHERE id = ?`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, model.ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to get post author: %w", err)
	}
	return authorID, nil
}

// Delete removes the post only when userID owns it. Likes, comments and
// notifications cascade at the schema level.
func (r *postRepository) Delete(ctx context.Context, postID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}
