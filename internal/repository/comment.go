package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pixelgram/internal/model"
)

// commentRepository implements CommentRepository using sqlx
type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment and reloads it with the author's fields.
func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (post_id, user_id, content) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, c.PostID, c.UserID, c.Content)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted comment id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*c = *created
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
		       u.username, u.full_name, u.avatar, u.verified
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = ?
	`

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// GetByPostID returns a post's comments oldest first, the order they read
// in a thread.
func (r *commentRepository) GetByPostID(ctx context.Context, postID int64, page model.Page) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
		       u.username, u.full_name, u.avatar, u.verified
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC
		LIMIT ? OFFSET ?
	`

	comments := []model.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}

// Delete removes the comment only when userID authored it. Ownership and
// existence collapse into one guarded statement.
func (r *commentRepository) Delete(ctx context.Context, commentID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND user_id = ?`, commentID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) Count(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
