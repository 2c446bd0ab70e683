package model

import (
	"errors"
	"time"
)

// Comment is a comment row joined with its author's profile fields.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"postId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
	Avatar   string `db:"avatar" json:"avatar"`
	Verified bool   `db:"verified" json:"verified"`
}

// CreateCommentRequest is the request body for adding a comment.
type CreateCommentRequest struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// CommentListResponse wraps a page of comments.
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
}

// MaxCommentLength matches the caption limit.
const MaxCommentLength = 2200

var (
	// ErrCommentNotFound covers both a missing comment and a delete attempt
	// by a non-author; the two are indistinguishable in the response.
	ErrCommentNotFound = errors.New("comment not found or unauthorized")

	// ErrContentRequired is returned when the trimmed content is empty.
	ErrContentRequired = errors.New("comment content is required")

	// ErrContentTooLong is returned when content exceeds MaxCommentLength.
	ErrContentTooLong = errors.New("comment content too long")
)
