package model

import (
	"errors"
	"time"
)

// Post is a post row joined with its author's profile fields and the
// viewer-relative derived aggregates. likesCount/commentsCount/isLiked are
// computed by correlated sub-queries at read time, never stored.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Caption   string    `db:"caption" json:"caption"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	Location  string    `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Author fields joined from users.
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
	Avatar   string `db:"avatar" json:"avatar"`
	Verified bool   `db:"verified" json:"verified"`

	// Derived aggregates, viewer-relative.
	LikesCount    int  `db:"likes_count" json:"likesCount"`
	CommentsCount int  `db:"comments_count" json:"commentsCount"`
	IsLiked       bool `db:"is_liked" json:"isLiked"`
}

// PostListResponse wraps a page of posts.
type PostListResponse struct {
	Posts []Post `json:"posts"`
}

// Page holds validated offset pagination parameters.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Post constraints
const (
	MaxPostImageSize = 10 * 1024 * 1024 // 10MB upload cap
	MaxCaptionLength = 2200
	PostImageMaxSide = 1080
	PostImageQuality = 85
	DefaultFeedLimit = 10
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

var (
	// ErrPostNotFound is returned when a post cannot be found, including
	// delete attempts by a non-owner (indistinguishable in the response).
	ErrPostNotFound = errors.New("post not found")
)
