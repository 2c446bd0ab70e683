package model

import (
	"errors"
	"time"
)

// ToggleLikeRequest is the request body for the like toggle.
type ToggleLikeRequest struct {
	PostID int64 `json:"postId"`
}

// ToggleLikeResult reports the state after a toggle with a fresh count.
type ToggleLikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

// Liker is a user who liked a post, with the like timestamp.
type Liker struct {
	UserID   int64     `db:"id" json:"userId"`
	Username string    `db:"username" json:"username"`
	FullName string    `db:"full_name" json:"fullName"`
	Avatar   string    `db:"avatar" json:"avatar"`
	Verified bool      `db:"verified" json:"verified"`
	LikedAt  time.Time `db:"created_at" json:"likedAt"`
}

// ErrPostIDRequired is returned when the toggle body has no post id.
var ErrPostIDRequired = errors.New("post ID is required")
