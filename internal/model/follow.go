package model

import (
	"errors"
	"time"
)

// ToggleFollowRequest is the request body for the follow toggle.
type ToggleFollowRequest struct {
	UserID int64 `json:"userId"`
}

// ToggleFollowResult reports the edge state after a toggle with a fresh
// follower count for the target.
type ToggleFollowResult struct {
	IsFollowing    bool `json:"isFollowing"`
	FollowersCount int  `json:"followersCount"`
}

// Suggestion is a non-followed user ranked by popularity. Ties between
// equal follower counts are broken randomly on every call.
type Suggestion struct {
	ID             int64  `db:"id" json:"id"`
	Username       string `db:"username" json:"username"`
	FullName       string `db:"full_name" json:"fullName"`
	Avatar         string `db:"avatar" json:"avatar"`
	Verified       bool   `db:"verified" json:"verified"`
	FollowersCount int    `db:"followers_count" json:"followersCount"`
}

// FollowEntry is a follower/following list row with the edge timestamp.
type FollowEntry struct {
	ID         int64     `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	FullName   string    `db:"full_name" json:"fullName"`
	Avatar     string    `db:"avatar" json:"avatar"`
	Verified   bool      `db:"verified" json:"verified"`
	FollowedAt time.Time `db:"created_at" json:"followedAt"`
}

// FollowCounts is the follower/following aggregate pair for a user.
type FollowCounts struct {
	FollowersCount int `db:"followers_count" json:"followersCount"`
	FollowingCount int `db:"following_count" json:"followingCount"`
}

var (
	// ErrCannotFollowSelf is returned when a user tries to follow themselves.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")

	// ErrUserIDRequired is returned when the toggle body has no user id.
	ErrUserIDRequired = errors.New("user ID is required")
)
