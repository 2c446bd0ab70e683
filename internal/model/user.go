package model

import (
	"errors"
	"time"
)

// User represents a user row. The password hash never leaves the server.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	FullName  string    `db:"full_name" json:"fullName"`
	Bio       *string   `db:"bio" json:"bio"`
	Avatar    string    `db:"avatar" json:"avatar"`
	Verified  bool      `db:"verified" json:"verified"`
	Private   bool      `db:"private" json:"private"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UserSummary is the lightweight projection joined onto posts, comments,
// follower lists and suggestions.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
	Avatar   string `db:"avatar" json:"avatar"`
	Verified bool   `db:"verified" json:"verified"`

	// Viewer-relative enrichment.
	IsFollowing  bool `db:"is_following" json:"isFollowing"`
	IsOwnProfile bool `db:"-" json:"isOwnProfile"`
}

// Profile is a user enriched with per-request derived aggregates. Counts
// are recomputed on every read; there are no stored counters.
type Profile struct {
	ID             int64   `db:"id" json:"id"`
	Username       string  `db:"username" json:"username"`
	FullName       string  `db:"full_name" json:"fullName"`
	Bio            *string `db:"bio" json:"bio"`
	Avatar         string  `db:"avatar" json:"avatar"`
	Verified       bool    `db:"verified" json:"verified"`
	Private        bool    `db:"private" json:"private"`
	FollowersCount int     `db:"followers_count" json:"followersCount"`
	FollowingCount int     `db:"following_count" json:"followingCount"`
	PostsCount     int     `db:"posts_count" json:"postsCount"`
	IsFollowing    bool    `db:"is_following" json:"isFollowing"`
	IsOwnProfile   bool    `db:"-" json:"isOwnProfile"`
}

// RegisterRequest is the sign-up request body.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"max=100"`
}

// LoginRequest accepts a username or an email in the username field.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ProfileUpdate carries one optional field per updatable attribute. The
// repository translates present fields into a parameterized UPDATE; user
// input never reaches query text.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Private  *bool
	Avatar   *string
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.Bio == nil && p.Private == nil && p.Avatar == nil
}

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when the username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoFieldsToUpdate is returned for an empty profile update.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrValidation wraps request validation failures; the wrapped message
	// is safe to show to the client.
	ErrValidation = errors.New("validation failed")
)
