package model

import (
	"errors"
	"time"
)

// Story is a story row joined with its author's profile fields. Stories
// expire 24 hours after creation; expired rows are filtered at read time
// and never purged here.
type Story struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`

	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
	Avatar   string `db:"avatar" json:"avatar"`

	// Viewed reports whether the viewer has already seen this story.
	Viewed bool `db:"viewed" json:"viewed"`
}

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// ErrStoryNotFound is returned when a story cannot be found or has expired.
var ErrStoryNotFound = errors.New("story not found")
