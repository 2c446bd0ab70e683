package repository

import (
	"context"

	"pixelgram/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// GetProfile returns the profile with follower/following/post counts
	// recomputed from the base tables. viewerID 0 means anonymous.
	GetProfile(ctx context.Context, username string, viewerID int64) (*model.Profile, error)
	Update(ctx context.Context, userID int64, update *model.ProfileUpdate) error
	Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.UserSummary, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// GetByID returns a post with author fields, fresh like/comment counts
	// and the viewer's like flag. viewerID 0 means anonymous.
	GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error)
	// GetFeed returns posts authored by users the viewer follows plus the
	// viewer's own, newest first.
	GetFeed(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error)
	// GetExplore returns a random page of posts from the whole corpus.
	GetExplore(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error)
	GetByUsername(ctx context.Context, username string, viewerID int64, page model.Page) ([]model.Post, error)
	GetAuthorID(ctx context.Context, postID int64) (int64, error)
	// Delete removes the post only when userID owns it.
	Delete(ctx context.Context, postID, userID int64) error
}

type LikeRepository interface {
	Exists(ctx context.Context, postID, userID int64) (bool, error)
	Create(ctx context.Context, postID, userID int64) error
	Delete(ctx context.Context, postID, userID int64) error
	Count(ctx context.Context, postID int64) (int, error)
	GetLikers(ctx context.Context, postID int64, limit int) ([]model.Liker, error)
}

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	Create(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) error
	Counts(ctx context.Context, userID int64) (*model.FollowCounts, error)
	FollowersCount(ctx context.Context, userID int64) (int, error)
	// GetSuggestions returns users the viewer does not follow, ranked by
	// follower count with random tie-breaks.
	GetSuggestions(ctx context.Context, viewerID int64, limit int) ([]model.Suggestion, error)
	GetMutual(ctx context.Context, viewerID, targetID int64, limit int) ([]model.UserSummary, error)
	GetFollowers(ctx context.Context, userID int64) ([]model.FollowEntry, error)
	GetFollowing(ctx context.Context, userID int64) ([]model.FollowEntry, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	GetByPostID(ctx context.Context, postID int64, page model.Page) ([]model.Comment, error)
	// Delete removes the comment only when userID owns it.
	Delete(ctx context.Context, commentID, userID int64) error
	Count(ctx context.Context, postID int64) (int, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	GetByID(ctx context.Context, storyID int64) (*model.Story, error)
	// GetFeed returns unexpired stories by the viewer and the users they
	// follow, with the viewed flag resolved for the viewer.
	GetFeed(ctx context.Context, viewerID int64) ([]model.Story, error)
	MarkViewed(ctx context.Context, storyID, viewerID int64) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByUserID(ctx context.Context, userID int64, page model.Page) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}
