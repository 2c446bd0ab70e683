package service

import (
	"context"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// LikeService owns the like toggle and the read endpoints around it.
type LikeService struct {
	likeRepo      repository.LikeRepository
	postRepo      repository.PostRepository
	notifications *NotificationService
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	notifications *NotificationService,
) *LikeService {
	return &LikeService{
		likeRepo:      likeRepo,
		postRepo:      postRepo,
		notifications: notifications,
	}
}

// Toggle flips the viewer's like on a post and returns the resulting
// state with a fresh count. The check-then-write pair is not atomic;
// concurrent duplicate inserts collapse on the unique constraint and the
// returned count is re-read afterwards either way.
func (s *LikeService) Toggle(ctx context.Context, actor *Claims, postID int64) (*model.ToggleLikeResult, error) {
	if postID == 0 {
		return nil, model.ErrPostIDRequired
	}

	authorID, err := s.postRepo.GetAuthorID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, postID, actor.UserID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.likeRepo.Delete(ctx, postID, actor.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := s.likeRepo.Create(ctx, postID, actor.UserID); err != nil {
			return nil, err
		}
		s.notifications.NotifyLike(ctx, authorID, actor, postID)
	}

	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &model.ToggleLikeResult{IsLiked: !liked, LikesCount: count}, nil
}

// GetLikers lists the users who liked a post.
func (s *LikeService) GetLikers(ctx context.Context, postID int64, limit int) ([]model.Liker, error) {
	if _, err := s.postRepo.GetAuthorID(ctx, postID); err != nil {
		return nil, err
	}
	return s.likeRepo.GetLikers(ctx, postID, limit)
}

// Count returns the like count for a post.
func (s *LikeService) Count(ctx context.Context, postID int64) (int, error) {
	return s.likeRepo.Count(ctx, postID)
}

// Check reports whether the viewer has liked a post.
func (s *LikeService) Check(ctx context.Context, postID, viewerID int64) (bool, error) {
	return s.likeRepo.Exists(ctx, postID, viewerID)
}
