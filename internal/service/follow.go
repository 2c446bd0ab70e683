package service

import (
	"context"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// FollowService owns the follow toggle, suggestions and the follow-graph
// read endpoints.
type FollowService struct {
	followRepo    repository.FollowRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *FollowService {
	return &FollowService{
		followRepo:    followRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// Toggle flips the follow edge from the actor to the target and returns
// the resulting state with the target's fresh follower count.
func (s *FollowService) Toggle(ctx context.Context, actor *Claims, targetID int64) (*model.ToggleFollowResult, error) {
	if targetID == 0 {
		return nil, model.ErrUserIDRequired
	}
	if targetID == actor.UserID {
		return nil, model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.Exists(ctx, actor.UserID, targetID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := s.followRepo.Delete(ctx, actor.UserID, targetID); err != nil {
			return nil, err
		}
	} else {
		if err := s.followRepo.Create(ctx, actor.UserID, targetID); err != nil {
			return nil, err
		}
		s.notifications.NotifyFollow(ctx, targetID, actor)
	}

	count, err := s.followRepo.FollowersCount(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &model.ToggleFollowResult{IsFollowing: !following, FollowersCount: count}, nil
}

// GetSuggestions ranks non-followed users by follower count with random
// tie-breaks, so equally popular accounts rotate between calls.
func (s *FollowService) GetSuggestions(ctx context.Context, viewerID int64, limit int) ([]model.Suggestion, error) {
	return s.followRepo.GetSuggestions(ctx, viewerID, limit)
}

// Check reports whether the viewer follows the target.
func (s *FollowService) Check(ctx context.Context, viewerID, targetID int64) (bool, error) {
	return s.followRepo.Exists(ctx, viewerID, targetID)
}

// GetMutual lists followers of the target that the viewer also follows.
func (s *FollowService) GetMutual(ctx context.Context, viewerID, targetID int64, limit int) ([]model.UserSummary, error) {
	return s.followRepo.GetMutual(ctx, viewerID, targetID, limit)
}

// GetCounts returns both follow counts for a user.
func (s *FollowService) GetCounts(ctx context.Context, userID int64) (*model.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}

// GetFollowers lists a user's followers by username.
func (s *FollowService) GetFollowers(ctx context.Context, username string) ([]model.FollowEntry, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, user.ID)
}

// GetFollowing lists the users a user follows, by username.
func (s *FollowService) GetFollowing(ctx context.Context, username string) ([]model.FollowEntry, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, user.ID)
}
