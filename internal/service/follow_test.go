package service

import (
	"context"
	"errors"
	"testing"

	"pixelgram/internal/model"
)

// mockFollowRepository implements repository.FollowRepository.
type mockFollowRepository struct {
	existsFn         func(ctx context.Context, followerID, followingID int64) (bool, error)
	createFn         func(ctx context.Context, followerID, followingID int64) error
	deleteFn         func(ctx context.Context, followerID, followingID int64) error
	countsFn         func(ctx context.Context, userID int64) (*model.FollowCounts, error)
	followersCountFn func(ctx context.Context, userID int64) (int, error)
	getSuggestionsFn func(ctx context.Context, viewerID int64, limit int) ([]model.Suggestion, error)
	getMutualFn      func(ctx context.Context, viewerID, targetID int64, limit int) ([]model.UserSummary, error)
	getFollowersFn   func(ctx context.Context, userID int64) ([]model.FollowEntry, error)
	getFollowingFn   func(ctx context.Context, userID int64) ([]model.FollowEntry, error)

	createCalls int
	deleteCalls int
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followingID int64) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Counts(ctx context.Context, userID int64) (*model.FollowCounts, error) {
	if m.countsFn != nil {
		return m.countsFn(ctx, userID)
	}
	return &model.FollowCounts{}, nil
}

func (m *mockFollowRepository) FollowersCount(ctx context.Context, userID int64) (int, error) {
	if m.followersCountFn != nil {
		return m.followersCountFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockFollowRepository) GetSuggestions(ctx context.Context, viewerID int64, limit int) ([]model.Suggestion, error) {
	if m.getSuggestionsFn != nil {
		return m.getSuggestionsFn(ctx, viewerID, limit)
	}
	return []model.Suggestion{}, nil
}

func (m *mockFollowRepository) GetMutual(ctx context.Context, viewerID, targetID int64, limit int) ([]model.UserSummary, error) {
	if m.getMutualFn != nil {
		return m.getMutualFn(ctx, viewerID, targetID, limit)
	}
	return []model.UserSummary{}, nil
}

func (m *mockFollowRepository) GetFollowers(ctx context.Context, userID int64) ([]model.FollowEntry, error) {
	if m.getFollowersFn != nil {
		return m.getFollowersFn(ctx, userID)
	}
	return []model.FollowEntry{}, nil
}

func (m *mockFollowRepository) GetFollowing(ctx context.Context, userID int64) ([]model.FollowEntry, error) {
	if m.getFollowingFn != nil {
		return m.getFollowingFn(ctx, userID)
	}
	return []model.FollowEntry{}, nil
}

func newTestFollowService(followRepo *mockFollowRepository, userRepo *mockUserRepository, notifRepo *mockNotificationRepository) *FollowService {
	return NewFollowService(followRepo, userRepo, NewNotificationService(notifRepo, nil))
}

func TestFollowService_Toggle_Follow(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	followRepo := &mockFollowRepository{
		followersCountFn: func(ctx context.Context, userID int64) (int, error) {
			return 3, nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "target"}, nil
		},
	}

	svc := newTestFollowService(followRepo, userRepo, notifRepo)
	actor := &Claims{UserID: 1, Username: "alice"}

	result, err := svc.Toggle(context.Background(), actor, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsFollowing {
		t.Error("expected isFollowing=true after following")
	}
	if result.FollowersCount != 3 {
		t.Errorf("followersCount = %d, want 3", result.FollowersCount)
	}
	if followRepo.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", followRepo.createCalls)
	}

	if len(notifRepo.created) != 1 {
		t.Fatalf("notifications created = %d, want 1", len(notifRepo.created))
	}
	if notifRepo.created[0].Message != "alice started following you" {
		t.Errorf("message = %q, want %q", notifRepo.created[0].Message, "alice started following you")
	}
	if notifRepo.created[0].PostID != nil {
		t.Error("follow notification must not carry a post id")
	}
}

func TestFollowService_Toggle_Unfollow(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	followRepo := &mockFollowRepository{
		existsFn: func(ctx context.Context, followerID, followingID int64) (bool, error) {
			return true, nil
		},
		followersCountFn: func(ctx context.Context, userID int64) (int, error) {
			return 2, nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}

	svc := newTestFollowService(followRepo, userRepo, notifRepo)

	result, err := svc.Toggle(context.Background(), &Claims{UserID: 1, Username: "alice"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsFollowing {
		t.Error("expected isFollowing=false after unfollowing")
	}
	if followRepo.deleteCalls != 1 {
		t.Errorf("Delete called %d times, want 1", followRepo.deleteCalls)
	}
	if len(notifRepo.created) != 0 {
		t.Error("unfollowing must not create a notification")
	}
}

func TestFollowService_Toggle_Self(t *testing.T) {
	svc := newTestFollowService(&mockFollowRepository{}, &mockUserRepository{}, &mockNotificationRepository{})

	_, err := svc.Toggle(context.Background(), &Claims{UserID: 1}, 1)
	if !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("error = %v, want %v", err, model.ErrCannotFollowSelf)
	}
}

func TestFollowService_Toggle_TargetMissing(t *testing.T) {
	svc := newTestFollowService(&mockFollowRepository{}, &mockUserRepository{}, &mockNotificationRepository{})

	_, err := svc.Toggle(context.Background(), &Claims{UserID: 1}, 42)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestFollowService_Toggle_ZeroTarget(t *testing.T) {
	svc := newTestFollowService(&mockFollowRepository{}, &mockUserRepository{}, &mockNotificationRepository{})

	_, err := svc.Toggle(context.Background(), &Claims{UserID: 1}, 0)
	if !errors.Is(err, model.ErrUserIDRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrUserIDRequired)
	}
}

func TestFollowService_GetFollowers_UnknownUser(t *testing.T) {
	svc := newTestFollowService(&mockFollowRepository{}, &mockUserRepository{}, &mockNotificationRepository{})

	_, err := svc.GetFollowers(context.Background(), "ghost")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}
