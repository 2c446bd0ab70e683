package service

import (
	"context"
	"errors"
	"testing"

	"pixelgram/internal/model"
)

// mockPostRepository implements repository.PostRepository.
type mockPostRepository struct {
	createFn        func(ctx context.Context, post *model.Post) error
	getByIDFn       func(ctx context.Context, postID, viewerID int64) (*model.Post, error)
	getFeedFn       func(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error)
	getExploreFn    func(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error)
	getByUsernameFn func(ctx context.Context, username string, viewerID int64, page model.Page) ([]model.Post, error)
	getAuthorIDFn   func(ctx context.Context, postID int64) (int64, error)
	deleteFn        func(ctx context.Context, postID, userID int64) error
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID, viewerID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetFeed(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error) {
	if m.getFeedFn != nil {
		return m.getFeedFn(ctx, viewerID, page)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) GetExplore(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error) {
	if m.getExploreFn != nil {
		return m.getExploreFn(ctx, viewerID, page)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) GetByUsername(ctx context.Context, username string, viewerID int64, page model.Page) ([]model.Post, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username, viewerID, page)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) GetAuthorID(ctx context.Context, postID int64) (int64, error) {
	if m.getAuthorIDFn != nil {
		return m.getAuthorIDFn(ctx, postID)
	}
	return 0, model.ErrPostNotFound
}

func (m *mockPostRepository) Delete(ctx context.Context, postID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID, userID)
	}
	return nil
}

// mockLikeRepository implements repository.LikeRepository.
type mockLikeRepository struct {
	existsFn    func(ctx context.Context, postID, userID int64) (bool, error)
	createFn    func(ctx context.Context, postID, userID int64) error
	deleteFn    func(ctx context.Context, postID, userID int64) error
	countFn     func(ctx context.Context, postID int64) (int, error)
	getLikersFn func(ctx context.Context, postID int64, limit int) ([]model.Liker, error)

	createCalls int
	deleteCalls int
}

func (m *mockLikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID, userID)
	}
	return false, nil
}

func (m *mockLikeRepository) Create(ctx context.Context, postID, userID int64) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockLikeRepository) Delete(ctx context.Context, postID, userID int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockLikeRepository) Count(ctx context.Context, postID int64) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, postID)
	}
	return 0, nil
}

func (m *mockLikeRepository) GetLikers(ctx context.Context, postID int64, limit int) ([]model.Liker, error) {
	if m.getLikersFn != nil {
		return m.getLikersFn(ctx, postID, limit)
	}
	return []model.Liker{}, nil
}

// mockNotificationRepository implements repository.NotificationRepository.
type mockNotificationRepository struct {
	createFn      func(ctx context.Context, n *model.Notification) error
	getByUserIDFn func(ctx context.Context, userID int64, page model.Page) ([]model.Notification, error)
	markAllReadFn func(ctx context.Context, userID int64) error
	unreadCountFn func(ctx context.Context, userID int64) (int, error)

	created []*model.Notification
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	m.created = append(m.created, n)
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepository) GetByUserID(ctx context.Context, userID int64, page model.Page) ([]model.Notification, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID, page)
	}
	return []model.Notification{}, nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

func (m *mockNotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(ctx, userID)
	}
	return 0, nil
}

func TestLikeService_Toggle_Like(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	likeRepo := &mockLikeRepository{
		existsFn: func(ctx context.Context, postID, userID int64) (bool, error) {
			return false, nil
		},
		countFn: func(ctx context.Context, postID int64) (int, error) {
			return 5, nil
		},
	}
	postRepo := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil // author differs from actor
		},
	}

	svc := NewLikeService(likeRepo, postRepo, NewNotificationService(notifRepo, nil))
	actor := &Claims{UserID: 1, Username: "alice"}

	result, err := svc.Toggle(context.Background(), actor, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsLiked {
		t.Error("expected isLiked=true after liking")
	}
	if result.LikesCount != 5 {
		t.Errorf("likesCount = %d, want 5", result.LikesCount)
	}
	if likeRepo.createCalls != 1 || likeRepo.deleteCalls != 0 {
		t.Errorf("create=%d delete=%d, want 1/0", likeRepo.createCalls, likeRepo.deleteCalls)
	}

	// Notification row must exist with the canonical message
	if len(notifRepo.created) != 1 {
		t.Fatalf("notifications created = %d, want 1", len(notifRepo.created))
	}
	n := notifRepo.created[0]
	if n.Message != "alice liked your post" {
		t.Errorf("message = %q, want %q", n.Message, "alice liked your post")
	}
	if n.UserID != 99 || n.FromUserID != 1 {
		t.Errorf("recipient/actor = %d/%d, want 99/1", n.UserID, n.FromUserID)
	}
	if n.Type != model.NotificationTypeLike {
		t.Errorf("type = %q, want %q", n.Type, model.NotificationTypeLike)
	}
}

func TestLikeService_Toggle_Unlike(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	likeRepo := &mockLikeRepository{
		existsFn: func(ctx context.Context, postID, userID int64) (bool, error) {
			return true, nil
		},
		countFn: func(ctx context.Context, postID int64) (int, error) {
			return 4, nil
		},
	}
	postRepo := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}

	svc := NewLikeService(likeRepo, postRepo, NewNotificationService(notifRepo, nil))

	result, err := svc.Toggle(context.Background(), &Claims{UserID: 1, Username: "alice"}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsLiked {
		t.Error("expected isLiked=false after unliking")
	}
	if likeRepo.deleteCalls != 1 || likeRepo.createCalls != 0 {
		t.Errorf("create=%d delete=%d, want 0/1", likeRepo.createCalls, likeRepo.deleteCalls)
	}
	if len(notifRepo.created) != 0 {
		t.Error("unliking must not create a notification")
	}
}

func TestLikeService_Toggle_OwnPost_NoNotification(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	likeRepo := &mockLikeRepository{}
	postRepo := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 1, nil // actor likes their own post
		},
	}

	svc := NewLikeService(likeRepo, postRepo, NewNotificationService(notifRepo, nil))

	if _, err := svc.Toggle(context.Background(), &Claims{UserID: 1, Username: "alice"}, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifRepo.created) != 0 {
		t.Error("self-like must not create a notification")
	}
}

func TestLikeService_Toggle_MissingPost(t *testing.T) {
	svc := NewLikeService(&mockLikeRepository{}, &mockPostRepository{},
		NewNotificationService(&mockNotificationRepository{}, nil))

	_, err := svc.Toggle(context.Background(), &Claims{UserID: 1}, 10)
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestLikeService_Toggle_ZeroPostID(t *testing.T) {
	svc := NewLikeService(&mockLikeRepository{}, &mockPostRepository{},
		NewNotificationService(&mockNotificationRepository{}, nil))

	_, err := svc.Toggle(context.Background(), &Claims{UserID: 1}, 0)
	if !errors.Is(err, model.ErrPostIDRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrPostIDRequired)
	}
}

func TestLikeService_Toggle_NotificationFailureDoesNotFailToggle(t *testing.T) {
	notifRepo := &mockNotificationRepository{
		createFn: func(ctx context.Context, n *model.Notification) error {
			return errors.New("insert failed")
		},
	}
	likeRepo := &mockLikeRepository{
		countFn: func(ctx context.Context, postID int64) (int, error) {
			return 1, nil
		},
	}
	postRepo := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}

	svc := NewLikeService(likeRepo, postRepo, NewNotificationService(notifRepo, nil))

	result, err := svc.Toggle(context.Background(), &Claims{UserID: 1, Username: "alice"}, 10)
	if err != nil {
		t.Fatalf("toggle must succeed even when the notification insert fails: %v", err)
	}
	if !result.IsLiked {
		t.Error("expected isLiked=true")
	}
}
