package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pixelgram/internal/model"
)

// mockCommentRepository implements repository.CommentRepository.
type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	getByIDFn     func(ctx context.Context, commentID int64) (*model.Comment, error)
	getByPostIDFn func(ctx context.Context, postID int64, page model.Page) ([]model.Comment, error)
	deleteFn      func(ctx context.Context, commentID, userID int64) error
	countFn       func(ctx context.Context, postID int64) (int, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) GetByPostID(ctx context.Context, postID int64, page model.Page) ([]model.Comment, error) {
	if m.getByPostIDFn != nil {
		return m.getByPostIDFn(ctx, postID, page)
	}
	return []model.Comment{}, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, userID)
	}
	return nil
}

func (m *mockCommentRepository) Count(ctx context.Context, postID int64) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, postID)
	}
	return 0, nil
}

func newTestCommentService(commentRepo *mockCommentRepository, postRepo *mockPostRepository, notifRepo *mockNotificationRepository) *CommentService {
	return NewCommentService(commentRepo, postRepo, NewNotificationService(notifRepo, nil))
}

func TestCommentService_Create_Success(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	commentRepo := &mockCommentRepository{
		createFn: func(ctx context.Context, comment *model.Comment) error {
			comment.ID = 5
			comment.Username = "alice"
			return nil
		},
	}
	postRepo := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}

	svc := newTestCommentService(commentRepo, postRepo, notifRepo)
	actor := &Claims{UserID: 1, Username: "alice"}

	comment, err := svc.Create(context.Background(), actor, &model.CreateCommentRequest{
		PostID:  10,
		Content: "  nice shot  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.Content != "nice shot" {
		t.Errorf("content = %q, want trimmed %q", comment.Content, "nice shot")
	}

	if len(notifRepo.created) != 1 {
		t.Fatalf("notifications created = %d, want 1", len(notifRepo.created))
	}
	if notifRepo.created[0].Message != "alice commented on your post" {
		t.Errorf("message = %q, want %q", notifRepo.created[0].Message, "alice commented on your post")
	}
}

func TestCommentService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.CreateCommentRequest
		wantErr error
	}{
		{"missing post id", model.CreateCommentRequest{Content: "hi"}, model.ErrPostIDRequired},
		{"empty content", model.CreateCommentRequest{PostID: 1, Content: "   "}, model.ErrContentRequired},
		{"too long", model.CreateCommentRequest{PostID: 1, Content: strings.Repeat("a", model.MaxCommentLength+1)}, model.ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := &mockCommentRepository{}
			svc := newTestCommentService(commentRepo, &mockPostRepository{
				getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
					return 99, nil
				},
			}, &mockNotificationRepository{})

			_, err := svc.Create(context.Background(), &Claims{UserID: 1}, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if commentRepo.createCalls != 0 {
				t.Error("Create should not be called for invalid input")
			}
		})
	}
}

func TestCommentService_Create_PostMissing(t *testing.T) {
	svc := newTestCommentService(&mockCommentRepository{}, &mockPostRepository{}, &mockNotificationRepository{})

	_, err := svc.Create(context.Background(), &Claims{UserID: 1}, &model.CreateCommentRequest{
		PostID:  10,
		Content: "hello",
	})
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestCommentService_Create_OwnPost_NoNotification(t *testing.T) {
	notifRepo := &mockNotificationRepository{}
	svc := newTestCommentService(&mockCommentRepository{}, &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 1, nil
		},
	}, notifRepo)

	_, err := svc.Create(context.Background(), &Claims{UserID: 1, Username: "alice"}, &model.CreateCommentRequest{
		PostID:  10,
		Content: "first!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifRepo.created) != 0 {
		t.Error("commenting on your own post must not create a notification")
	}
}

func TestCommentService_Delete_NotOwner(t *testing.T) {
	svc := newTestCommentService(&mockCommentRepository{
		deleteFn: func(ctx context.Context, commentID, userID int64) error {
			return model.ErrCommentNotFound
		},
	}, &mockPostRepository{}, &mockNotificationRepository{})

	err := svc.Delete(context.Background(), 5, 2)
	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrCommentNotFound)
	}
}
