package service

import (
	"context"
	"strings"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// CommentService owns comment creation, deletion and listing.
type CommentService struct {
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	notifications *NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notifications *NotificationService,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		notifications: notifications,
	}
}

// Create adds a comment to a post and notifies the post's author.
func (s *CommentService) Create(ctx context.Context, actor *Claims, req *model.CreateCommentRequest) (*model.Comment, error) {
	if req.PostID == 0 {
		return nil, model.ErrPostIDRequired
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrContentTooLong
	}

	authorID, err := s.postRepo.GetAuthorID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  req.PostID,
		UserID:  actor.UserID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifications.NotifyComment(ctx, authorID, actor, req.PostID)
	return comment, nil
}

// Delete removes a comment the actor authored. A missing comment and a
// foreign comment are indistinguishable to the caller.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	return s.commentRepo.Delete(ctx, commentID, userID)
}

// GetByPostID lists a post's comments oldest first.
func (s *CommentService) GetByPostID(ctx context.Context, postID int64, page model.Page) ([]model.Comment, error) {
	if _, err := s.postRepo.GetAuthorID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, page)
}

// Count returns the comment count for a post.
func (s *CommentService) Count(ctx context.Context, postID int64) (int, error) {
	return s.commentRepo.Count(ctx, postID)
}
