package service

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// PostService owns post creation, deletion and the single-post and
// per-user read paths.
type PostService struct {
	postRepo repository.PostRepository
	media    *MediaService
}

func NewPostService(postRepo repository.PostRepository, media *MediaService) *PostService {
	return &PostService{
		postRepo: postRepo,
		media:    media,
	}
}

// Create stores the uploaded image and inserts the post.
func (s *PostService) Create(ctx context.Context, userID int64, caption, location string, file multipart.File, header *multipart.FileHeader) (*model.Post, error) {
	caption = strings.TrimSpace(caption)
	if len(caption) > model.MaxCaptionLength {
		return nil, model.ErrContentTooLong
	}

	imageURL, err := s.media.SavePostImage(file, header)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:   userID,
		Caption:  caption,
		ImageURL: imageURL,
		Location: strings.TrimSpace(location),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		// The row never existed; don't leave the file orphaned.
		if cleanupErr := s.media.Delete(imageURL); cleanupErr != nil {
			log.Printf("[PostService] failed to clean up image after insert error: %v", cleanupErr)
		}
		return nil, err
	}

	return post, nil
}

// GetByID returns a post with viewer-relative aggregates. viewerID 0
// means anonymous.
func (s *PostService) GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

// GetByUsername returns a page of a user's posts, newest first.
func (s *PostService) GetByUsername(ctx context.Context, username string, viewerID int64, page model.Page) ([]model.Post, error) {
	return s.postRepo.GetByUsername(ctx, username, viewerID, page)
}

// Delete removes a post the actor owns, then its image file. Likes,
// comments and notifications cascade in the schema.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID, userID); err != nil {
		return err
	}

	if err := s.media.Delete(post.ImageURL); err != nil {
		// The post is gone; a stranded file is only disk noise.
		log.Printf("[PostService] failed to delete image for post %d: %v", postID, err)
	}
	return nil
}
