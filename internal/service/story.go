package service

import (
	"context"
	"mime/multipart"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// StoryService owns ephemeral stories: creation, the story feed and view
// receipts.
type StoryService struct {
	storyRepo repository.StoryRepository
	media     *MediaService
}

func NewStoryService(storyRepo repository.StoryRepository, media *MediaService) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		media:     media,
	}
}

// Create stores the frame image and inserts a story expiring in 24 hours.
func (s *StoryService) Create(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (*model.Story, error) {
	imageURL, err := s.media.SaveStoryImage(file, header)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		UserID:   userID,
		ImageURL: imageURL,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// GetFeed returns unexpired stories from the viewer and their follow set.
func (s *StoryService) GetFeed(ctx context.Context, viewerID int64) ([]model.Story, error) {
	return s.storyRepo.GetFeed(ctx, viewerID)
}

// MarkViewed records that the viewer saw a story. Repeat views are
// no-ops.
func (s *StoryService) MarkViewed(ctx context.Context, storyID, viewerID int64) error {
	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		return err
	}
	return s.storyRepo.MarkViewed(ctx, storyID, viewerID)
}
