package service

import (
	"context"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// FeedService composes the home feed and the explore surface. Both are
// assembled per request from the base tables; nothing is precomputed.
type FeedService struct {
	postRepo repository.PostRepository
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// GetFeed returns the viewer's home feed: posts by followed users and the
// viewer's own, newest first. A viewer who follows nobody still sees
// their own posts.
func (s *FeedService) GetFeed(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error) {
	return s.postRepo.GetFeed(ctx, viewerID, page)
}

// GetExplore returns a randomly ordered page across all posts. The order
// re-rolls every call, so pages may repeat or skip posts.
func (s *FeedService) GetExplore(ctx context.Context, viewerID int64, page model.Page) ([]model.Post, error) {
	return s.postRepo.GetExplore(ctx, viewerID, page)
}
