package service

import (
	"context"
	"log"

	"pixelgram/internal/model"
	"pixelgram/internal/queue"
	"pixelgram/internal/repository"
)

// NotificationService writes notification rows and fans the event out to
// the notification stream. The row is the durable record; the stream only
// drives real-time delivery.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        queue.Publisher
}

func NewNotificationService(notificationRepo repository.NotificationRepository, publisher queue.Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// NotifyLike records a like notification. Self-likes never notify.
func (s *NotificationService) NotifyLike(ctx context.Context, recipientID int64, actor *Claims, postID int64) {
	if recipientID == actor.UserID {
		return
	}

	message := actor.Username + " liked your post"
	n := &model.Notification{
		UserID:     recipientID,
		FromUserID: actor.UserID,
		Type:       model.NotificationTypeLike,
		PostID:     &postID,
		Message:    message,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		// The like itself succeeded; losing the notification is acceptable.
		log.Printf("[NotificationService] failed to create like notification: recipient=%d actor=%d err=%v",
			recipientID, actor.UserID, err)
		return
	}

	s.publish(ctx, queue.NewPostLikedEvent(recipientID, actor.UserID, actor.Username, message, postID))
}

// NotifyComment records a comment notification. Commenting on your own
// post never notifies.
func (s *NotificationService) NotifyComment(ctx context.Context, recipientID int64, actor *Claims, postID int64) {
	if recipientID == actor.UserID {
		return
	}

	message := actor.Username + " commented on your post"
	n := &model.Notification{
		UserID:     recipientID,
		FromUserID: actor.UserID,
		Type:       model.NotificationTypeComment,
		PostID:     &postID,
		Message:    message,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("[NotificationService] failed to create comment notification: recipient=%d actor=%d err=%v",
			recipientID, actor.UserID, err)
		return
	}

	s.publish(ctx, queue.NewPostCommentedEvent(recipientID, actor.UserID, actor.Username, message, postID))
}

// NotifyFollow records a follow notification.
func (s *NotificationService) NotifyFollow(ctx context.Context, recipientID int64, actor *Claims) {
	if recipientID == actor.UserID {
		return
	}

	message := actor.Username + " started following you"
	n := &model.Notification{
		UserID:     recipientID,
		FromUserID: actor.UserID,
		Type:       model.NotificationTypeFollow,
		Message:    message,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("[NotificationService] failed to create follow notification: recipient=%d actor=%d err=%v",
			recipientID, actor.UserID, err)
		return
	}

	s.publish(ctx, queue.NewUserFollowedEvent(recipientID, actor.UserID, actor.Username, message))
}

// List returns the recipient's notifications with the unread badge count.
func (s *NotificationService) List(ctx context.Context, userID int64, page model.Page) (*model.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.GetByUserID(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkAllRead clears the recipient's unread flags.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// UnreadCount returns the unread badge count on its own.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// publish is fire-and-forget: real-time delivery is best effort and never
// fails the mutation.
func (s *NotificationService) publish(ctx context.Context, event queue.NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
		log.Printf("[NotificationService] failed to publish %s event: recipient=%d err=%v",
			event.Type, event.RecipientID, err)
	}
}
