package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the notification stream
const (
	EventPostLiked     = "post_liked"
	EventPostCommented = "post_commented"
	EventUserFollowed  = "user_followed"
)

// Stream names
const (
	StreamNotifications = "stream:notifications"
)

// Consumer group name for notification workers
const (
	ConsumerGroupNotifications = "notification_workers"
)

// NotificationEvent is published after a like, comment or follow mutation
// commits. Workers deliver it to connected clients; the durable
// notification row is already written by the time the event exists.
type NotificationEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`

	RecipientID   int64  `json:"recipient_id"`
	ActorID       int64  `json:"actor_id"`
	ActorUsername string `json:"actor_username"`
	Message       string `json:"message"`

	// Set for like and comment events.
	PostID int64 `json:"post_id,omitempty"`
}

// NewPostLikedEvent creates an event for a like landing on a post.
func NewPostLikedEvent(recipientID, actorID int64, actorUsername, message string, postID int64) NotificationEvent {
	return NotificationEvent{
		Type:          EventPostLiked,
		Timestamp:     time.Now().Unix(),
		RecipientID:   recipientID,
		ActorID:       actorID,
		ActorUsername: actorUsername,
		Message:       message,
		PostID:        postID,
	}
}

// NewPostCommentedEvent creates an event for a new comment on a post.
func NewPostCommentedEvent(recipientID, actorID int64, actorUsername, message string, postID int64) NotificationEvent {
	return NotificationEvent{
		Type:          EventPostCommented,
		Timestamp:     time.Now().Unix(),
		RecipientID:   recipientID,
		ActorID:       actorID,
		ActorUsername: actorUsername,
		Message:       message,
		PostID:        postID,
	}
}

// NewUserFollowedEvent creates an event for a new follower.
func NewUserFollowedEvent(recipientID, actorID int64, actorUsername, message string) NotificationEvent {
	return NotificationEvent{
		Type:          EventUserFollowed,
		Timestamp:     time.Now().Unix(),
		RecipientID:   recipientID,
		ActorID:       actorID,
		ActorUsername: actorUsername,
		Message:       message,
	}
}

// ToMap converts the event to a map for Redis XADD. Streams store
// field-value pairs, so the event serializes to JSON in a "data" field.
func (e NotificationEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseNotificationEvent parses an event from Redis stream message values.
func ParseNotificationEvent(values map[string]interface{}) (NotificationEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return NotificationEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event NotificationEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return NotificationEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
