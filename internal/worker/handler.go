package worker

import (
	"context"
	"fmt"
	"log"

	"pixelgram/internal/queue"
)

// Broadcaster delivers a notification event to whatever real-time
// channel the deployment has connected clients on (websocket hub, push
// gateway). The worker only knows this boundary.
type Broadcaster interface {
	Broadcast(ctx context.Context, event queue.NotificationEvent) error
}

// Handler processes notification events from the stream.
type Handler struct {
	broadcaster Broadcaster
}

// NewHandler creates a new event handler.
func NewHandler(broadcaster Broadcaster) *Handler {
	return &Handler{broadcaster: broadcaster}
}

// HandleEvent routes an event by type. The durable notification row was
// written before the event was published, so every branch only delivers.
func (h *Handler) HandleEvent(ctx context.Context, event queue.NotificationEvent) error {
	switch event.Type {
	case queue.EventPostLiked, queue.EventPostCommented, queue.EventUserFollowed:
		return h.deliver(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}

func (h *Handler) deliver(ctx context.Context, event queue.NotificationEvent) error {
	if h.broadcaster == nil {
		return nil
	}

	if err := h.broadcaster.Broadcast(ctx, event); err != nil {
		return fmt.Errorf("broadcast %s to recipient %d: %w", event.Type, event.RecipientID, err)
	}
	return nil
}

// LogBroadcaster is the default Broadcaster: it only logs deliveries.
// Deployments with a real push channel swap in their own implementation.
type LogBroadcaster struct{}

func (LogBroadcaster) Broadcast(_ context.Context, event queue.NotificationEvent) error {
	log.Printf("[Broadcast] recipient=%d type=%s message=%q",
		event.RecipientID, event.Type, event.Message)
	return nil
}
