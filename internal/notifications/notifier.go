package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"snsapi/internal/middleware"
	"snsapi/internal/observability"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the Redis channel every change event is published on.
const EventsChannel = "sns:events"

// Event type constants prevent typos in event names.
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
	EventPostLiked      = "post_liked"
	EventPostUnliked    = "post_unliked"
)

// Event is the JSON envelope written to EventsChannel.
type Event struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Notifier provides helpers to publish change events into Redis.
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: func() time.Time { return time.Now().UTC() }}
}

// Publish marshals an event and publishes it. A nil client is a no-op.
func (n *Notifier) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if n == nil || n.rdb == nil {
		return nil
	}

	data, err := json.Marshal(Event{Type: eventType, Payload: payload, OccurredAt: n.now()})
	if err != nil {
		observability.DomainEvents.WithLabelValues(eventType, "error").Inc()
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	if err := n.rdb.Publish(ctx, EventsChannel, data).Err(); err != nil {
		observability.DomainEvents.WithLabelValues(eventType, "error").Inc()
		return err
	}
	observability.DomainEvents.WithLabelValues(eventType, "published").Inc()
	return nil
}

// Subscribe delivers every event on EventsChannel to onEvent until ctx is
// cancelled. Malformed messages are logged and skipped.
func (n *Notifier) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, EventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					middleware.Logger.Warn("dropping malformed event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(ev)
				}()
			}
		}
	}()

	return nil
}
