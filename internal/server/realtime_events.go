package server

import (
	"context"
	"log/slog"
	"time"

	"snsapi/internal/middleware"
)

const publishTimeout = 2 * time.Second

// publishEvent hands a change event to the notifier. Publishing is best effort:
// the request has already committed, so failures are logged and swallowed.
func (s *Server) publishEvent(ctx context.Context, eventType string, payload interface{}) {
	if s.notifier == nil || !s.featureFlags.Enabled("events", "") {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.notifier.Publish(ctx, eventType, payload); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
