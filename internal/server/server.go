// Package server exposes the Cosmic Hub API over HTTP with an SSE event
// stream. Handlers decode transport input, delegate to the store and the
// dashboard service, and publish mutation events.
package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Mario960060/cosmichub/internal/dashboard"
	"github.com/Mario960060/cosmichub/internal/events"
	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/store"
)

// CosmicServer holds the shared state behind every API handler.
type CosmicServer struct {
	store     store.Store
	publisher events.Publisher
	sseHub    *sseHub
	dashboard *dashboard.Service
}

// NewCosmicServer returns a new CosmicServer backed by the given store and publisher.
func NewCosmicServer(s store.Store, p events.Publisher, opts ...dashboard.Option) *CosmicServer {
	return &CosmicServer{
		store:     s,
		publisher: p,
		sseHub:    newSSEHub(),
		dashboard: dashboard.New(s, opts...),
	}
}

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *CosmicServer) recordAndPublish(ctx context.Context, topic, subtaskID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "subtask_id", subtaskID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:     topic,
		SubtaskID: subtaskID,
		Actor:     actor,
		Payload:   payload,
	}); err != nil {
		slog.Warn("failed to record event", "topic", topic, "subtask_id", subtaskID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "subtask_id", subtaskID, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// inputError indicates invalid user input.
// The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
