package stream

import (
	"context"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

// StreamConsumer reads sampling requests and publishes their results.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

// RequestPublisher enqueues sampling requests for a StreamConsumer.
type RequestPublisher interface {
	Publish(ctx context.Context, request models.SessionRequest) (string, error)
	Close() error
}
