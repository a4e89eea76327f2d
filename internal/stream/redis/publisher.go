package redis

import (
	"context"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/redis/go-redis/v9"
)

// Publisher appends sampling requests to a stream.
type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

// Publish returns the id Redis assigned to the entry.
func (p *Publisher) Publish(ctx context.Context, request models.SessionRequest) (string, error) {
	values, err := EncodeRequest(request)
	if err != nil {
		return "", err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Result()
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
