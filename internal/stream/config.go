package stream

import "github.com/povarna/generative-ai-agents/consistency-agent/internal/stream/redis"

const (
	DefaultRequestStream = "sampling-requests"
	DefaultResultStream  = "sampling-results"
	DefaultGroup         = "consistency-agent"
)

type StreamConfig struct {
	Provider    string // redis, kafka, sqs, etc
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConfig(provider string, redisConfig *redis.RedisStreamConfig) *StreamConfig {
	return &StreamConfig{
		Provider:    provider,
		RedisConfig: redisConfig,
	}
}
