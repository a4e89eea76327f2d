package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type SessionExecutor interface {
	ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error)
}

type Consumer struct {
	client       *redis.Client
	stream       string
	resultStream string
	groupID      string
	consumerName string
	resultMaxLen int64
	executor     SessionExecutor
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, exec SessionExecutor, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		resultMaxLen: cfg.ResultMaxLen,
		executor:     exec,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("result_stream", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

// process runs one session and publishes its outcome. The message is acked in every case,
// so a request that cannot be served is not redelivered.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	defer c.ack(ctx, msg.ID)

	values, err := c.handle(ctx, msg)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to handle message")
		return
	}

	args := &redis.XAddArgs{
		Stream: c.resultStream,
		Values: values,
	}
	if c.resultMaxLen > 0 {
		args.MaxLen = c.resultMaxLen
		args.Approx = true
	}
	if err := c.client.XAdd(ctx, args).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish result")
	}
}

// handle decodes the message and runs the session, returning the result stream fields.
// Only undecodable messages return an error; session failures are published as results.
func (c *Consumer) handle(ctx context.Context, msg redis.XMessage) (map[string]any, error) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	request, err := DecodeRequest(msg)
	if err != nil {
		return nil, err
	}

	result, runErr := c.executor.ExecuteSession(ctx, request, nil)
	if runErr != nil {
		c.logger.Warn().Err(runErr).Str("id", msg.ID).Str("event_id", request.EventID).Msg("Sampling session failed")
	} else {
		c.logger.Info().
			Str("id", msg.ID).
			Str("event_id", request.EventID).
			Int("unique_count", result.UniqueCount).
			Float64("consistency", result.Consistency).
			Msg("Sampling session complete")
	}

	return EncodeResult(request.EventID, result, runErr)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
