package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/stream"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	consumerName := os.Getenv("HOSTNAME")
	if consumerName == "" {
		consumerName = "consistency-worker"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	streamCfg := stream.NewStreamConfig("redis", redis.NewRedisStreamConfig(
		redisAddr,
		os.Getenv("REDIS_PASSWORD"),
		stream.DefaultRequestStream,
		stream.DefaultResultStream,
		stream.DefaultGroup,
		consumerName,
	))

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Executor, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}
	defer func() {
		if err := consumer.Stop(); err != nil {
			log.Warn().Err(err).Msg("Failed to close stream consumer")
		}
	}()

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Consumer stopped with error")
	}

	log.Info().Msg("Consistency Agent stopped")
}
