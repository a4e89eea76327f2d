package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/stream"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	data := flag.String("d", "", "Inline JSON SessionRequest")
	streamName := flag.String("stream", stream.DefaultRequestStream, "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*data, *streamName); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, streamName string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	var req models.SessionRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	ctx := context.Background()
	cfg := stream.NewStreamConfig("redis", &redis.RedisStreamConfig{
		RedisAddr:     addr,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Stream:        streamName,
	})

	publisher, err := stream.NewRequestPublisher(ctx, cfg, &log.Logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	id, err := publisher.Publish(ctx, req)
	if err != nil {
		return err
	}

	log.Info().Str("stream", streamName).Str("id", id).Str("event_id", req.EventID).Msg("Published successfully!")
	return nil
}
