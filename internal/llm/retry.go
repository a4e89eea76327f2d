package llm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// RetryConfig bounds the retry middleware.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryConfig mirrors the backoff the clients used before the middleware existed.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     12 * time.Second,
}

// Retry retries retryable failures with capped exponential backoff and jitter.
// Permanent errors and context errors are returned at once.
func Retry(cfg RetryConfig, logger *zerolog.Logger) Middleware {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultRetryConfig.InitialDelay
	}
	if cfg.MaxDelay < cfg.InitialDelay {
		cfg.MaxDelay = cfg.InitialDelay
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return func(next CompletionClient) CompletionClient {
		return &retrying{next: next, cfg: cfg, logger: logger}
	}
}

type retrying struct {
	next   CompletionClient
	cfg    RetryConfig
	logger *zerolog.Logger
}

func (r *retrying) Generate(ctx context.Context, request CompletionRequest) (*CompletionResponse, error) {
	var lastErr error

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		response, err := r.next.Generate(ctx, request)
		if err == nil {
			return response, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		delay := calculateBackoff(attempt, r.cfg.InitialDelay, r.cfg.MaxDelay)
		r.logger.Warn().
			Err(err).
			Str("model", request.Model).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("completion call failed, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("max retries %d exceeded: %w", r.cfg.MaxAttempts, lastErr)
}

func calculateBackoff(attempt int, initialDelay, maxDelay time.Duration) time.Duration {
	backoff := float64(initialDelay) * math.Pow(2, float64(attempt))

	if backoff > float64(maxDelay) {
		backoff = float64(maxDelay)
	}

	jitter := backoff * 0.2 * (2*rand.Float64() - 1) // +/-20%
	backoff += jitter

	return time.Duration(backoff)
}
