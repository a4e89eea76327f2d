package sampler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers    = 5
	DefaultRunTimeout = 120 * time.Second
)

var ErrEmptyResponse = errors.New("completion returned no response")

type Config struct {
	Workers    int
	RunTimeout time.Duration
}

// Sampler issues the same completion call NumCalls times and collects the trimmed outputs.
type Sampler struct {
	client llm.CompletionClient
	cfg    Config
	logger *zerolog.Logger
}

func NewSampler(client llm.CompletionClient, cfg Config, logger *zerolog.Logger) *Sampler {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}
	return &Sampler{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Sample runs every call of the request through a bounded pool. The first failed call
// cancels the rest and no responses are returned. Responses are in completion order.
func (s *Sampler) Sample(ctx context.Context, request models.SamplingRequest, progress models.ProgressFunc) (models.ResponseSet, error) {
	if request.NumCalls < 1 {
		return nil, models.NewInputError("num_calls", "must be at least 1, got %d", request.NumCalls)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	completion := llm.CompletionRequest{
		Model:            request.Model,
		SystemPrompt:     request.SystemPrompt,
		UserPrompt:       request.Prompt,
		Temperature:      request.Temperature,
		MaxTokens:        request.MaxTokens,
		TopP:             request.TopP,
		FrequencyPenalty: request.FrequencyPenalty,
	}

	var (
		mu        sync.Mutex
		responses = make(models.ResponseSet, 0, request.NumCalls)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	start := time.Now()
	for i := 0; i < request.NumCalls; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			resp, err := s.client.Generate(gctx, completion)
			if err != nil {
				return fmt.Errorf("call %d: %w", i+1, err)
			}
			if resp == nil {
				return fmt.Errorf("call %d: %w", i+1, ErrEmptyResponse)
			}

			// progress is reported under the lock so Completed never goes backwards
			mu.Lock()
			defer mu.Unlock()
			responses = append(responses, strings.TrimSpace(resp.Content))
			if progress != nil {
				progress(models.Progress{Completed: len(responses), Total: request.NumCalls})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// the run deadline takes precedence over the cancellation it caused
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("run exceeded %s: %w", s.cfg.RunTimeout, context.DeadlineExceeded)
		}
		s.logger.Error().
			Err(err).
			Str("model", request.Model).
			Int("num_calls", request.NumCalls).
			Msg("sampling aborted")
		return nil, fmt.Errorf("%w: %w", models.ErrTransport, err)
	}

	s.logger.Debug().
		Str("model", request.Model).
		Int("num_calls", request.NumCalls).
		Int("workers", s.cfg.Workers).
		Dur("elapsed", time.Since(start)).
		Msg("sampling complete")

	return responses, nil
}
