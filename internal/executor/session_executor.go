package executor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/rs/zerolog"
)

// RequestResolver turns wire requests into complete SamplingRequests.
type RequestResolver interface {
	Resolve(session models.SessionRequest) (models.SamplingRequest, error)
	ApplyDefaults(request models.SamplingRequest) models.SamplingRequest
}

// PrecheckRunner validates a request before any call is made
type PrecheckRunner interface {
	Run(request models.SamplingRequest) error
}

// Sampler issues the repeated completion calls
type Sampler interface {
	Sample(ctx context.Context, request models.SamplingRequest, progress models.ProgressFunc) (models.ResponseSet, error)
}

// Aggregator groups responses into a frequency table and consistency score
type Aggregator interface {
	Aggregate(responses models.ResponseSet, numCalls int) models.Aggregation
}

type Executor struct {
	resolver   RequestResolver
	prechecks  PrecheckRunner
	sampler    Sampler
	aggregator Aggregator
	logger     *zerolog.Logger
}

func NewExecutor(
	resolver RequestResolver,
	prechecks PrecheckRunner,
	sampler Sampler,
	aggregator Aggregator,
	logger *zerolog.Logger,
) *Executor {
	return &Executor{
		resolver:   resolver,
		prechecks:  prechecks,
		sampler:    sampler,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Execute runs one sampling session.
func (e *Executor) Execute(ctx context.Context, request models.SamplingRequest) (models.SessionResult, error) {
	return e.ExecuteWithProgress(ctx, request, nil)
}

// ExecuteWithProgress runs one sampling session and reports each completed call.
// Invalid requests fail with an InputError before the sampler is invoked.
func (e *Executor) ExecuteWithProgress(ctx context.Context, request models.SamplingRequest, progress models.ProgressFunc) (models.SessionResult, error) {
	if e.resolver != nil {
		request = e.resolver.ApplyDefaults(request)
	}

	if err := e.prechecks.Run(request); err != nil {
		e.logger.Warn().Err(err).Str("model", request.Model).Msg("request rejected")
		return models.SessionResult{}, err
	}

	return e.run(ctx, request, progress)
}

// run samples and aggregates a request that has already passed the prechecks.
func (e *Executor) run(ctx context.Context, request models.SamplingRequest, progress models.ProgressFunc) (models.SessionResult, error) {
	id := uuid.NewString()
	logger := e.logger.With().Str("sessionID", id).Str("model", request.Model).Logger()

	logger.Info().
		Int("numCalls", request.NumCalls).
		Float64("temperature", request.Temperature).
		Msg("starting sampling session")

	startedAt := time.Now()
	responses, err := e.sampler.Sample(ctx, request, progress)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(startedAt)).Msg("sampling session failed")
		return models.SessionResult{}, err
	}

	aggregation := e.aggregator.Aggregate(responses, request.NumCalls)

	result := models.SessionResult{
		ID:          id,
		Request:     request,
		Responses:   responses,
		Frequencies: aggregation.Frequencies,
		UniqueCount: aggregation.UniqueCount,
		Consistency: aggregation.Consistency,
		StartedAt:   startedAt,
		Duration:    time.Since(startedAt),
	}

	logger.Info().
		Int("uniqueCount", result.UniqueCount).
		Float64("consistency", result.Consistency).
		Dur("duration", result.Duration).
		Msg("sampling session complete")

	return result, nil
}

// ExecuteSession resolves a wire request and runs it. The event id is carried onto the result.
func (e *Executor) ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error) {
	request, err := e.Resolve(session)
	if err != nil {
		return models.SessionResult{}, err
	}

	result, err := e.run(ctx, request, progress)
	if err != nil {
		return result, err
	}
	result.EventID = session.EventID
	return result, nil
}

// Resolve applies presets and defaults to a wire request and validates it without sampling.
func (e *Executor) Resolve(session models.SessionRequest) (models.SamplingRequest, error) {
	if e.resolver == nil {
		return models.SamplingRequest{}, models.NewInputError("request", "no catalog configured")
	}
	request, err := e.resolver.Resolve(session)
	if err != nil {
		return models.SamplingRequest{}, err
	}
	if err := e.prechecks.Run(request); err != nil {
		return models.SamplingRequest{}, err
	}
	return request, nil
}
