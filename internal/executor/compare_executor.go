package executor

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/rs/zerolog"
)

// SessionRunner runs one resolved session.
type SessionRunner interface {
	ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error)
}

// CompareExecutor runs the same session against several models, one after another.
type CompareExecutor struct {
	sessions SessionRunner
	logger   *zerolog.Logger
}

func NewCompareExecutor(sessions SessionRunner, logger *zerolog.Logger) *CompareExecutor {
	return &CompareExecutor{
		sessions: sessions,
		logger:   logger,
	}
}

// Compare returns one result per model in the given order. The first failing model aborts the comparison.
func (e *CompareExecutor) Compare(ctx context.Context, session models.SessionRequest, modelIDs []string) ([]models.SessionResult, error) {
	if len(modelIDs) == 0 {
		return nil, models.NewInputError("models", "at least one model is required")
	}

	seen := make(map[string]bool, len(modelIDs))
	for _, id := range modelIDs {
		if seen[id] {
			return nil, models.NewInputError("models", "duplicate model %q", id)
		}
		seen[id] = true
	}

	results := make([]models.SessionResult, 0, len(modelIDs))
	for _, id := range modelIDs {
		perModel := session
		perModel.Model = id

		result, err := e.sessions.ExecuteSession(ctx, perModel, nil)
		if err != nil {
			e.logger.Error().Err(err).Str("model", id).Msg("comparison aborted")
			return nil, fmt.Errorf("model %s: %w", id, err)
		}
		results = append(results, result)
	}

	e.logger.Info().Int("models", len(results)).Msg("comparison complete")
	return results, nil
}
