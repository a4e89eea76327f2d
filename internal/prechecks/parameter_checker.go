package prechecks

import (
	"math"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

// ParameterChecker keeps the sampling parameters inside the ranges the endpoints accept.
type ParameterChecker struct{}

func NewParameterChecker() *ParameterChecker {
	return &ParameterChecker{}
}

func (c *ParameterChecker) Name() string { return "parameter-checker" }

func (c *ParameterChecker) Check(request models.SamplingRequest) error {
	if math.IsNaN(request.Temperature) || request.Temperature < 0 || request.Temperature > 1 {
		return models.NewInputError("temperature", "must be in [0, 1], got %v", request.Temperature)
	}
	if math.IsNaN(request.TopP) || request.TopP <= 0 || request.TopP > 1 {
		return models.NewInputError("top_p", "must be in (0, 1], got %v", request.TopP)
	}
	if math.IsNaN(request.FrequencyPenalty) || request.FrequencyPenalty < -2 || request.FrequencyPenalty > 2 {
		return models.NewInputError("frequency_penalty", "must be in [-2, 2], got %v", request.FrequencyPenalty)
	}
	return nil
}
