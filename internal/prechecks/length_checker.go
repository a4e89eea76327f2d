package prechecks

import (
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

const (
	DefaultMaxNumCalls = 50
	DefaultMaxTokens   = 4096
)

// LengthChecker bounds how many calls a session makes and how long each completion may be.
type LengthChecker struct {
	MaxNumCalls int
	MaxTokens   int
}

func NewLengthChecker(maxNumCalls int) *LengthChecker {
	return &LengthChecker{MaxNumCalls: maxNumCalls, MaxTokens: DefaultMaxTokens}
}

func (c *LengthChecker) Name() string { return "length-checker" }

func (c *LengthChecker) Check(request models.SamplingRequest) error {
	maxCalls := c.MaxNumCalls
	if maxCalls <= 0 {
		maxCalls = DefaultMaxNumCalls
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	if request.NumCalls < 1 {
		return models.NewInputError("num_calls", "must be at least 1, got %d", request.NumCalls)
	}
	if request.NumCalls > maxCalls {
		return models.NewInputError("num_calls", "must be at most %d, got %d", maxCalls, request.NumCalls)
	}
	if request.MaxTokens <= 0 {
		return models.NewInputError("max_tokens", "must be positive, got %d", request.MaxTokens)
	}
	if request.MaxTokens > maxTokens {
		return models.NewInputError("max_tokens", "must be at most %d, got %d", maxTokens, request.MaxTokens)
	}

	return nil
}
