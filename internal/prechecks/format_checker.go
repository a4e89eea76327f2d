package prechecks

import (
	"strings"
	"unicode/utf8"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

const DefaultMaxPromptChars = 32000

type FormatChecker struct {
	MaxPromptChars int
}

func NewFormatChecker() *FormatChecker {
	return &FormatChecker{MaxPromptChars: DefaultMaxPromptChars}
}

func (c *FormatChecker) Name() string { return "format-checker" }

// Check rejects an empty or whitespace-only prompt and prompts over the size cap.
func (c *FormatChecker) Check(request models.SamplingRequest) error {
	prompt := strings.TrimSpace(request.Prompt)

	if len(prompt) == 0 {
		return models.NewInputError("prompt", "must not be empty")
	}

	limit := c.MaxPromptChars
	if limit <= 0 {
		limit = DefaultMaxPromptChars
	}
	if n := utf8.RuneCountInString(request.Prompt); n > limit {
		return models.NewInputError("prompt", "is %d characters, limit is %d", n, limit)
	}
	if n := utf8.RuneCountInString(request.SystemPrompt); n > limit {
		return models.NewInputError("system_prompt", "is %d characters, limit is %d", n, limit)
	}

	return nil
}
