package prechecks

import (
	"strings"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

// ModelChecker only lets through model ids from the configured catalog.
type ModelChecker struct {
	allowed map[string]bool
	ids     []string
}

func NewModelChecker(ids []string) *ModelChecker {
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return &ModelChecker{allowed: allowed, ids: ids}
}

func (c *ModelChecker) Name() string { return "model-checker" }

func (c *ModelChecker) Check(request models.SamplingRequest) error {
	if request.Model == "" {
		return models.NewInputError("model", "must not be empty")
	}
	if !c.allowed[request.Model] {
		return models.NewInputError("model", "unknown model %q, expected one of: %s", request.Model, strings.Join(c.ids, ", "))
	}
	return nil
}
