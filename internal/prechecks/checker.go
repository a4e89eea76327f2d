package prechecks

import (
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

// Checker validates one aspect of a SamplingRequest before any call is made.
// A failing check returns a *models.InputError.
type Checker interface {
	Name() string
	Check(request models.SamplingRequest) error
}
