package prechecks

import (
	"errors"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

type StageRunner struct {
	checks []Checker
}

func NewStageRunner(checks []Checker) *StageRunner {
	return &StageRunner{checks: checks}
}

// Run executes every check and joins the failures. It returns nil when all checks pass.
func (r *StageRunner) Run(request models.SamplingRequest) error {
	var errs []error
	for _, check := range r.checks {
		if err := check.Check(request); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
