package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/rs/zerolog"
)

type SessionExecutor interface {
	ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error)
}

// Result is the outcome of one input record. Exactly one of Session and Error is set.
type Result struct {
	ID         string                `json:"id"`
	LineNumber int                   `json:"line"`
	Session    *models.SessionResult `json:"session,omitempty"`
	Error      string                `json:"error,omitempty"`
}

func (r Result) Failed() bool {
	return r.Error != ""
}

type Processor struct {
	executor        SessionExecutor
	workers         int
	continueOnError bool
	logger          *zerolog.Logger
}

func NewProcessor(exec SessionExecutor, workers int, continueOnError bool, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		executor:        exec,
		workers:         workers,
		continueOnError: continueOnError,
		logger:          logger,
	}
}

// Process runs one sampling session per record with a fixed pool of workers. Results arrive in
// completion order. Records that failed to parse are reported without running a session. Without
// continueOnError the first failure cancels the remaining work.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan Result {
	ctx, cancel := context.WithCancel(ctx)

	jobs := make(chan InputRecord)
	results := make(chan Result)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				result := p.run(ctx, record)
				if result.Failed() && !p.continueOnError {
					cancel()
				}
				results <- result
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		cancel()
		close(results)
	}()

	return results
}

func (p *Processor) run(ctx context.Context, record InputRecord) Result {
	result := Result{
		ID:         recordID(record),
		LineNumber: record.LineNumber,
	}

	if record.Error != nil {
		result.Error = record.Error.Error()
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Error = fmt.Sprintf("skipped: %v", err)
		return result
	}

	session, err := p.executor.ExecuteSession(ctx, record.Request, nil)
	if err != nil {
		p.logger.Error().Err(err).Int("line", record.LineNumber).Str("id", result.ID).Msg("Sampling session failed")
		result.Error = err.Error()
		return result
	}

	p.logger.Debug().
		Int("line", record.LineNumber).
		Str("id", result.ID).
		Float64("consistency", session.Consistency).
		Msg("Sampling session complete")

	result.Session = &session
	return result
}

func recordID(record InputRecord) string {
	if record.Request.EventID != "" {
		return record.Request.EventID
	}
	return fmt.Sprintf("line-%d", record.LineNumber)
}
