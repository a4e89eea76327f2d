package llm

import (
	"context"
	"time"
)

// Limiter throttles outgoing calls.
type Limiter interface {
	Acquire(ctx context.Context) error
	Stop()
}

// rpsLimiter is a token bucket refilled at a fixed rate.
type rpsLimiter struct {
	tokens chan struct{}
	stopCh chan struct{}
}

// NewLimiter allows up to rps calls per second with the given burst.
// It returns nil when rps <= 0, which RateLimit treats as "no limit".
func NewLimiter(rps float64, burst int) Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	l := &rpsLimiter{
		tokens: make(chan struct{}, burst),
		stopCh: make(chan struct{}),
	}
	for i := 0; i < burst; i++ {
		l.tokens <- struct{}{}
	}

	period := time.Duration(float64(time.Second) / rps)
	if period <= 0 {
		period = time.Millisecond
	}
	ticker := time.NewTicker(period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case l.tokens <- struct{}{}:
				default:
				}
			case <-l.stopCh:
				return
			}
		}
	}()

	return l
}

func (l *rpsLimiter) Acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopCh:
		return context.Canceled
	case <-l.tokens:
		return nil
	}
}

func (l *rpsLimiter) Stop() {
	close(l.stopCh)
}

// RateLimit makes every call wait for a limiter token. A nil limiter disables it.
func RateLimit(limiter Limiter) Middleware {
	if limiter == nil {
		return nil
	}
	return func(next CompletionClient) CompletionClient {
		return ClientFunc(func(ctx context.Context, request CompletionRequest) (*CompletionResponse, error) {
			if err := limiter.Acquire(ctx); err != nil {
				return nil, err
			}
			return next.Generate(ctx, request)
		})
	}
}
