package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewLimiter_DisabledWhenRPSZero(t *testing.T) {
	if l := NewLimiter(0, 5); l != nil {
		t.Errorf("expected nil limiter, got %T", l)
	}
	if mw := RateLimit(nil); mw != nil {
		t.Error("expected nil middleware for nil limiter")
	}
}

func TestLimiter_BurstThenBlock(t *testing.T) {
	l := NewLimiter(1, 2)
	defer l.Stop()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("burst acquire %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded once burst is spent, got %v", err)
	}
}

func TestRateLimit_WrapsClient(t *testing.T) {
	l := NewLimiter(1000, 1)
	defer l.Stop()

	calls := 0
	client := Wrap(ClientFunc(func(ctx context.Context, r CompletionRequest) (*CompletionResponse, error) {
		calls++
		return &CompletionResponse{Content: r.UserPrompt}, nil
	}), RateLimit(l))

	for i := 0; i < 3; i++ {
		if _, err := client.Generate(context.Background(), CompletionRequest{UserPrompt: "hi"}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}
