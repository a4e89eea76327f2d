package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetry(attempts int) Middleware {
	return Retry(RetryConfig{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, nil)
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	client := Wrap(ClientFunc(func(ctx context.Context, r CompletionRequest) (*CompletionResponse, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("ThrottlingException: slow down")
		}
		return &CompletionResponse{Content: "ok"}, nil
	}), fastRetry(3))

	resp, err := client.Generate(context.Background(), CompletionRequest{Model: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("expected content ok, got %q", resp.Content)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	client := Wrap(ClientFunc(func(ctx context.Context, r CompletionRequest) (*CompletionResponse, error) {
		calls++
		return nil, ClassifyStatus(401, errors.New("unauthorized 500"))
	}), fastRetry(5))

	_, err := client.Generate(context.Background(), CompletionRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	var perm *PermanentError
	if !errors.As(err, &perm) {
		t.Errorf("expected PermanentError, got %T", err)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	cause := errors.New("503 Service Unavailable")
	client := Wrap(ClientFunc(func(ctx context.Context, r CompletionRequest) (*CompletionResponse, error) {
		calls++
		return nil, cause
	}), fastRetry(4))

	_, err := client.Generate(context.Background(), CompletionRequest{})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := Wrap(ClientFunc(func(ctx context.Context, r CompletionRequest) (*CompletionResponse, error) {
		cancel()
		return nil, errors.New("connection reset by peer")
	}), Retry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Second, MaxDelay: time.Second}, nil))

	_, err := client.Generate(ctx, CompletionRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"throttling", errors.New("ThrottlingException"), true},
		{"rate limit status", errors.New("429 Too Many Requests"), true},
		{"server error", errors.New("500 Internal Server Error"), true},
		{"network", errors.New("read: connection reset by peer"), true},
		{"validation", errors.New("ValidationException: bad input"), false},
		{"permanent", Permanent(errors.New("503")), false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("boom")

	if _, ok := ClassifyStatus(400, base).(*PermanentError); !ok {
		t.Error("expected 400 to be permanent")
	}
	if ClassifyStatus(429, base) != base {
		t.Error("expected 429 to stay retryable")
	}
	if ClassifyStatus(408, base) != base {
		t.Error("expected 408 to stay retryable")
	}
	if ClassifyStatus(503, base) != base {
		t.Error("expected 503 to stay retryable")
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := calculateBackoff(attempt, 100*time.Millisecond, time.Second)
		if d > 1200*time.Millisecond {
			t.Errorf("attempt %d: backoff %v exceeds cap plus jitter", attempt, d)
		}
		if d <= 0 {
			t.Errorf("attempt %d: backoff must be positive, got %v", attempt, d)
		}
	}
}
