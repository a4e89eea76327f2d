package llm

import (
	"context"
)

// CompletionClient is the one capability the sampler needs from a hosted model.
// This allows mocking in tests without making real API calls.
type CompletionClient interface {
	Generate(ctx context.Context, request CompletionRequest) (*CompletionResponse, error)
}

// ClientFunc adapts a plain function to CompletionClient.
type ClientFunc func(ctx context.Context, request CompletionRequest) (*CompletionResponse, error)

func (f ClientFunc) Generate(ctx context.Context, request CompletionRequest) (*CompletionResponse, error) {
	return f(ctx, request)
}

// Middleware decorates a CompletionClient.
type Middleware func(next CompletionClient) CompletionClient

// Wrap applies middlewares so that the first one listed is the outermost.
func Wrap(client CompletionClient, middlewares ...Middleware) CompletionClient {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		client = middlewares[i](client)
	}
	return client
}
