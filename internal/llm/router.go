package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Router sends each request to the client registered for its model id.
// Safe for concurrent use.
type Router struct {
	mu      sync.RWMutex
	clients map[string]CompletionClient
}

func NewRouter() *Router {
	return &Router{
		clients: make(map[string]CompletionClient),
	}
}

// Register associates a model id with a client.
func (r *Router) Register(model string, client CompletionClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[model] = client
}

// Get returns the client for a model id.
func (r *Router) Get(model string) (CompletionClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[model]
	if !ok {
		return nil, Permanent(fmt.Errorf("unknown model: %s", model))
	}
	return client, nil
}

// Models returns all registered model ids, sorted.
func (r *Router) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	models := make([]string, 0, len(r.clients))
	for m := range r.clients {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

func (r *Router) Generate(ctx context.Context, request CompletionRequest) (*CompletionResponse, error) {
	client, err := r.Get(request.Model)
	if err != nil {
		return nil, err
	}
	return client.Generate(ctx, request)
}
