package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/api"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/config"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/setup"
	"github.com/rs/zerolog"
)

// scriptedClient returns the scripted responses in call order, cycling when exhausted.
func scriptedClient(responses ...string) llm.CompletionClient {
	var n int64
	return llm.ClientFunc(func(ctx context.Context, r llm.CompletionRequest) (*llm.CompletionResponse, error) {
		i := atomic.AddInt64(&n, 1) - 1
		return &llm.CompletionResponse{Content: responses[int(i)%len(responses)]}, nil
	})
}

func newContainer(t *testing.T, client llm.CompletionClient, cfg *setup.Config) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()
	if cfg == nil {
		cfg = &setup.Config{SamplerWorkers: 1}
	}

	deps := setup.Assemble(config.DefaultCatalog(), client, cfg, &logger)
	handler := api.NewHandler(deps.Executor, deps.Comparer, deps.Catalog, &logger)

	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)
	api.RegisterOpenAPI(container)
	return container
}

func postJSON(t *testing.T, container *restful.Container, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func intPtr(v int) *int { return &v }

func TestHandler_Health(t *testing.T) {
	container := newContainer(t, scriptedClient("x"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestHandler_RunSession_MixedResponses(t *testing.T) {
	container := newContainer(t, scriptedClient("Rex", "Max", " Rex\n", "Buddy"), nil)

	recorder := postJSON(t, container, "/api/v1/sessions", models.SessionRequest{
		EventID:  "evt-42",
		Prompt:   "Name a dog",
		NumCalls: intPtr(4),
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var result models.SessionResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.EventID != "evt-42" {
		t.Errorf("Expected event id evt-42, got %q", result.EventID)
	}
	if result.UniqueCount != 3 {
		t.Errorf("Expected 3 unique, got %d", result.UniqueCount)
	}
	if result.Consistency != 50 {
		t.Errorf("Expected consistency 50, got %.1f", result.Consistency)
	}
	if result.Frequencies[0].Response != "Rex" || result.Frequencies[0].Count != 2 {
		t.Errorf("Expected Rex x2 first, got %+v", result.Frequencies[0])
	}
	if result.Request.Model != "gpt-4o" {
		t.Errorf("Expected default model, got %s", result.Request.Model)
	}
}

func TestHandler_RunSession_StatusMapping(t *testing.T) {
	failing := llm.ClientFunc(func(ctx context.Context, r llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New("401 unauthorized")
	})
	hanging := llm.ClientFunc(func(ctx context.Context, r llm.CompletionRequest) (*llm.CompletionResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	tests := []struct {
		name   string
		client llm.CompletionClient
		cfg    *setup.Config
		body   models.SessionRequest
		want   int
	}{
		{
			name:   "empty prompt",
			client: scriptedClient("x"),
			body:   models.SessionRequest{Prompt: "   "},
			want:   http.StatusBadRequest,
		},
		{
			name:   "unknown model",
			client: scriptedClient("x"),
			body:   models.SessionRequest{Prompt: "hi", Model: "gpt-2"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "too many calls",
			client: scriptedClient("x"),
			body:   models.SessionRequest{Prompt: "hi", NumCalls: intPtr(51)},
			want:   http.StatusBadRequest,
		},
		{
			name:   "transport failure",
			client: failing,
			body:   models.SessionRequest{Prompt: "hi", NumCalls: intPtr(2)},
			want:   http.StatusBadGateway,
		},
		{
			name:   "run timeout",
			client: hanging,
			cfg:    &setup.Config{SamplerWorkers: 2, SamplerTimeout: 20 * time.Millisecond},
			body:   models.SessionRequest{Prompt: "hi", NumCalls: intPtr(2)},
			want:   http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := newContainer(t, tt.client, tt.cfg)
			recorder := postJSON(t, container, "/api/v1/sessions", tt.body)

			if recorder.Code != tt.want {
				t.Fatalf("Expected status %d, got %d: %s", tt.want, recorder.Code, recorder.Body.String())
			}
			var errResp middleware.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("Failed to parse error response: %v", err)
			}
			if errResp.Code != tt.want || errResp.Message == "" {
				t.Errorf("Unexpected error body %+v", errResp)
			}
		})
	}
}

func TestHandler_RunSession_MalformedBody(t *testing.T) {
	container := newContainer(t, scriptedClient("x"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestHandler_RunSessionStream(t *testing.T) {
	container := newContainer(t, scriptedClient("Rex"), nil)

	recorder := postJSON(t, container, "/api/v1/sessions/stream", models.SessionRequest{
		Prompt:   "Name a dog",
		NumCalls: intPtr(3),
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected event stream content type, got %q", ct)
	}

	body := recorder.Body.String()
	if got := strings.Count(body, "event: progress\n"); got != 3 {
		t.Errorf("Expected 3 progress events, got %d in %s", got, body)
	}
	if !strings.Contains(body, `"fraction":1`) {
		t.Errorf("Expected a final fraction of 1 in %s", body)
	}
	if !strings.Contains(body, "event: result\n") {
		t.Errorf("Expected a result event in %s", body)
	}
	if strings.Contains(body, "event: error\n") {
		t.Errorf("Unexpected error event in %s", body)
	}
}

func TestHandler_RunSessionStream_InputError(t *testing.T) {
	container := newContainer(t, scriptedClient("Rex"), nil)

	recorder := postJSON(t, container, "/api/v1/sessions/stream", models.SessionRequest{Prompt: ""})

	body := recorder.Body.String()
	if !strings.Contains(body, "event: error\n") {
		t.Fatalf("Expected an error event in %s", body)
	}
	if strings.Contains(body, "event: progress\n") {
		t.Errorf("No calls should be made for an empty prompt: %s", body)
	}
}

func TestHandler_CompareModels(t *testing.T) {
	container := newContainer(t, scriptedClient("Shelly"), nil)

	recorder := postJSON(t, container, "/api/v1/sessions/compare", api.CompareRequest{
		SessionRequest: models.SessionRequest{Prompt: "Name a turtle", NumCalls: intPtr(2)},
		Models:         []string{"gpt-4o", "gpt-4o-mini"},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var response api.CompareResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(response.Results))
	}
	if response.Results[1].Request.Model != "gpt-4o-mini" {
		t.Errorf("Expected second result for gpt-4o-mini, got %s", response.Results[1].Request.Model)
	}
}

func TestHandler_Catalog(t *testing.T) {
	container := newContainer(t, scriptedClient("x"), nil)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/models", nil))
	var modelsResp api.ModelsResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &modelsResp); err != nil {
		t.Fatalf("Failed to parse models: %v", err)
	}
	if modelsResp.Default != "gpt-4o" || len(modelsResp.Models) != 2 {
		t.Errorf("Unexpected models response %+v", modelsResp)
	}

	recorder = httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))
	var presetsResp api.PresetsResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &presetsResp); err != nil {
		t.Fatalf("Failed to parse presets: %v", err)
	}
	if presetsResp.Default != "concise" || len(presetsResp.Presets) != 2 {
		t.Errorf("Unexpected presets response %+v", presetsResp)
	}
}

func TestHandler_OpenAPI(t *testing.T) {
	container := newContainer(t, scriptedClient("x"), nil)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "/api/v1/sessions") {
		t.Error("Expected sessions route in the OpenAPI document")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewInputError("prompt", "empty"), http.StatusBadRequest},
		{errors.Join(models.ErrTransport, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.Join(models.ErrTransport, errors.New("boom")), http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := api.StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
