package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messageReply = `{
	"id": "msg_1",
	"type": "message",
	"role": "assistant",
	"model": "claude-sonnet-4-5",
	"content": [{"type": "text", "text": "Shelly"}, {"type": "text", "text": " the turtle"}],
	"stop_reason": "end_turn",
	"stop_sequence": null,
	"usage": {"input_tokens": 10, "output_tokens": 3}
}`

func newMessagesServer(t *testing.T, status int, reply string, body *map[string]any, path *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if body != nil {
			require.NoError(t, json.Unmarshal(raw, body))
		}
		if path != nil {
			*path = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Generate(t *testing.T) {
	var body map[string]any
	var path string
	srv := newMessagesServer(t, http.StatusOK, messageReply, &body, &path)

	client, err := NewClient("test-key", option.WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), llm.CompletionRequest{
		Model:            "claude-sonnet-4-5",
		SystemPrompt:     "Answer in 10 words.",
		UserPrompt:       "Name a turtle",
		Temperature:      0.7,
		FrequencyPenalty: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Shelly the turtle", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)

	assert.Equal(t, "/v1/messages", path)
	assert.Equal(t, "claude-sonnet-4-5", body["model"])
	assert.EqualValues(t, llm.DefaultMaxTokens, body["max_tokens"])
	assert.Equal(t, 0.7, body["temperature"])
	assert.NotContains(t, body, "top_p", "default top_p must not be sent with temperature")
	assert.NotContains(t, body, "frequency_penalty")

	system, ok := body["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "Answer in 10 words.", system[0].(map[string]any)["text"])
}

func TestClient_Generate_NonDefaultTopP(t *testing.T) {
	var body map[string]any
	srv := newMessagesServer(t, http.StatusOK, messageReply, &body, nil)

	client, err := NewClient("test-key", option.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), llm.CompletionRequest{Model: "claude", UserPrompt: "x", TopP: 0.9})
	require.NoError(t, err)

	assert.Equal(t, 0.9, body["top_p"])
	assert.NotContains(t, body, "system")
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		permanent bool
	}{
		{"bad request is permanent", http.StatusBadRequest, true},
		{"rate limit is retryable", http.StatusTooManyRequests, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMessagesServer(t, tt.status, `{"type":"error","error":{"type":"invalid_request_error","message":"nope"}}`, nil, nil)

			client, err := NewClient("test-key", option.WithBaseURL(srv.URL))
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), llm.CompletionRequest{Model: "claude", UserPrompt: "x"})
			require.Error(t, err)

			var perm *llm.PermanentError
			assert.Equal(t, tt.permanent, errors.As(err, &perm))
			assert.Equal(t, !tt.permanent, llm.IsRetryable(err))
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}
