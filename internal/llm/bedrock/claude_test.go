package bedrock

import (
	"encoding/json"
	"testing"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
)

func TestBuildPayload(t *testing.T) {
	payload := buildPayload(llm.CompletionRequest{
		Model:        "anthropic.claude-3-haiku",
		SystemPrompt: "Answer in 10 words.",
		UserPrompt:   "What is Go?",
		Temperature:  0.7,
	})

	if payload.AnthropicVersion != anthropicVersion {
		t.Errorf("unexpected version %s", payload.AnthropicVersion)
	}
	if payload.MaxTokens != llm.DefaultMaxTokens {
		t.Errorf("expected default max tokens, got %d", payload.MaxTokens)
	}
	if payload.TopP != nil {
		t.Errorf("default top_p should not be sent, got %v", *payload.TopP)
	}
	if payload.System != "Answer in 10 words." {
		t.Errorf("unexpected system %q", payload.System)
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Content != "What is Go?" {
		t.Errorf("unexpected messages %+v", payload.Messages)
	}

	raw, _ := json.Marshal(buildPayload(llm.CompletionRequest{UserPrompt: "x"}))
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	if _, ok := m["system"]; ok {
		t.Error("empty system prompt should be omitted")
	}
	if _, ok := m["top_p"]; ok {
		t.Error("default top_p should be omitted")
	}
	if _, ok := m["temperature"]; !ok {
		t.Error("temperature should always be sent")
	}
}

func TestBuildPayload_NonDefaultTopP(t *testing.T) {
	payload := buildPayload(llm.CompletionRequest{UserPrompt: "x", TopP: 0.9})
	if payload.TopP == nil || *payload.TopP != 0.9 {
		t.Errorf("expected top_p 0.9, got %v", payload.TopP)
	}
}

func TestParseResponse_JoinsTextBlocks(t *testing.T) {
	body := []byte(`{"content":[{"type":"text","text":"Go is "},{"type":"text","text":"a language."}],"stop_reason":"end_turn"}`)

	resp, err := parseResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Go is a language." {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.FinishReason != "end_turn" {
		t.Errorf("unexpected finish reason %q", resp.FinishReason)
	}
}

func TestParseResponse_InvalidJSON(t *testing.T) {
	if _, err := parseResponse([]byte("not json")); err == nil {
		t.Error("expected error")
	}
}
