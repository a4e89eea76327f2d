package gemini

import (
	"context"
	"testing"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
)

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(llm.CompletionRequest{
		SystemPrompt:     "be brief",
		Temperature:      0.5,
		TopP:             0.9,
		MaxTokens:        64,
		FrequencyPenalty: 0.2,
	})

	if cfg.MaxOutputTokens != 64 {
		t.Errorf("expected 64 max tokens, got %d", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.5 {
		t.Errorf("unexpected temperature %v", cfg.Temperature)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "be brief" {
		t.Error("expected system instruction")
	}

	if buildConfig(llm.CompletionRequest{}).SystemInstruction != nil {
		t.Error("expected no system instruction for empty prompt")
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), ""); err == nil {
		t.Error("expected error for empty API key")
	}
}
