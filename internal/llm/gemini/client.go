package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("gemini: response has no candidates")

// Client is a thin wrapper around the official genai client.
type Client struct {
	cli *genai.Client
}

var _ llm.CompletionClient = (*Client)(nil)

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: unable to create client: %w", err)
	}

	return &Client{cli: cli}, nil
}

func buildConfig(request llm.CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(request.Temperature)),
		TopP:             genai.Ptr(float32(request.TopP)),
		MaxOutputTokens:  int32(request.MaxTokens),
		FrequencyPenalty: genai.Ptr(float32(request.FrequencyPenalty)),
	}
	if request.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: request.SystemPrompt}}}
	}
	return cfg
}

func (c *Client) Generate(ctx context.Context, request llm.CompletionRequest) (*llm.CompletionResponse, error) {
	request = request.WithDefaults()

	resp, err := c.cli.Models.GenerateContent(ctx, request.Model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: request.UserPrompt}}}},
		buildConfig(request),
	)
	if err != nil {
		wrapped := fmt.Errorf("gemini: unable to invoke model %s: %w", request.Model, err)
		return nil, llm.ClassifyStatus(statusCode(err), wrapped)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	var content strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			content.WriteString(part.Text)
		}
	}

	return &llm.CompletionResponse{
		Content:      content.String(),
		FinishReason: string(candidate.FinishReason),
	}, nil
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
