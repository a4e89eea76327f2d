package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
)

// Client calls the Anthropic Messages API directly.
type Client struct {
	client anthropic.Client
}

var _ llm.CompletionClient = (*Client)(nil)

func NewClient(apiKey string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// retries are handled by llm.Retry
		option.WithMaxRetries(0),
	}

	return &Client{client: anthropic.NewClient(append(clientOpts, opts...)...)}, nil
}

// Generate sends one message. The Messages API has no frequency penalty, so it is ignored.
func (c *Client) Generate(ctx context.Context, request llm.CompletionRequest) (*llm.CompletionResponse, error) {
	request = request.WithDefaults()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(request.Model),
		MaxTokens: int64(request.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.UserPrompt)),
		},
		Temperature: anthropic.Float(request.Temperature),
	}

	// Claude rejects temperature together with top_p, so the default top_p is not sent.
	if request.TopP != llm.DefaultTopP {
		params.TopP = anthropic.Float(request.TopP)
	}

	if request.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: request.SystemPrompt},
		}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		wrapped := fmt.Errorf("anthropic: completion failed: %w", err)
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, llm.ClassifyStatus(apiErr.StatusCode, wrapped)
		}
		return nil, wrapped
	}

	var content string
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += variant.Text
		}
	}

	return &llm.CompletionResponse{
		Content:      content,
		FinishReason: string(msg.StopReason),
	}, nil
}
