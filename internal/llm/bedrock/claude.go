package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
)

type claudeMessageRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float64         `json:"temperature"`
	TopP             *float64        `json:"top_p,omitempty"`
	System           string          `json:"system,omitempty"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

var anthropicVersion = "bedrock-2023-05-31"

// buildPayload maps a completion request onto the Claude messages body.
// Claude has no frequency penalty, and rejects temperature together with top_p,
// so top_p is only sent when it differs from the default.
func buildPayload(request llm.CompletionRequest) claudeMessageRequest {
	request = request.WithDefaults()

	var topP *float64
	if request.TopP != llm.DefaultTopP {
		topP = aws.Float64(request.TopP)
	}

	return claudeMessageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        request.MaxTokens,
		Temperature:      request.Temperature,
		TopP:             topP,
		System:           request.SystemPrompt,
		Messages: []claudeMessage{
			{
				Role:    "user",
				Content: request.UserPrompt,
			},
		},
	}
}

func (c *Client) Generate(ctx context.Context, request llm.CompletionRequest) (*llm.CompletionResponse, error) {
	body, err := json.Marshal(buildPayload(request))
	if err != nil {
		return nil, llm.Permanent(fmt.Errorf("unable to serialize claude request: %w", err))
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(request.Model),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		wrapped := fmt.Errorf("unable to invoke bedrock model %s: %w", request.Model, err)
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			return nil, llm.ClassifyStatus(respErr.HTTPStatusCode(), wrapped)
		}
		return nil, wrapped
	}

	return parseResponse(output.Body)
}

func parseResponse(body []byte) (*llm.CompletionResponse, error) {
	var response claudeMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bedrock response: %w", err)
	}

	var content strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &llm.CompletionResponse{
		Content:      content.String(),
		FinishReason: response.StopReason,
	}, nil
}
