package gpt

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
)

func (c *Client) Generate(ctx context.Context, request llm.CompletionRequest) (*llm.CompletionResponse, error) {
	request = request.WithDefaults()

	messages := []openai.ChatCompletionMessageParamUnion{}
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(request.UserPrompt))

	params := openai.ChatCompletionNewParams{
		Messages:         messages,
		Model:            openai.ChatModel(request.Model),
		Temperature:      openai.Float(request.Temperature),
		MaxTokens:        openai.Int(int64(request.MaxTokens)),
		TopP:             openai.Float(request.TopP),
		FrequencyPenalty: openai.Float(request.FrequencyPenalty),
	}

	output, err := c.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		wrapped := fmt.Errorf("unable to invoke %s model %s: %w", c.Provider, request.Model, err)
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, llm.ClassifyStatus(apiErr.StatusCode, wrapped)
		}
		return nil, wrapped
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := output.Choices[0]
	return &llm.CompletionResponse{
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
	}, nil
}
