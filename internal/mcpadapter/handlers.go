package mcpadapter

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/config"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

type SessionExecutor interface {
	ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error)
}

// SamplingInput is the MCP tool input schema (matches HTTP API field names).
type SamplingInput struct {
	Prompt       string   `json:"prompt" jsonschema:"question sent to the model on every call"`
	SystemPrompt string   `json:"system_prompt,omitempty" jsonschema:"system instruction; overrides the preset"`
	Preset       string   `json:"preset,omitempty" jsonschema:"system prompt preset name, see list_presets"`
	Model        string   `json:"model,omitempty" jsonschema:"model id from the catalog; defaults to the catalog default"`
	Temperature  *float64 `json:"temperature,omitempty" jsonschema:"sampling temperature between 0 and 1 (default 0.7)"`
	NumCalls     *int     `json:"num_calls,omitempty" jsonschema:"how many identical calls to make (default 10)"`
	MaxTokens    *int     `json:"max_tokens,omitempty" jsonschema:"maximum tokens per completion (default 150)"`
}

// SamplingOutput is the structured tool result.
type SamplingOutput struct {
	ID          string                  `json:"id"`
	Model       string                  `json:"model"`
	NumCalls    int                     `json:"num_calls"`
	UniqueCount int                     `json:"unique_count"`
	Consistency float64                 `json:"consistency" jsonschema:"100*(n-unique+1)/n; 100 when n is 1"`
	Frequencies []models.FrequencyEntry `json:"frequencies"`
	Responses   []string                `json:"responses"`
	DurationMS  int64                   `json:"duration_ms"`
}

type ListPresetsInput struct{}

type ListPresetsOutput struct {
	Presets []config.PresetConfig `json:"presets"`
	Models  []config.ModelConfig  `json:"models"`
}

// NewSamplingHandler returns a tool handler that uses the given executor.
// Pass the returned function to mcp.AddTool.
func NewSamplingHandler(exec SessionExecutor) func(context.Context, *mcp.CallToolRequest, SamplingInput) (*mcp.CallToolResult, SamplingOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SamplingInput) (*mcp.CallToolResult, SamplingOutput, error) {
		return RunSamplingSession(ctx, exec, req, input)
	}
}

// RunSamplingSession runs one session and returns the aggregated result.
// Input and transport failures are reported as tool errors so the client model can react to them.
func RunSamplingSession(
	ctx context.Context,
	exec SessionExecutor,
	req *mcp.CallToolRequest,
	input SamplingInput,
) (*mcp.CallToolResult, SamplingOutput, error) {
	session := models.SessionRequest{
		Prompt:       input.Prompt,
		SystemPrompt: input.SystemPrompt,
		Preset:       input.Preset,
		Model:        input.Model,
		Temperature:  input.Temperature,
		NumCalls:     input.NumCalls,
		MaxTokens:    input.MaxTokens,
	}

	result, err := exec.ExecuteSession(ctx, session, nil)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}, SamplingOutput{}, nil
	}

	output := SamplingOutput{
		ID:          result.ID,
		Model:       result.Request.Model,
		NumCalls:    result.Request.NumCalls,
		UniqueCount: result.UniqueCount,
		Consistency: result.Consistency,
		Frequencies: result.Frequencies,
		Responses:   result.Responses,
		DurationMS:  result.Duration.Milliseconds(),
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: Summary(result)}},
	}, output, nil
}

// Summary is the one-line text rendering of a session.
func Summary(result models.SessionResult) string {
	return fmt.Sprintf("%d unique out of %d total, consistency %.1f%%",
		result.UniqueCount, result.Request.NumCalls, result.Consistency)
}

// NewListPresetsHandler returns a tool handler listing presets and models from the catalog.
func NewListPresetsHandler(catalog *config.Catalog) func(context.Context, *mcp.CallToolRequest, ListPresetsInput) (*mcp.CallToolResult, ListPresetsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListPresetsInput) (*mcp.CallToolResult, ListPresetsOutput, error) {
		return nil, ListPresetsOutput{
			Presets: catalog.Presets,
			Models:  catalog.Models,
		}, nil
	}
}

// NewServer registers the sampling tools on a fresh MCP server.
func NewServer(exec SessionExecutor, catalog *config.Catalog, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "consistency-agent",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_sampling_session",
		Description: "Send the same prompt to a model several times with identical parameters and report how consistent the answers are",
	}, NewSamplingHandler(exec))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_presets",
		Description: "List the system prompt presets and selectable models",
	}, NewListPresetsHandler(catalog))

	return server
}
