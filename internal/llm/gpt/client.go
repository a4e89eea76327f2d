package gpt

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

// DefaultAzureAPIVersion is used when AZURE_OPENAI_API_VERSION is unset.
const DefaultAzureAPIVersion = "2023-05-15"

// Client talks to an OpenAI compatible chat completions endpoint.
// The model id in each request is the OpenAI model name or the Azure deployment name.
type Client struct {
	Client   openai.Client
	Provider string
}

// NewClient builds a client for the OpenAI platform.
func NewClient(apiKey string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// retries are handled by llm.Retry
		option.WithMaxRetries(0),
	}

	return &Client{
		Client:   openai.NewClient(append(base, opts...)...),
		Provider: "openai",
	}, nil
}

// NewAzureClient builds a client for an Azure OpenAI resource.
func NewAzureClient(endpoint string, apiKey string, apiVersion string, opts ...option.RequestOption) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("Azure OpenAI endpoint is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Azure OpenAI API key is required")
	}
	if apiVersion == "" {
		apiVersion = DefaultAzureAPIVersion
	}

	base := []option.RequestOption{
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}

	return &Client{
		Client:   openai.NewClient(append(base, opts...)...),
		Provider: "azure",
	}, nil
}
