package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Client invokes Anthropic Claude models hosted on Amazon Bedrock.
// The Bedrock model id is taken from each request.
type Client struct {
	Client *bedrockruntime.Client
}

func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		// retries are handled by llm.Retry
		config.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return NewFromConfig(cfg), nil
}

func NewFromConfig(cfg aws.Config) *Client {
	return &Client{Client: bedrockruntime.NewFromConfig(cfg)}
}
