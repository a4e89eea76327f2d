package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/aggregator"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/config"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm/anthropic"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/prechecks"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/sampler"
	"github.com/rs/zerolog"
)

type Config struct {
	AzureAPIKey     string
	AzureEndpoint   string
	AzureAPIVersion string
	OpenAIKey       string
	AWSRegion       string
	AnthropicKey    string
	GeminiKey       string

	LLMRPS        float64
	LLMBurst      int
	LLMMaxRetries int

	// Zero values fall back to the catalog's sampling section.
	SamplerWorkers int
	SamplerTimeout time.Duration

	LogLevel string
}

type Dependencies struct {
	Catalog  *config.Catalog
	Router   *llm.Router
	Executor *executor.Executor
	Comparer *executor.CompareExecutor
	Logger   *zerolog.Logger

	limiter llm.Limiter
}

// Close releases the rate limiter, if one was started.
func (d *Dependencies) Close() {
	if d.limiter != nil {
		d.limiter.Stop()
	}
}

func LoadConfig() *Config {
	return &Config{
		AzureAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", gpt.DefaultAzureAPIVersion),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
		GeminiKey:       getEnv("GEMINI_API_KEY", ""),
		LLMRPS:          getEnvFloat("LLM_RPS", 0),
		LLMBurst:        getEnvInt("LLM_BURST", 1),
		LLMMaxRetries:   getEnvInt("LLM_MAX_RETRIES", llm.DefaultRetryConfig.MaxAttempts),
		SamplerWorkers:  getEnvInt("SAMPLER_WORKERS", 0),
		SamplerTimeout:  getEnvDuration("SAMPLER_TIMEOUT", 0),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// Wire loads the catalog, builds one backend per referenced provider and assembles the executors.
// Missing credentials fail here, before any call is attempted.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	catalog, err := config.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load sampling catalog: %w", err)
	}

	backends := make(map[string]llm.CompletionClient)
	for _, provider := range catalog.Providers() {
		client, err := createLLMClient(ctx, provider, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: provider %s: %w", models.ErrConfiguration, provider, err)
		}
		backends[provider] = client
	}

	limiter := llm.NewLimiter(cfg.LLMRPS, cfg.LLMBurst)
	retry := llm.DefaultRetryConfig
	retry.MaxAttempts = cfg.LLMMaxRetries

	router := llm.NewRouter()
	for _, m := range catalog.Models {
		// the limiter sits inside Retry so every attempt takes a token
		router.Register(m.ID, llm.Wrap(backends[m.Provider],
			llm.Retry(retry, logger),
			llm.RateLimit(limiter),
		))
	}

	deps := Assemble(catalog, router, cfg, logger)
	deps.Router = router
	deps.limiter = limiter

	logger.Info().
		Strs("models", router.Models()).
		Strs("providers", catalog.Providers()).
		Float64("rps", cfg.LLMRPS).
		Msg("dependencies wired")

	return deps, nil
}

// Assemble builds the session pipeline around an already constructed completion client.
func Assemble(catalog *config.Catalog, client llm.CompletionClient, cfg *Config, logger *zerolog.Logger) *Dependencies {
	workers := catalog.Sampling.Workers
	timeout := catalog.Sampling.RunTimeout
	if cfg != nil && cfg.SamplerWorkers > 0 {
		workers = cfg.SamplerWorkers
	}
	if cfg != nil && cfg.SamplerTimeout > 0 {
		timeout = cfg.SamplerTimeout
	}

	stageRunner := prechecks.NewStageRunner([]prechecks.Checker{
		prechecks.NewFormatChecker(),
		prechecks.NewLengthChecker(catalog.Sampling.Defaults.MaxNumCalls),
		prechecks.NewParameterChecker(),
		prechecks.NewModelChecker(catalog.ModelIDs()),
	})

	smp := sampler.NewSampler(client, sampler.Config{
		Workers:    workers,
		RunTimeout: timeout,
	}, logger)

	exec := executor.NewExecutor(catalog, stageRunner, smp, aggregator.NewAggregator(), logger)

	return &Dependencies{
		Catalog:  catalog,
		Executor: exec,
		Comparer: executor.NewCompareExecutor(exec, logger),
		Logger:   logger,
	}
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.CompletionClient, error) {
	switch provider {
	case config.ProviderAzure:
		return gpt.NewAzureClient(cfg.AzureEndpoint, cfg.AzureAPIKey, cfg.AzureAPIVersion)
	case config.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey)
	case config.ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion)
	case config.ProviderAnthropic:
		return anthropic.NewClient(cfg.AnthropicKey)
	case config.ProviderGemini:
		return gemini.NewClient(ctx, cfg.GeminiKey)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
