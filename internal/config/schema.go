package config

import "time"

// Catalog is the sampling configuration: defaults, the allowed models and the system prompt presets.
type Catalog struct {
	Sampling SamplingConfig `yaml:"sampling" json:"sampling"`
	Models   []ModelConfig  `yaml:"models" json:"models"`
	Presets  []PresetConfig `yaml:"presets" json:"presets"`
}

type SamplingConfig struct {
	Defaults   SamplingDefaults `yaml:"defaults" json:"defaults"`
	Workers    int              `yaml:"workers" json:"workers"`
	RunTimeout time.Duration    `yaml:"run_timeout" json:"run_timeout"`
}

// SamplingDefaults fill the parameters a request leaves unset.
// Temperature is a pointer because 0 is a valid setting.
type SamplingDefaults struct {
	Temperature      *float64 `yaml:"temperature" json:"temperature"`
	NumCalls         int      `yaml:"num_calls" json:"num_calls"`
	MaxNumCalls      int      `yaml:"max_num_calls" json:"max_num_calls"`
	MaxTokens        int      `yaml:"max_tokens" json:"max_tokens"`
	TopP             float64  `yaml:"top_p" json:"top_p"`
	FrequencyPenalty float64  `yaml:"frequency_penalty" json:"frequency_penalty"`
}

// ModelConfig is one selectable model or deployment and the provider that serves it.
type ModelConfig struct {
	ID          string `yaml:"id" json:"id"`
	Provider    string `yaml:"provider" json:"provider"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     bool   `yaml:"default,omitempty" json:"default,omitempty"`
}

// PresetConfig is a named system prompt.
type PresetConfig struct {
	Name    string `yaml:"name" json:"name"`
	Title   string `yaml:"title" json:"title"`
	Prompt  string `yaml:"prompt" json:"prompt"`
	Default bool   `yaml:"default,omitempty" json:"default,omitempty"`
}

const (
	ProviderAzure     = "azure"
	ProviderOpenAI    = "openai"
	ProviderBedrock   = "bedrock"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var knownProviders = map[string]bool{
	ProviderAzure:     true,
	ProviderOpenAI:    true,
	ProviderBedrock:   true,
	ProviderAnthropic: true,
	ProviderGemini:    true,
}
