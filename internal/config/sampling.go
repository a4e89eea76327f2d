package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"gopkg.in/yaml.v3"
)

const DefaultCatalogPath = "configs/sampling.yaml"

const (
	defaultTemperature = 0.7
	defaultNumCalls    = 10
	defaultMaxNumCalls = 50
	defaultMaxTokens   = 150
	defaultTopP        = 1.0
	defaultWorkers     = 5
	defaultRunTimeout  = 120 * time.Second
)

const (
	conciseSystemPrompt  = "Answer the user's question in 10 words or less. Do not include explanations. Provide only the direct answer in as few words as possible."
	researchSystemPrompt = "You are a helpful research assistant. Provide thorough and informative responses to questions."
)

// LoadCatalog reads the catalog from SAMPLING_CONFIG_PATH, or from configs/sampling.yaml.
// When neither is set and the default file is absent the built-in catalog is used.
func LoadCatalog() (*Catalog, error) {
	path := os.Getenv("SAMPLING_CONFIG_PATH")
	if path != "" {
		return LoadCatalogFile(path)
	}

	cfg, err := LoadCatalogFile(DefaultCatalogPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultCatalog(), nil
	}
	return cfg, err
}

func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read sampling config %s: %w", models.ErrConfiguration, path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var cfg Catalog
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: unable to parse sampling config: %v", models.ErrConfiguration, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultCatalog mirrors configs/sampling.yaml.
func DefaultCatalog() *Catalog {
	cfg := &Catalog{
		Models: []ModelConfig{
			{ID: "gpt-4o", Provider: ProviderAzure, Default: true},
			{ID: "gpt-4o-mini", Provider: ProviderAzure},
		},
		Presets: []PresetConfig{
			{Name: "concise", Title: "Concise Answers (10 words max)", Prompt: conciseSystemPrompt, Default: true},
			{Name: "research", Title: "Research Assistant", Prompt: researchSystemPrompt},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Catalog) {
	d := &cfg.Sampling.Defaults
	if d.Temperature == nil {
		t := defaultTemperature
		d.Temperature = &t
	}
	if d.NumCalls == 0 {
		d.NumCalls = defaultNumCalls
	}
	if d.MaxNumCalls == 0 {
		d.MaxNumCalls = defaultMaxNumCalls
	}
	if d.MaxTokens == 0 {
		d.MaxTokens = defaultMaxTokens
	}
	if d.TopP == 0 {
		d.TopP = defaultTopP
	}
	if cfg.Sampling.Workers == 0 {
		cfg.Sampling.Workers = defaultWorkers
	}
	if cfg.Sampling.RunTimeout == 0 {
		cfg.Sampling.RunTimeout = defaultRunTimeout
	}
}

func (c *Catalog) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	d := c.Sampling.Defaults
	if d.Temperature != nil && (*d.Temperature < 0 || *d.Temperature > 1) {
		fail("defaults.temperature must be in [0, 1], got %v", *d.Temperature)
	}
	if d.MaxNumCalls < 1 {
		fail("defaults.max_num_calls must be at least 1, got %d", d.MaxNumCalls)
	}
	if d.NumCalls < 1 || d.NumCalls > d.MaxNumCalls {
		fail("defaults.num_calls must be in [1, %d], got %d", d.MaxNumCalls, d.NumCalls)
	}
	if d.MaxTokens < 1 {
		fail("defaults.max_tokens must be positive, got %d", d.MaxTokens)
	}
	if c.Sampling.Workers < 1 {
		fail("sampling.workers must be at least 1, got %d", c.Sampling.Workers)
	}
	if c.Sampling.RunTimeout < 0 {
		fail("sampling.run_timeout must not be negative")
	}

	if len(c.Models) == 0 {
		fail("at least one model is required")
	}
	seenModels := make(map[string]bool)
	defaults := 0
	for i, m := range c.Models {
		if strings.TrimSpace(m.ID) == "" {
			fail("models[%d].id is required", i)
			continue
		}
		if seenModels[m.ID] {
			fail("duplicate model id %q", m.ID)
		}
		seenModels[m.ID] = true
		if !knownProviders[m.Provider] {
			fail("model %q has unknown provider %q", m.ID, m.Provider)
		}
		if m.Default {
			defaults++
		}
	}
	if defaults > 1 {
		fail("only one model may be marked default, found %d", defaults)
	}

	seenPresets := make(map[string]bool)
	for i, p := range c.Presets {
		if strings.TrimSpace(p.Name) == "" {
			fail("presets[%d].name is required", i)
			continue
		}
		if seenPresets[p.Name] {
			fail("duplicate preset name %q", p.Name)
		}
		seenPresets[p.Name] = true
		if strings.TrimSpace(p.Prompt) == "" {
			fail("preset %q has an empty prompt", p.Name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", models.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

// Model returns the catalog entry for id.
func (c *Catalog) Model(id string) (ModelConfig, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelConfig{}, false
}

// DefaultModel returns the model marked default, or the first one.
func (c *Catalog) DefaultModel() ModelConfig {
	for _, m := range c.Models {
		if m.Default {
			return m
		}
	}
	if len(c.Models) > 0 {
		return c.Models[0]
	}
	return ModelConfig{}
}

func (c *Catalog) ModelIDs() []string {
	ids := make([]string, 0, len(c.Models))
	for _, m := range c.Models {
		ids = append(ids, m.ID)
	}
	return ids
}

// Providers returns each provider referenced by the catalog once, in catalog order.
func (c *Catalog) Providers() []string {
	seen := make(map[string]bool)
	var providers []string
	for _, m := range c.Models {
		if !seen[m.Provider] {
			seen[m.Provider] = true
			providers = append(providers, m.Provider)
		}
	}
	return providers
}

func (c *Catalog) Preset(name string) (PresetConfig, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return PresetConfig{}, false
}

// DefaultPreset returns the preset marked default, or the first one.
func (c *Catalog) DefaultPreset() PresetConfig {
	for _, p := range c.Presets {
		if p.Default {
			return p
		}
	}
	if len(c.Presets) > 0 {
		return c.Presets[0]
	}
	return PresetConfig{}
}

func (c *Catalog) DefaultTemperature() float64 {
	if t := c.Sampling.Defaults.Temperature; t != nil {
		return *t
	}
	return defaultTemperature
}

// ApplyDefaults fills the zero-valued optional fields of a request.
// Temperature is left alone since 0 is meaningful.
func (c *Catalog) ApplyDefaults(request models.SamplingRequest) models.SamplingRequest {
	d := c.Sampling.Defaults
	if request.Model == "" {
		request.Model = c.DefaultModel().ID
	}
	if request.SystemPrompt == "" {
		request.SystemPrompt = c.DefaultPreset().Prompt
	}
	if request.NumCalls == 0 {
		request.NumCalls = d.NumCalls
	}
	if request.MaxTokens == 0 {
		request.MaxTokens = d.MaxTokens
	}
	if request.TopP == 0 {
		request.TopP = d.TopP
	}
	return request
}

// Resolve turns a wire request into a SamplingRequest. An explicit system prompt
// wins over a preset; absent numeric fields take the catalog defaults.
func (c *Catalog) Resolve(session models.SessionRequest) (models.SamplingRequest, error) {
	d := c.Sampling.Defaults

	request := models.SamplingRequest{
		Prompt:           session.Prompt,
		SystemPrompt:     session.SystemPrompt,
		Model:            session.Model,
		Temperature:      c.DefaultTemperature(),
		FrequencyPenalty: d.FrequencyPenalty,
	}

	if request.SystemPrompt == "" && session.Preset != "" {
		preset, ok := c.Preset(session.Preset)
		if !ok {
			return models.SamplingRequest{}, models.NewInputError("preset", "unknown preset %q", session.Preset)
		}
		request.SystemPrompt = preset.Prompt
	}

	if session.Temperature != nil {
		request.Temperature = *session.Temperature
	}
	if session.NumCalls != nil {
		request.NumCalls = *session.NumCalls
		if request.NumCalls == 0 {
			return models.SamplingRequest{}, models.NewInputError("num_calls", "must be at least 1, got 0")
		}
	}
	if session.MaxTokens != nil {
		request.MaxTokens = *session.MaxTokens
		if request.MaxTokens == 0 {
			return models.SamplingRequest{}, models.NewInputError("max_tokens", "must be positive, got 0")
		}
	}
	if session.TopP != nil {
		request.TopP = *session.TopP
		if request.TopP == 0 {
			return models.SamplingRequest{}, models.NewInputError("top_p", "must be in (0, 1], got 0")
		}
	}
	if session.FrequencyPenalty != nil {
		request.FrequencyPenalty = *session.FrequencyPenalty
	}

	return c.ApplyDefaults(request), nil
}
