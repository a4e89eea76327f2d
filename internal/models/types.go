package models

import (
	"time"
)

// SamplingRequest is the fixed set of parameters for one sampling session.
type SamplingRequest struct {
	Prompt           string  `json:"prompt" jsonschema:"user prompt sent on every call"`
	SystemPrompt     string  `json:"system_prompt" jsonschema:"system instruction sent on every call"`
	Temperature      float64 `json:"temperature" jsonschema:"sampling temperature in [0,1]"`
	Model            string  `json:"model" jsonschema:"model or deployment id from the catalog"`
	NumCalls         int     `json:"num_calls" jsonschema:"number of identical calls"`
	MaxTokens        int     `json:"max_tokens" jsonschema:"maximum tokens per completion"`
	TopP             float64 `json:"top_p" jsonschema:"nucleus sampling parameter"`
	FrequencyPenalty float64 `json:"frequency_penalty" jsonschema:"frequency penalty"`
}

// SessionRequest is the wire shape accepted by the API, MCP, stream and batch inputs.
// Optional numeric fields are pointers so that an explicit zero survives.
type SessionRequest struct {
	EventID          string   `json:"event_id,omitempty"`
	Prompt           string   `json:"prompt"`
	SystemPrompt     string   `json:"system_prompt,omitempty"`
	Preset           string   `json:"preset,omitempty"`
	Model            string   `json:"model,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	NumCalls         *int     `json:"num_calls,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
}

// ResponseSet holds the trimmed outputs of one session in completion order.
type ResponseSet []string

// FrequencyEntry is one distinct response and how often it occurred.
type FrequencyEntry struct {
	Response   string  `json:"response"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	FirstIndex int     `json:"first_index"`
}

// FrequencyTable is sorted by count descending, ties by first occurrence.
type FrequencyTable []FrequencyEntry

// Total returns the sum of all counts.
func (t FrequencyTable) Total() int {
	total := 0
	for _, e := range t {
		total += e.Count
	}
	return total
}

// Aggregation is the pure result of grouping a ResponseSet.
type Aggregation struct {
	Frequencies FrequencyTable `json:"frequencies"`
	UniqueCount int            `json:"unique_count"`
	Consistency float64        `json:"consistency"`
}

// SessionResult is what runSamplingSession hands back to a surface.
type SessionResult struct {
	ID          string          `json:"id"`
	EventID     string          `json:"event_id,omitempty"`
	Request     SamplingRequest `json:"request"`
	Responses   ResponseSet     `json:"responses"`
	Frequencies FrequencyTable  `json:"frequencies"`
	UniqueCount int             `json:"unique_count"`
	Consistency float64         `json:"consistency"`
	StartedAt   time.Time       `json:"started_at"`
	Duration    time.Duration   `json:"duration_ns"`
}

// Progress reports how many calls of a session have completed.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Fraction returns Completed/Total, or 0 when Total is not positive.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// ProgressFunc receives progress updates. Calls may come from several goroutines but are
// serialized, and Completed is strictly increasing. It must not block for long.
type ProgressFunc func(Progress)
