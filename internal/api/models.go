package api

import "github.com/povarna/generative-ai-agents/consistency-agent/internal/models"

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ModelsResponse struct {
	Models  []ModelEntry `json:"models"`
	Default string       `json:"default"`
}

type ModelEntry struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Description string `json:"description,omitempty"`
}

type PresetsResponse struct {
	Presets []PresetEntry `json:"presets"`
	Default string        `json:"default"`
}

type PresetEntry struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// CompareRequest runs the same session against each listed model.
type CompareRequest struct {
	models.SessionRequest
	Models []string `json:"models"`
}

type CompareResponse struct {
	Results []models.SessionResult `json:"results"`
}

// ProgressEvent is the payload of a "progress" server-sent event.
type ProgressEvent struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}
