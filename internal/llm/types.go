package llm

// CompletionRequest carries everything one chat completion call needs.
type CompletionRequest struct {
	Model            string
	SystemPrompt     string
	UserPrompt       string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
}

type CompletionResponse struct {
	Content      string
	FinishReason string
}

const (
	DefaultMaxTokens        = 150
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
)

// WithDefaults fills the optional fields left at their zero value.
// FrequencyPenalty defaults to zero so it is left untouched.
func (r CompletionRequest) WithDefaults() CompletionRequest {
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.TopP <= 0 {
		r.TopP = DefaultTopP
	}
	return r
}
