package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

type Writer interface {
	Write(result Result) error
	Close() error
}

func NewWriter(output io.Writer, format string, logger *zerolog.Logger) (Writer, error) {
	switch format {
	case "jsonl":
		return &jsonlWriter{encoder: json.NewEncoder(output)}, nil
	case "summary":
		return &summaryWriter{output: output, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type jsonlWriter struct {
	encoder *json.Encoder
}

func (w *jsonlWriter) Write(result Result) error {
	return w.encoder.Encode(result)
}

func (w *jsonlWriter) Close() error {
	return nil
}

// Summary is the aggregate over a batch run.
type Summary struct {
	Total           int             `json:"total"`
	Succeeded       int             `json:"succeeded"`
	Failed          int             `json:"failed"`
	TotalCalls      int             `json:"total_calls"`
	MeanConsistency float64         `json:"mean_consistency"`
	MinConsistency  float64         `json:"min_consistency"`
	MaxConsistency  float64         `json:"max_consistency"`
	Sessions        []SessionDigest `json:"sessions"`
	Errors          []RecordError   `json:"errors,omitempty"`

	consistencyTotal float64
}

// SessionDigest is the per-record line of a summary.
type SessionDigest struct {
	ID          string  `json:"id"`
	Line        int     `json:"line"`
	Model       string  `json:"model"`
	NumCalls    int     `json:"num_calls"`
	UniqueCount int     `json:"unique_count"`
	Consistency float64 `json:"consistency"`
	TopResponse string  `json:"top_response"`
}

type RecordError struct {
	ID    string `json:"id"`
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// Add folds one result into the summary.
func (s *Summary) Add(result Result) {
	s.Total++
	if result.Failed() || result.Session == nil {
		s.Failed++
		s.Errors = append(s.Errors, RecordError{ID: result.ID, Line: result.LineNumber, Error: result.Error})
		return
	}

	session := result.Session
	s.Succeeded++
	s.TotalCalls += len(session.Responses)
	s.consistencyTotal += session.Consistency
	s.MeanConsistency = s.consistencyTotal / float64(s.Succeeded)
	if s.Succeeded == 1 || session.Consistency < s.MinConsistency {
		s.MinConsistency = session.Consistency
	}
	if session.Consistency > s.MaxConsistency {
		s.MaxConsistency = session.Consistency
	}

	digest := SessionDigest{
		ID:          result.ID,
		Line:        result.LineNumber,
		Model:       session.Request.Model,
		NumCalls:    session.Request.NumCalls,
		UniqueCount: session.UniqueCount,
		Consistency: session.Consistency,
	}
	if len(session.Frequencies) > 0 {
		digest.TopResponse = session.Frequencies[0].Response
	}
	s.Sessions = append(s.Sessions, digest)
}

type summaryWriter struct {
	output  io.Writer
	logger  *zerolog.Logger
	summary Summary
}

func (w *summaryWriter) Write(result Result) error {
	w.summary.Add(result)
	return nil
}

// Close writes the accumulated summary as one indented JSON document.
func (w *summaryWriter) Close() error {
	w.logger.Info().
		Int("total", w.summary.Total).
		Int("failed", w.summary.Failed).
		Float64("mean_consistency", w.summary.MeanConsistency).
		Msg("Writing summary")

	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(w.summary)
}
