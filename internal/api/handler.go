package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/config"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

type SessionExecutor interface {
	ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error)
}

type Comparer interface {
	Compare(ctx context.Context, session models.SessionRequest, modelIDs []string) ([]models.SessionResult, error)
}

type Handler struct {
	executor SessionExecutor
	comparer Comparer
	catalog  *config.Catalog
	logger   *zerolog.Logger
}

func NewHandler(executor SessionExecutor, comparer Comparer, catalog *config.Catalog, logger *zerolog.Logger) *Handler {
	return &Handler{
		executor: executor,
		comparer: comparer,
		catalog:  catalog,
		logger:   logger,
	}
}

// StatusFor maps a session error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, models.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/v1/sessions
// Body: SessionRequest
// Returns: SessionResult
func (h *Handler) RunSession(req *restful.Request, resp *restful.Response) {
	var sessionRequest models.SessionRequest
	if err := req.ReadEntity(&sessionRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("event_id", sessionRequest.EventID).
		Str("model", sessionRequest.Model).
		Str("preset", sessionRequest.Preset).
		Msg("Start sampling session")

	result, err := h.executor.ExecuteSession(req.Request.Context(), sessionRequest, nil)
	if err != nil {
		status := StatusFor(err)
		h.logger.Error().Err(err).Int("status", status).Msg("Sampling session failed")
		middleware.HandleError(resp, err, status)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/sessions/stream
// Emits "progress" events, then a single "result" or "error" event.
func (h *Handler) RunSessionStream(req *restful.Request, resp *restful.Response) {
	var sessionRequest models.SessionRequest
	if err := req.ReadEntity(&sessionRequest); err != nil {
		h.logger.Error().Err(err).Msg("Unable to parse session request")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	writer := resp.ResponseWriter
	flusher, ok := writer.(http.Flusher)
	if !ok {
		middleware.HandleError(resp, fmt.Errorf("streaming not supported"), http.StatusInternalServerError)
		return
	}

	resp.AddHeader("Content-Type", "text/event-stream")
	resp.AddHeader("Cache-Control", "no-cache")
	resp.AddHeader("Connection", "keep-alive")
	resp.AddHeader("X-Accel-Buffering", "no")
	resp.WriteHeader(http.StatusOK)

	stream := &eventWriter{w: writer, flusher: flusher}

	result, err := h.executor.ExecuteSession(req.Request.Context(), sessionRequest, func(p models.Progress) {
		stream.send("progress", ProgressEvent{
			Completed: p.Completed,
			Total:     p.Total,
			Fraction:  p.Fraction(),
		})
	})
	if err != nil {
		status := StatusFor(err)
		h.logger.Error().Err(err).Int("status", status).Msg("Sampling session stream failed")
		stream.send("error", middleware.ErrorResponse{
			Error:   http.StatusText(status),
			Code:    status,
			Message: err.Error(),
		})
		return
	}

	stream.send("result", result)
}

// POST /api/v1/sessions/compare
func (h *Handler) CompareModels(req *restful.Request, resp *restful.Response) {
	var compareRequest CompareRequest
	if err := req.ReadEntity(&compareRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	results, err := h.comparer.Compare(req.Request.Context(), compareRequest.SessionRequest, compareRequest.Models)
	if err != nil {
		status := StatusFor(err)
		h.logger.Error().Err(err).Int("status", status).Msg("Model comparison failed")
		middleware.HandleError(resp, err, status)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, CompareResponse{Results: results})
}

// GET /api/v1/models
func (h *Handler) ListModels(req *restful.Request, resp *restful.Response) {
	entries := make([]ModelEntry, 0, len(h.catalog.Models))
	for _, m := range h.catalog.Models {
		entries = append(entries, ModelEntry{ID: m.ID, Provider: m.Provider, Description: m.Description})
	}

	resp.WriteHeaderAndEntity(http.StatusOK, ModelsResponse{
		Models:  entries,
		Default: h.catalog.DefaultModel().ID,
	})
}

// GET /api/v1/presets
func (h *Handler) ListPresets(req *restful.Request, resp *restful.Response) {
	entries := make([]PresetEntry, 0, len(h.catalog.Presets))
	for _, p := range h.catalog.Presets {
		entries = append(entries, PresetEntry{Name: p.Name, Title: p.Title, Prompt: p.Prompt})
	}

	resp.WriteHeaderAndEntity(http.StatusOK, PresetsResponse{
		Presets: entries,
		Default: h.catalog.DefaultPreset().Name,
	})
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: Version,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

// eventWriter serialises server-sent events; progress arrives from several sampler goroutines.
type eventWriter struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
}

func (e *eventWriter) send(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event, data)
	e.flusher.Flush()
}
