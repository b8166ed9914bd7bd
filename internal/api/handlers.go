// Package api exposes the webhook, query, and admin HTTP endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"arty-voicebot-backend/internal/events"
	"arty-voicebot-backend/internal/hooks"
	"arty-voicebot-backend/internal/models"
	"arty-voicebot-backend/internal/observability/metrics"
	"arty-voicebot-backend/internal/store"
)

// Webhook bodies are small JSON documents; anything bigger is abuse.
const maxBodyBytes = 64 * 1024

// Handlers serves the webhook intake and query/admin endpoints.
type Handlers struct {
	serviceName  string
	store        *store.Store
	dispatcher   *hooks.Dispatcher
	publisher    *events.Publisher
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	summaryLimit int
}

// NewHandlers wires the endpoint handlers to their collaborators.
func NewHandlers(
	serviceName string,
	st *store.Store,
	dispatcher *hooks.Dispatcher,
	publisher *events.Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
	summaryLimit int,
) *Handlers {
	if summaryLimit <= 0 {
		summaryLimit = store.DefaultSummaryLimit
	}
	return &Handlers{
		serviceName:  serviceName,
		store:        st,
		dispatcher:   dispatcher,
		publisher:    publisher,
		metrics:      m,
		logger:       logger.With().Str("component", "api").Logger(),
		summaryLimit: summaryLimit,
	}
}

type statusAck struct {
	Received bool   `json:"received"`
	CallID   string `json:"callId"`
}

type transcriptionAck struct {
	Received bool   `json:"received"`
	CallID   string `json:"callId"`
	Message  string `json:"message"`
}

type validationFailure struct {
	Error  string `json:"error"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type filteredEvents struct {
	CallID              string                      `json:"callId"`
	StatusEvents        []models.StatusEvent        `json:"statusEvents"`
	TranscriptionEvents []models.TranscriptionEvent `json:"transcriptionEvents"`
}

type eventsSummary struct {
	TotalStatusEvents        int                         `json:"totalStatusEvents"`
	TotalTranscriptionEvents int                         `json:"totalTranscriptionEvents"`
	StatusEvents             []models.StatusEvent        `json:"statusEvents"`
	TranscriptionEvents      []models.TranscriptionEvent `json:"transcriptionEvents"`
}

type clearResult struct {
	Cleared                    bool `json:"cleared"`
	StatusEventsCleared        int  `json:"statusEventsCleared"`
	TranscriptionEventsCleared int  `json:"transcriptionEventsCleared"`
}

// Root describes the service and its endpoint map.
func (h *Handlers) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": h.serviceName,
		"status":  "running",
		"endpoints": map[string]string{
			"status":        "/api/arty/status",
			"transcription": "/api/arty/transcription",
			"events":        "/api/arty/events",
			"health":        "/health",
		},
	})
}

// ReceiveStatus handles POST /api/arty/status: validate, append, dispatch
// the status hook, acknowledge.
func (h *Handlers) ReceiveStatus(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.rejectUnreadable(w, "status", err)
		return
	}

	ev, err := models.DecodeStatusEvent(body)
	if err != nil {
		h.reject(w, "status", err)
		return
	}

	stored := h.store.AppendStatus(ev)
	statusCount, _ := h.store.Counts()
	h.metrics.RecordWebhookReceived("status")
	h.metrics.SetEventsStored("status", statusCount)

	h.logger.Info().
		Str("callId", stored.CallID).
		Str("status", stored.Status).
		Str("message", stored.Message).
		Msg("Status update received")

	// Hooks run before the ack but can never fail it.
	h.dispatcher.Dispatch(r.Context(), stored)

	writeJSON(w, http.StatusOK, statusAck{Received: true, CallID: stored.CallID})
}

// ReceiveTranscription handles POST /api/arty/transcription: validate,
// append, fan out the audio-captured notification, acknowledge. Actual
// transcription of the referenced audio is deferred to downstream consumers.
func (h *Handlers) ReceiveTranscription(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.rejectUnreadable(w, "transcription", err)
		return
	}

	ev, err := models.DecodeTranscriptionEvent(body)
	if err != nil {
		h.reject(w, "transcription", err)
		return
	}

	stored := h.store.AppendTranscription(ev)
	_, transcriptionCount := h.store.Counts()
	h.metrics.RecordWebhookReceived("transcription")
	h.metrics.SetEventsStored("transcription", transcriptionCount)

	h.logger.Info().
		Str("callId", stored.CallID).
		Str("speakerId", stored.SpeakerID).
		Str("speakerName", stored.SpeakerName).
		Str("audioFilePath", stored.AudioFilePath).
		Int64("durationMs", stored.DurationMs).
		Msg("Audio captured")

	if err := h.publisher.PublishAudioCaptured(r.Context(), stored.CallID, stored); err != nil {
		h.logger.Error().
			Err(err).
			Str("callId", stored.CallID).
			Msg("Failed to publish audio-captured event")
	}

	writeJSON(w, http.StatusOK, transcriptionAck{
		Received: true,
		CallID:   stored.CallID,
		Message:  "Audio will be processed",
	})
}

// GetEvents handles GET /api/arty/events. With call_id it returns the
// filtered view; without it, a bounded recent summary.
func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request) {
	if callID := r.URL.Query().Get("call_id"); callID != "" {
		status, transcriptions := h.store.QueryByCallID(callID)
		writeJSON(w, http.StatusOK, filteredEvents{
			CallID:              callID,
			StatusEvents:        status,
			TranscriptionEvents: transcriptions,
		})
		return
	}

	summary := h.store.RecentSummary(h.summaryLimit)
	writeJSON(w, http.StatusOK, eventsSummary{
		TotalStatusEvents:        summary.TotalStatus,
		TotalTranscriptionEvents: summary.TotalTranscriptions,
		StatusEvents:             summary.Status,
		TranscriptionEvents:      summary.Transcriptions,
	})
}

// ClearEvents handles DELETE /api/arty/events.
func (h *Handlers) ClearEvents(w http.ResponseWriter, r *http.Request) {
	statusCleared, transcriptionsCleared := h.store.ClearAll()

	h.metrics.RecordEventsCleared(statusCleared + transcriptionsCleared)
	h.metrics.SetEventsStored("status", 0)
	h.metrics.SetEventsStored("transcription", 0)

	h.logger.Info().
		Int("statusEventsCleared", statusCleared).
		Int("transcriptionEventsCleared", transcriptionsCleared).
		Msg("Cleared stored events")

	writeJSON(w, http.StatusOK, clearResult{
		Cleared:                    true,
		StatusEventsCleared:        statusCleared,
		TranscriptionEventsCleared: transcriptionsCleared,
	})
}

// Health handles GET /health. Static payload plus current time; no
// dependency checks.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   h.serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) reject(w http.ResponseWriter, kind string, err error) {
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		verr = &models.ValidationError{Field: "body", Reason: "could not be processed"}
	}

	h.metrics.RecordValidationFailure(kind, verr.Field)
	h.logger.Warn().
		Str("kind", kind).
		Str("field", verr.Field).
		Str("reason", verr.Reason).
		Msg("Webhook payload rejected")

	writeJSON(w, http.StatusBadRequest, validationFailure{
		Error:  "validation failed",
		Field:  verr.Field,
		Reason: verr.Reason,
	})
}

func (h *Handlers) rejectUnreadable(w http.ResponseWriter, kind string, err error) {
	h.metrics.RecordValidationFailure(kind, "body")
	h.logger.Warn().
		Err(err).
		Str("kind", kind).
		Msg("Failed to read webhook body")

	writeJSON(w, http.StatusBadRequest, validationFailure{
		Error:  "validation failed",
		Field:  "body",
		Reason: "could not be read",
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return io.ReadAll(r.Body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
