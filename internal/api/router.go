package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"arty-voicebot-backend/internal/observability/metrics"
)

// NewRouter constructs the HTTP router for the service.
func NewRouter(h *Handlers, m *metrics.Metrics, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(Instrument(m, logger))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	r.Route("/api/arty", func(r chi.Router) {
		r.Post("/status", h.ReceiveStatus)
		r.Post("/transcription", h.ReceiveTranscription)
		r.Get("/events", h.GetEvents)
		r.Delete("/events", h.ClearEvents)
	})

	return r
}
