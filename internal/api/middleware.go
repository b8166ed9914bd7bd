package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"arty-voicebot-backend/internal/observability/metrics"
)

// Instrument returns middleware recording per-request metrics and a
// structured access log line.
func Instrument(m *metrics.Metrics, logger zerolog.Logger) func(http.Handler) http.Handler {
	accessLogger := logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			m.RecordHTTPRequest(route, r.Method, strconv.Itoa(ww.Status()), duration.Seconds())

			accessLogger.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", ww.Status()).
				Dur("duration", duration).
				Str("requestId", middleware.GetReqID(r.Context())).
				Msg("HTTP request served")
		})
	}
}
