package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arty-voicebot-backend/internal/api"
	"arty-voicebot-backend/internal/app"
	"arty-voicebot-backend/internal/config"
	"arty-voicebot-backend/internal/events"
	"arty-voicebot-backend/internal/hooks"
	"arty-voicebot-backend/internal/observability"
	"arty-voicebot-backend/internal/observability/metrics"
	"arty-voicebot-backend/internal/store"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		application.Logger.Fatal().Err(err).Msg("application start failed")
	}

	// Downstream fan-out: log-only mode unless Kafka is configured
	publisher := events.New(&events.Config{
		Enabled:     cfg.Kafka.Enabled,
		Brokers:     cfg.Kafka.Brokers,
		TopicStatus: cfg.Kafka.TopicStatus,
		TopicAudio:  cfg.Kafka.TopicAudio,
		Principal:   cfg.Kafka.Principal,
	})
	defer publisher.Close()

	eventStore := store.New()
	dispatcher := hooks.NewDispatcher(
		metrics.DefaultMetrics,
		application.Logger,
		hooks.NewLogNotifier(application.Logger),
		hooks.NewKafkaNotifier(publisher, application.Logger),
	)

	handlers := api.NewHandlers(
		cfg.Service.Name,
		eventStore,
		dispatcher,
		publisher,
		metrics.DefaultMetrics,
		application.Logger,
		cfg.Query.SummaryLimit,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		Handler:      api.NewRouter(handlers, metrics.DefaultMetrics, application.Logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	obsServer := observability.NewServer(":" + cfg.Observability.MetricsPort)
	obsServer.Start()

	go func() {
		application.Logger.Info().
			Str("addr", server.Addr).
			Str("statusEndpoint", "/api/arty/status").
			Str("transcriptionEndpoint", "/api/arty/transcription").
			Str("eventsEndpoint", "/api/arty/events").
			Msg("Webhook API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			application.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		application.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := obsServer.Shutdown(ctx); err != nil {
		application.Logger.Error().Err(err).Msg("Observability server shutdown failed")
	}

	application.Shutdown()
}
