// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Configuration holds all service configuration.
type Configuration struct {
	Service       ServiceConfig
	Kafka         KafkaConfig
	Query         QueryConfig
	Observability ObservabilityConfig
}

// ServiceConfig holds identity and HTTP listener settings.
type ServiceConfig struct {
	Name      string
	Principal string
	Port      string
}

// KafkaConfig holds downstream fan-out settings.
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	TopicStatus string
	TopicAudio  string
	Principal   string
}

// QueryConfig holds read-path settings.
type QueryConfig struct {
	SummaryLimit int
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsPort string
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset or unparseable.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-arty-backend")

	return &Configuration{
		Service: ServiceConfig{
			Name:      envOrDefault("SERVICE_NAME", "arty-voicebot-backend"),
			Principal: principal,
			Port:      envOrDefault("PORT", "8001"),
		},
		Kafka: KafkaConfig{
			Enabled:     envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:     envOrDefaultSlice("KAFKA_BROKERS", nil),
			TopicStatus: envOrDefault("KAFKA_TOPIC_STATUS", "arty.call.status"),
			TopicAudio:  envOrDefault("KAFKA_TOPIC_AUDIO", "arty.audio.captured"),
			Principal:   envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Query: QueryConfig{
			SummaryLimit: envOrDefaultInt("EVENTS_SUMMARY_LIMIT", 10),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultSlice(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
