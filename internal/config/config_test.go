package config

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVICE_NAME", "SERVICE_PRINCIPAL", "PORT",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC_STATUS",
		"KAFKA_TOPIC_AUDIO", "KAFKA_PRINCIPAL",
		"EVENTS_SUMMARY_LIMIT", "LOG_LEVEL", "LOG_FORMAT", "METRICS_PORT",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Service.Name != "arty-voicebot-backend" {
		t.Errorf("expected default service name, got %s", cfg.Service.Name)
	}
	if cfg.Service.Principal != "svc-arty-backend" {
		t.Errorf("expected default principal 'svc-arty-backend', got %s", cfg.Service.Principal)
	}
	if cfg.Service.Port != "8001" {
		t.Errorf("expected default port '8001', got %s", cfg.Service.Port)
	}

	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled by default")
	}
	if cfg.Kafka.TopicStatus != "arty.call.status" {
		t.Errorf("expected default status topic, got %s", cfg.Kafka.TopicStatus)
	}
	if cfg.Kafka.TopicAudio != "arty.audio.captured" {
		t.Errorf("expected default audio topic, got %s", cfg.Kafka.TopicAudio)
	}

	if cfg.Query.SummaryLimit != 10 {
		t.Errorf("expected default summary limit 10, got %d", cfg.Query.SummaryLimit)
	}

	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "json" {
		t.Errorf("expected default log format 'json', got %s", cfg.Observability.LogFormat)
	}
	if cfg.Observability.MetricsPort != "9090" {
		t.Errorf("expected default metrics port '9090', got %s", cfg.Observability.MetricsPort)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVICE_NAME", "custom-backend")
	t.Setenv("SERVICE_PRINCIPAL", "custom-principal")
	t.Setenv("PORT", "9999")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_TOPIC_STATUS", "custom.status")
	t.Setenv("KAFKA_TOPIC_AUDIO", "custom.audio")
	t.Setenv("EVENTS_SUMMARY_LIMIT", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("METRICS_PORT", "9100")

	cfg := Load()

	if cfg.Service.Name != "custom-backend" {
		t.Errorf("expected service name 'custom-backend', got %s", cfg.Service.Name)
	}
	if cfg.Service.Port != "9999" {
		t.Errorf("expected port '9999', got %s", cfg.Service.Port)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected Kafka enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "kafka-1:9092" || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("expected two trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.TopicStatus != "custom.status" {
		t.Errorf("expected status topic 'custom.status', got %s", cfg.Kafka.TopicStatus)
	}
	if cfg.Query.SummaryLimit != 25 {
		t.Errorf("expected summary limit 25, got %d", cfg.Query.SummaryLimit)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "console" {
		t.Errorf("expected log format 'console', got %s", cfg.Observability.LogFormat)
	}
}

func TestLoad_InvalidValues_FallbackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_ENABLED", "not-a-bool")
	t.Setenv("EVENTS_SUMMARY_LIMIT", "invalid")

	cfg := Load()

	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled on invalid input")
	}
	if cfg.Query.SummaryLimit != 10 {
		t.Errorf("expected default summary limit on invalid input, got %d", cfg.Query.SummaryLimit)
	}
}

func TestLoad_NonPositiveSummaryLimit_FallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTS_SUMMARY_LIMIT", "-3")

	cfg := Load()

	if cfg.Query.SummaryLimit != 10 {
		t.Errorf("expected default summary limit for non-positive input, got %d", cfg.Query.SummaryLimit)
	}
}

func TestLoad_KafkaPrincipal_FallsBackToServicePrincipal(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVICE_PRINCIPAL", "my-service")

	cfg := Load()

	if cfg.Kafka.Principal != "my-service" {
		t.Errorf("expected Kafka principal to fall back to service principal, got %s", cfg.Kafka.Principal)
	}
}

func TestEnvOrDefaultBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		expected bool
	}{
		{"true string", "true", false, true},
		{"false string", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"TRUE uppercase", "TRUE", false, true},
		{"invalid", "invalid", true, true},
		{"empty", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			if tt.envValue != "" {
				t.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}

			got := envOrDefaultBool(key, tt.def)
			if got != tt.expected {
				t.Errorf("envOrDefaultBool(%s, %v) = %v, want %v", tt.envValue, tt.def, got, tt.expected)
			}
		})
	}
}

func TestEnvOrDefaultSlice(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected []string
	}{
		{"single", "a:9092", []string{"a:9092"}},
		{"multiple with spaces", "a:9092, b:9092", []string{"a:9092", "b:9092"}},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_SLICE_VAR", tt.envValue)

			got := envOrDefaultSlice("TEST_SLICE_VAR", nil)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}
