package models

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeStatusEvent_Valid(t *testing.T) {
	body := []byte(`{"callId":"c1","status":"joined","message":"ok","timestamp":"2024-01-01T00:00:00Z"}`)

	ev, err := DecodeStatusEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.CallID != "c1" {
		t.Errorf("expected callId 'c1', got %s", ev.CallID)
	}
	if ev.Status != StatusJoined {
		t.Errorf("expected status 'joined', got %s", ev.Status)
	}
	if ev.Message != "ok" {
		t.Errorf("expected message 'ok', got %s", ev.Message)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ev.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, ev.Timestamp)
	}
	if !ev.ReceivedAt.IsZero() {
		t.Errorf("expected zero receivedAt before append, got %v", ev.ReceivedAt)
	}
}

func TestDecodeStatusEvent_FractionalSeconds(t *testing.T) {
	body := []byte(`{"callId":"c1","status":"left","message":"bye","timestamp":"2024-01-01T00:00:00.250Z"}`)

	ev, err := DecodeStatusEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Timestamp.Nanosecond() != 250_000_000 {
		t.Errorf("expected fractional seconds preserved, got %v", ev.Timestamp)
	}
}

func TestDecodeStatusEvent_UnknownStatusAccepted(t *testing.T) {
	body := []byte(`{"callId":"c1","status":"reconnecting","message":"","timestamp":"2024-01-01T00:00:00Z"}`)

	ev, err := DecodeStatusEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Status != "reconnecting" {
		t.Errorf("expected status stored verbatim, got %s", ev.Status)
	}
}

func TestDecodeStatusEvent_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"not json", `{`, "body"},
		{"missing callId", `{"status":"joined","message":"ok","timestamp":"2024-01-01T00:00:00Z"}`, "callId"},
		{"empty callId", `{"callId":"","status":"joined","message":"ok","timestamp":"2024-01-01T00:00:00Z"}`, "callId"},
		{"missing status", `{"callId":"c1","message":"ok","timestamp":"2024-01-01T00:00:00Z"}`, "status"},
		{"missing message", `{"callId":"c1","status":"joined","timestamp":"2024-01-01T00:00:00Z"}`, "message"},
		{"missing timestamp", `{"callId":"c1","status":"joined","message":"ok"}`, "timestamp"},
		{"malformed timestamp", `{"callId":"c1","status":"joined","message":"ok","timestamp":"yesterday"}`, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStatusEvent([]byte(tt.body))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestDecodeTranscriptionEvent_Valid(t *testing.T) {
	body := []byte(`{"callId":"c2","audioFilePath":"/audio/c2-0001.wav","speakerId":"sp-1","speakerName":"Alice","durationMs":5400,"timestamp":"2024-01-01T00:00:00Z"}`)

	ev, err := DecodeTranscriptionEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.CallID != "c2" {
		t.Errorf("expected callId 'c2', got %s", ev.CallID)
	}
	if ev.AudioFilePath != "/audio/c2-0001.wav" {
		t.Errorf("unexpected audioFilePath %s", ev.AudioFilePath)
	}
	if ev.SpeakerID != "sp-1" || ev.SpeakerName != "Alice" {
		t.Errorf("unexpected speaker %s/%s", ev.SpeakerID, ev.SpeakerName)
	}
	if ev.DurationMs != 5400 {
		t.Errorf("expected durationMs 5400, got %d", ev.DurationMs)
	}
}

func TestDecodeTranscriptionEvent_ZeroDurationAccepted(t *testing.T) {
	body := []byte(`{"callId":"c2","audioFilePath":"/a.wav","speakerId":"s","speakerName":"n","durationMs":0,"timestamp":"2024-01-01T00:00:00Z"}`)

	ev, err := DecodeTranscriptionEvent(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.DurationMs != 0 {
		t.Errorf("expected durationMs 0, got %d", ev.DurationMs)
	}
}

func TestDecodeTranscriptionEvent_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing callId", `{"audioFilePath":"/a.wav","speakerId":"s","speakerName":"n","durationMs":1,"timestamp":"2024-01-01T00:00:00Z"}`, "callId"},
		{"missing audioFilePath", `{"callId":"c2","speakerId":"s","speakerName":"n","durationMs":1,"timestamp":"2024-01-01T00:00:00Z"}`, "audioFilePath"},
		{"missing speakerId", `{"callId":"c2","audioFilePath":"/a.wav","speakerName":"n","durationMs":1,"timestamp":"2024-01-01T00:00:00Z"}`, "speakerId"},
		{"missing speakerName", `{"callId":"c2","audioFilePath":"/a.wav","speakerId":"s","durationMs":1,"timestamp":"2024-01-01T00:00:00Z"}`, "speakerName"},
		{"missing durationMs", `{"callId":"c2","audioFilePath":"/a.wav","speakerId":"s","speakerName":"n","timestamp":"2024-01-01T00:00:00Z"}`, "durationMs"},
		{"negative durationMs", `{"callId":"c2","audioFilePath":"/a.wav","speakerId":"s","speakerName":"n","durationMs":-1,"timestamp":"2024-01-01T00:00:00Z"}`, "durationMs"},
		{"missing timestamp", `{"callId":"c2","audioFilePath":"/a.wav","speakerId":"s","speakerName":"n","durationMs":1}`, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTranscriptionEvent([]byte(tt.body))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}
