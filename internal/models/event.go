// Package models defines the webhook event types posted by the voice bot.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status values the bot reports over the status webhook. Anything else is
// stored as-is but dispatches no hook.
const (
	StatusJoined = "joined"
	StatusLeft   = "left"
	StatusError  = "error"
)

// StatusEvent is a call-lifecycle update from the bot.
type StatusEvent struct {
	CallID     string    `json:"callId"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// TranscriptionEvent announces a captured audio file held by the bot.
// The audioFilePath is an opaque reference; this service never fetches it.
type TranscriptionEvent struct {
	CallID        string    `json:"callId"`
	AudioFilePath string    `json:"audioFilePath"`
	SpeakerID     string    `json:"speakerId"`
	SpeakerName   string    `json:"speakerName"`
	DurationMs    int64     `json:"durationMs"`
	Timestamp     time.Time `json:"timestamp"`
	ReceivedAt    time.Time `json:"receivedAt"`
}

// ValidationError names the payload field that was missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload: field %q %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DecodeStatusEvent parses and validates a status webhook body.
// ReceivedAt is left zero; the store assigns it at append time.
func DecodeStatusEvent(data []byte) (StatusEvent, error) {
	var raw struct {
		CallID    *string `json:"callId"`
		Status    *string `json:"status"`
		Message   *string `json:"message"`
		Timestamp *string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return StatusEvent{}, invalid("body", "is not valid JSON")
	}

	if raw.CallID == nil || *raw.CallID == "" {
		return StatusEvent{}, invalid("callId", "is required")
	}
	if raw.Status == nil {
		return StatusEvent{}, invalid("status", "is required")
	}
	if raw.Message == nil {
		return StatusEvent{}, invalid("message", "is required")
	}
	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return StatusEvent{}, err
	}

	return StatusEvent{
		CallID:    *raw.CallID,
		Status:    *raw.Status,
		Message:   *raw.Message,
		Timestamp: ts,
	}, nil
}

// DecodeTranscriptionEvent parses and validates a transcription webhook body.
func DecodeTranscriptionEvent(data []byte) (TranscriptionEvent, error) {
	var raw struct {
		CallID        *string `json:"callId"`
		AudioFilePath *string `json:"audioFilePath"`
		SpeakerID     *string `json:"speakerId"`
		SpeakerName   *string `json:"speakerName"`
		DurationMs    *int64  `json:"durationMs"`
		Timestamp     *string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return TranscriptionEvent{}, invalid("body", "is not valid JSON")
	}

	if raw.CallID == nil || *raw.CallID == "" {
		return TranscriptionEvent{}, invalid("callId", "is required")
	}
	if raw.AudioFilePath == nil {
		return TranscriptionEvent{}, invalid("audioFilePath", "is required")
	}
	if raw.SpeakerID == nil {
		return TranscriptionEvent{}, invalid("speakerId", "is required")
	}
	if raw.SpeakerName == nil {
		return TranscriptionEvent{}, invalid("speakerName", "is required")
	}
	if raw.DurationMs == nil {
		return TranscriptionEvent{}, invalid("durationMs", "is required")
	}
	if *raw.DurationMs < 0 {
		return TranscriptionEvent{}, invalid("durationMs", "must be non-negative")
	}
	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return TranscriptionEvent{}, err
	}

	return TranscriptionEvent{
		CallID:        *raw.CallID,
		AudioFilePath: *raw.AudioFilePath,
		SpeakerID:     *raw.SpeakerID,
		SpeakerName:   *raw.SpeakerName,
		DurationMs:    *raw.DurationMs,
		Timestamp:     ts,
	}, nil
}

func parseTimestamp(s *string) (time.Time, error) {
	if s == nil {
		return time.Time{}, invalid("timestamp", "is required")
	}
	ts, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, invalid("timestamp", "must be an RFC 3339 timestamp")
	}
	return ts, nil
}
