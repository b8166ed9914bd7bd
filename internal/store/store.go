// Package store holds the in-memory event log for received webhooks.
//
// State is process-lifetime only. Two independent append-only sequences are
// kept (status and transcription events); a single mutex serializes every
// operation against both so summaries are never torn.
package store

import (
	"sync"
	"time"

	"arty-voicebot-backend/internal/models"
)

// DefaultSummaryLimit is the recent-window size used by Summary callers.
const DefaultSummaryLimit = 10

// Store is the owned event log passed to the handlers.
type Store struct {
	mu             sync.Mutex
	status         []models.StatusEvent
	transcriptions []models.TranscriptionEvent

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// AppendStatus records a status event in arrival order, stamping ReceivedAt.
// The stored copy is returned.
func (s *Store) AppendStatus(ev models.StatusEvent) models.StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ReceivedAt = s.now().UTC()
	s.status = append(s.status, ev)
	return ev
}

// AppendTranscription records a transcription event in arrival order,
// stamping ReceivedAt. The stored copy is returned.
func (s *Store) AppendTranscription(ev models.TranscriptionEvent) models.TranscriptionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ReceivedAt = s.now().UTC()
	s.transcriptions = append(s.transcriptions, ev)
	return ev
}

// Counts returns the current size of each sequence.
func (s *Store) Counts() (statusCount, transcriptionCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.status), len(s.transcriptions)
}

// QueryByCallID returns every event whose CallID matches, per sequence, in
// arrival order. Both slices are non-nil so they encode as [] not null.
func (s *Store) QueryByCallID(callID string) ([]models.StatusEvent, []models.TranscriptionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := make([]models.StatusEvent, 0)
	for _, ev := range s.status {
		if ev.CallID == callID {
			status = append(status, ev)
		}
	}
	transcriptions := make([]models.TranscriptionEvent, 0)
	for _, ev := range s.transcriptions {
		if ev.CallID == callID {
			transcriptions = append(transcriptions, ev)
		}
	}
	return status, transcriptions
}

// Summary is a bounded recent-window view over both sequences.
type Summary struct {
	TotalStatus         int
	TotalTranscriptions int
	Status              []models.StatusEvent
	Transcriptions      []models.TranscriptionEvent
}

// RecentSummary returns total counts plus the most recently appended limit
// events of each sequence, oldest-to-newest. A limit <= 0 falls back to
// DefaultSummaryLimit.
func (s *Store) RecentSummary(limit int) Summary {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return Summary{
		TotalStatus:         len(s.status),
		TotalTranscriptions: len(s.transcriptions),
		Status:              tail(s.status, limit),
		Transcriptions:      tail(s.transcriptions, limit),
	}
}

// ClearAll atomically empties both sequences and returns their prior sizes.
func (s *Store) ClearAll() (statusCleared, transcriptionsCleared int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statusCleared = len(s.status)
	transcriptionsCleared = len(s.transcriptions)
	s.status = nil
	s.transcriptions = nil
	return statusCleared, transcriptionsCleared
}

func tail[E any](events []E, limit int) []E {
	start := len(events) - limit
	if start < 0 {
		start = 0
	}
	out := make([]E, len(events)-start)
	copy(out, events[start:])
	return out
}
