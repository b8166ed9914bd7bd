// Package hooks dispatches status-specific side effects for stored events.
//
// Dispatch happens exactly once per event, synchronously before the webhook
// acknowledgement. A hook must never block the intake path or fail it:
// panics are recovered and logged, nothing propagates to the caller.
package hooks

import (
	"context"

	"github.com/rs/zerolog"

	"arty-voicebot-backend/internal/models"
	"arty-voicebot-backend/internal/observability/metrics"
)

// Notifier receives the status-specific side effects.
type Notifier interface {
	// BotJoined fires when the bot reports it joined a meeting.
	BotJoined(ctx context.Context, ev models.StatusEvent)

	// MeetingEnded fires when the bot leaves, so meeting records can be
	// finalized downstream.
	MeetingEnded(ctx context.Context, ev models.StatusEvent)

	// CallError fires on a reported call error, for alerting.
	CallError(ctx context.Context, ev models.StatusEvent)
}

// actions maps a recognized status to its notifier method. Unknown statuses
// have no entry and dispatch nothing.
var actions = map[string]func(Notifier, context.Context, models.StatusEvent){
	models.StatusJoined: Notifier.BotJoined,
	models.StatusLeft:   Notifier.MeetingEnded,
	models.StatusError:  Notifier.CallError,
}

// Dispatcher routes status events to the configured notifiers.
type Dispatcher struct {
	notifiers []Notifier
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewDispatcher creates a dispatcher fanning out to the given notifiers.
func NewDispatcher(m *metrics.Metrics, logger zerolog.Logger, notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		metrics:   m,
		logger:    logger.With().Str("component", "hooks").Logger(),
	}
}

// Dispatch invokes the hook matching ev.Status on every notifier. It never
// returns an error; hook failures are contained here.
func (d *Dispatcher) Dispatch(ctx context.Context, ev models.StatusEvent) {
	action, ok := actions[ev.Status]
	if !ok {
		return
	}
	d.metrics.RecordHookDispatched(ev.Status)
	for _, n := range d.notifiers {
		d.invoke(ctx, action, n, ev)
	}
}

func (d *Dispatcher) invoke(ctx context.Context, action func(Notifier, context.Context, models.StatusEvent), n Notifier, ev models.StatusEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("callId", ev.CallID).
				Str("status", ev.Status).
				Interface("panic", r).
				Msg("Hook panicked, event intake unaffected")
		}
	}()
	action(n, ctx, ev)
}

// LogNotifier is the default notifier: informational logging only, standing
// in for future database writes and user notifications.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates the logging notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (l *LogNotifier) BotJoined(_ context.Context, ev models.StatusEvent) {
	l.logger.Info().
		Str("callId", ev.CallID).
		Msg("Bot successfully joined meeting")
}

func (l *LogNotifier) MeetingEnded(_ context.Context, ev models.StatusEvent) {
	l.logger.Info().
		Str("callId", ev.CallID).
		Msg("Bot left meeting, meeting records can be finalized")
}

func (l *LogNotifier) CallError(_ context.Context, ev models.StatusEvent) {
	l.logger.Error().
		Str("callId", ev.CallID).
		Str("message", ev.Message).
		Msg("Error reported in call")
}
