package hooks

import (
	"context"

	"github.com/rs/zerolog"

	"arty-voicebot-backend/internal/events"
	"arty-voicebot-backend/internal/models"
)

// KafkaNotifier forwards status hooks to the downstream event publisher so
// other systems can react to calls joining, ending, or erroring. Publish
// failures are logged and dropped; the webhook path never sees them.
type KafkaNotifier struct {
	publisher *events.Publisher
	logger    zerolog.Logger
}

// NewKafkaNotifier creates a notifier backed by the given publisher.
func NewKafkaNotifier(publisher *events.Publisher, logger zerolog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		publisher: publisher,
		logger:    logger.With().Str("component", "kafka-notifier").Logger(),
	}
}

func (k *KafkaNotifier) BotJoined(ctx context.Context, ev models.StatusEvent) {
	k.forward(ctx, ev)
}

func (k *KafkaNotifier) MeetingEnded(ctx context.Context, ev models.StatusEvent) {
	k.forward(ctx, ev)
}

func (k *KafkaNotifier) CallError(ctx context.Context, ev models.StatusEvent) {
	k.forward(ctx, ev)
}

func (k *KafkaNotifier) forward(ctx context.Context, ev models.StatusEvent) {
	if err := k.publisher.PublishStatusChange(ctx, ev.CallID, ev); err != nil {
		k.logger.Error().
			Err(err).
			Str("callId", ev.CallID).
			Str("status", ev.Status).
			Msg("Failed to publish status change")
	}
}
