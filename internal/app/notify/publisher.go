package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"surfhouse/internal/domain/shared/events"
)

// Publisher pushes lead lifecycle notifications to interested consumers.
// Publishing is fire-and-forget: a broker outage never blocks a lead write.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// Envelope is the wire shape of a published domain event.
type Envelope struct {
	Name       string          `json:"name"`
	Aggregate  string          `json:"aggregate"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Drain publishes an aggregate's pending events and clears them. Failures
// are logged, never propagated.
func Drain(ctx context.Context, pub Publisher, topic string, logger *slog.Logger, recorder *events.EventRecorder) {
	pending := recorder.PendingEvents()
	recorder.ClearEvents()
	if pub == nil || len(pending) == 0 {
		return
	}
	for _, event := range pending {
		payload, err := json.Marshal(event)
		if err != nil {
			if logger != nil {
				logger.Warn("event encode failed", "event", event.EventName(), "error", err)
			}
			continue
		}
		env := Envelope{
			Name:       event.EventName(),
			Aggregate:  event.AggregateID(),
			OccurredAt: event.OccurredAt(),
			Payload:    payload,
		}
		body, err := json.Marshal(env)
		if err != nil {
			continue
		}
		if err := pub.Publish(ctx, topic, event.AggregateID(), body); err != nil && logger != nil {
			logger.Warn("event publish failed", "event", event.EventName(), "error", err)
		}
	}
}

// Noop drops every event; used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, string, []byte) error { return nil }
