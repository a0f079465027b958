package service

import (
	"context"
	"math"

	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
)

// publish emits an event after the fact; a broker failure never fails the request.
func publish(ctx context.Context, p mykafka.Publisher, topic, key, eventType string, data map[string]any) {
	if p == nil {
		return
	}
	ev := mykafka.NewEvent(eventType, data)
	if err := p.PublishEvent(context.WithoutCancel(ctx), topic, key, ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", eventType, "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
