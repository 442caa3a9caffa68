package messaging

import (
	"context"
	"encoding/json"

	"couplesync/domain/ports"
	natspkg "couplesync/infrastructure/nats"
	"couplesync/pkg/logger"
)

// NATSChangeSubscriber implements ports.ChangeSubscriberPort
type NATSChangeSubscriber struct {
	subscriber *natspkg.Subscriber
}

func NewNATSChangeSubscriber(subscriber *natspkg.Subscriber) ports.ChangeSubscriberPort {
	return &NATSChangeSubscriber{subscriber: subscriber}
}

func (s *NATSChangeSubscriber) Subscribe(ctx context.Context, handler func(*ports.ChangeEvent)) error {
	return s.subscriber.Subscribe(natspkg.SubjectAllChanges, func(data []byte) {
		var event ports.ChangeEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Warn("Invalid change event payload", "error", err)
			return
		}
		handler(&event)
	})
}

func (s *NATSChangeSubscriber) Unsubscribe() error {
	return s.subscriber.UnsubscribeAll()
}
