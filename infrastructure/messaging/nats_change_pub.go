package messaging

import (
	"context"

	"couplesync/domain/ports"
	natspkg "couplesync/infrastructure/nats"
	"couplesync/pkg/logger"
)

// NATSChangePublisher implements ports.ChangePublisherPort over core NATS pub/sub
type NATSChangePublisher struct {
	publisher *natspkg.Publisher
}

func NewNATSChangePublisher(publisher *natspkg.Publisher) ports.ChangePublisherPort {
	return &NATSChangePublisher{publisher: publisher}
}

func (p *NATSChangePublisher) PublishChange(ctx context.Context, event *ports.ChangeEvent) error {
	subject := natspkg.SubjectTaskChanges
	if event.Table == ports.TableCouples {
		subject = natspkg.SubjectCoupleChanges
	}

	if err := p.publisher.Publish(subject, event); err != nil {
		return err
	}

	logger.DebugContext(ctx, "Change event published",
		"table", event.Table,
		"action", event.Action,
		"entity_id", event.EntityID,
	)
	return nil
}
