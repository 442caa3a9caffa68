package nats

import (
	"encoding/json"
	"fmt"

	"couplesync/pkg/logger"
)

// Publisher ส่ง change events ขึ้น NATS
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish ส่ง payload (JSON) ไปยัง subject
func (p *Publisher) Publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := p.client.conn.Publish(subject, data); err != nil {
		logger.Error("Failed to publish to NATS", "subject", subject, "error", err)
		return fmt.Errorf("failed to publish: %w", err)
	}

	return nil
}
