package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"todo-api/domain/models"
	"todo-api/pkg/logger"
)

// Publisher publishes task events to JetStream
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishTaskEvent sends one event to <prefix>.task.<type>.
func (p *Publisher) PublishTaskEvent(ctx context.Context, event models.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.client.Subject(event.Type)
	ack, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.DebugContext(ctx, "Task event published",
		"subject", subject,
		"task_id", event.TaskID,
		"sequence", ack.Sequence,
	)
	return nil
}
