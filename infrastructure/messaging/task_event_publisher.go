package messaging

import (
	"context"

	"todo-api/domain/models"
	"todo-api/domain/ports"
	natspkg "todo-api/infrastructure/nats"
)

// NATSTaskEventPublisher implements ports.TaskEventPublisherPort using NATS JetStream
type NATSTaskEventPublisher struct {
	publisher *natspkg.Publisher
}

func NewNATSTaskEventPublisher(publisher *natspkg.Publisher) ports.TaskEventPublisherPort {
	return &NATSTaskEventPublisher{publisher: publisher}
}

func (p *NATSTaskEventPublisher) PublishTaskEvent(ctx context.Context, event models.TaskEvent) error {
	return p.publisher.PublishTaskEvent(ctx, event)
}

// NoopTaskEventPublisher drops every event. Used when NATS is not configured.
type NoopTaskEventPublisher struct{}

func NewNoopTaskEventPublisher() ports.TaskEventPublisherPort {
	return NoopTaskEventPublisher{}
}

func (NoopTaskEventPublisher) PublishTaskEvent(context.Context, models.TaskEvent) error {
	return nil
}
