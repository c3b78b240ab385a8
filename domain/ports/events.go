package ports

import (
	"context"

	"todo-api/domain/models"
)

// TaskEventPublisherPort announces committed task mutations.
type TaskEventPublisherPort interface {
	PublishTaskEvent(ctx context.Context, event models.TaskEvent) error
}
