package ports

import (
	"context"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

// TaskListCachePort caches an owner's task listing between mutations.
//
// Every invalidation advances the owner's version. GetTaskList reports the
// version it looked at and SetTaskList stores under that version, so a listing
// read from the store before a concurrent mutation is never served afterwards.
type TaskListCachePort interface {
	// GetTaskList returns a nil list on a miss, along with the current version.
	GetTaskList(ctx context.Context, userID uuid.UUID) (*models.TaskList, int64, error)
	SetTaskList(ctx context.Context, userID uuid.UUID, version int64, list *models.TaskList) error
	InvalidateTaskList(ctx context.Context, userID uuid.UUID) error
}
