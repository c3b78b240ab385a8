package repositories

import (
	"context"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

// TaskRepository stores tasks scoped by owner. Lookups for a task owned by
// someone else fail with models.ErrNotFound, same as a missing task.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, ownerID uuid.UUID, id uint) (*models.Task, error)
	ListByUser(ctx context.Context, ownerID uuid.UUID, order models.TaskOrder) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, ownerID uuid.UUID, id uint) error
	DeleteByUser(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
