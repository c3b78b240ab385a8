package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-api/domain/models"
	"todo-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	if err := conn(ctx, r.db).Omit("User").Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, ownerID uuid.UUID, id uint) (*models.Task, error) {
	var task models.Task
	err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, ownerID uuid.UUID, order models.TaskOrder) ([]*models.Task, error) {
	query := conn(ctx, r.db).Where("user_id = ?", ownerID)
	switch order {
	case models.OrderIDAscending:
		query = query.Order("id ASC")
	default:
		query = query.Order("created_at DESC").Order("id DESC")
	}

	tasks := []*models.Task{}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update writes every mutable column, zero values included.
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	result := conn(ctx, r.db).Model(&models.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update task %d: %w", task.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, ownerID uuid.UUID, id uint) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Task{})
	if result.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) DeleteByUser(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("user_id = ?", ownerID).Delete(&models.Task{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete tasks of user %s: %w", ownerID, result.Error)
	}
	return result.RowsAffected, nil
}
