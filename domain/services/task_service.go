package services

import (
	"context"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID) (*models.TaskList, error)
	GetTask(ctx context.Context, userID uuid.UUID, taskID uint) (*models.Task, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error)
	ToggleTask(ctx context.Context, userID uuid.UUID, taskID uint) (*models.Task, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, taskID uint) error
}
