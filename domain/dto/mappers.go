package dto

import (
	"todo-api/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func NewTokenResponse(token string, user *models.User) *TokenResponse {
	return &TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        *UserToUserResponse(user),
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TaskListToTaskListResponse(list *models.TaskList) *TaskListResponse {
	tasks := make([]TaskResponse, len(list.Tasks))
	for i, task := range list.Tasks {
		tasks[i] = *TaskToTaskResponse(task)
	}
	return &TaskListResponse{
		Tasks:     tasks,
		Total:     list.Total,
		Completed: list.Completed,
		Pending:   list.Pending,
	}
}
