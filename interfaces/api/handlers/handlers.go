package handlers

import (
	"todo-api/domain/services"
	"todo-api/pkg/config"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService services.UserService
	TaskService services.TaskService
	App         config.AppConfig
}

// Handlers contains all HTTP handlers
type Handlers struct {
	UserHandler   *UserHandler
	TaskHandler   *TaskHandler
	HealthHandler *HealthHandler
	UserService   services.UserService // used by the auth middleware
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		UserHandler:   NewUserHandler(services.UserService),
		TaskHandler:   NewTaskHandler(services.TaskService),
		HealthHandler: NewHealthHandler(services.App),
		UserService:   services.UserService,
	}
}
