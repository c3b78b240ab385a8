package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/middleware"
)

// 403 messages returned when :user_id is not the caller
const (
	deniedListTasks  = "Not authorized to access these tasks"
	deniedCreateTask = "Not authorized to create tasks for this user"
	deniedReadTask   = "Not authorized to access this task"
	deniedUpdateTask = "Not authorized to update this task"
	deniedDeleteTask = "Not authorized to delete this task"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	protected := middleware.Protected(h.UserService)
	owner := middleware.OwnerOnly

	tasks := api.Group("/:user_id/tasks")
	tasks.Get("/", protected, owner(deniedListTasks), h.TaskHandler.ListTasks)
	tasks.Post("/", protected, owner(deniedCreateTask), h.TaskHandler.CreateTask)
	tasks.Get("/:task_id", protected, owner(deniedReadTask), h.TaskHandler.GetTask)
	tasks.Put("/:task_id", protected, owner(deniedUpdateTask), h.TaskHandler.UpdateTask)
	tasks.Delete("/:task_id", protected, owner(deniedDeleteTask), h.TaskHandler.DeleteTask)
	tasks.Patch("/:task_id/toggle", protected, owner(deniedUpdateTask), h.TaskHandler.ToggleTask)
}
