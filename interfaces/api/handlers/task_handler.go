package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

// TaskHandler serves /api/:user_id/tasks. Routes sit behind Protected and
// OwnerOnly, so the path owner is always the authenticated caller.
type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	list, err := h.taskService.ListTasks(c.UserContext(), user.ID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, dto.TaskListToTaskListResponse(list))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, "", errors)
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		return err
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.UserContext(), userID, taskID)
	if err != nil {
		return taskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(ctx, userID, taskID, &req)
	if err != nil {
		return taskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleTask(c.UserContext(), userID, taskID)
	if err != nil {
		return taskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.UserContext(), userID, taskID); err != nil {
		return taskError(c, err)
	}

	return utils.NoContentResponse(c)
}

// taskTarget resolves the caller and the numeric :task_id path parameter.
func taskTarget(c *fiber.Ctx) (uuid.UUID, uint, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return uuid.Nil, 0, fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
	}

	raw := c.Params("task_id")
	taskID, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Invalid task ID", "task_id", raw)
		return uuid.Nil, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid task ID")
	}

	return user.ID, uint(taskID), nil
}

func taskError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return utils.NotFoundResponse(c, "Task not found")
	}
	return err
}
