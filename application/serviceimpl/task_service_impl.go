package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/ports"
	"todo-api/domain/repositories"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	tx       repositories.Transactor
	cache    ports.TaskListCachePort      // nil disables list caching
	events   ports.TaskEventPublisherPort // nil disables events
	order    models.TaskOrder
	now      func() time.Time
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	tx repositories.Transactor,
	cache ports.TaskListCachePort,
	events ports.TaskEventPublisherPort,
	order models.TaskOrder,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		tx:       tx,
		cache:    cache,
		events:   events,
		order:    order,
		now:      utcNow,
	}
}

// utcNow is truncated to microseconds so values survive a Postgres round trip unchanged.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	task, err := models.NewTask(userID, req.Title, req.Description, s.now())
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.taskRepo.Create(ctx, task)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", userID)
	s.afterMutation(ctx, models.TaskEventCreated, task)
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID) (*models.TaskList, error) {
	// version is read before the store so a listing that races a mutation is
	// stored under a version the mutation has already retired
	var version int64
	cacheable := false
	if s.cache != nil {
		cached, v, err := s.cache.GetTaskList(ctx, userID)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "Task list cache read failed", "user_id", userID, "error", err)
		case cached != nil:
			return cached, nil
		default:
			version, cacheable = v, true
		}
	}

	var tasks []*models.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		tasks, err = s.taskRepo.ListByUser(ctx, userID, s.order)
		return err
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "user_id", userID, "error", err)
		return nil, err
	}

	list := models.NewTaskList(tasks)
	if cacheable {
		if err := s.cache.SetTaskList(ctx, userID, version, list); err != nil {
			logger.WarnContext(ctx, "Task list cache write failed", "user_id", userID, "error", err)
		}
	}
	return list, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, userID uuid.UUID, taskID uint) (*models.Task, error) {
	var task *models.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepo.GetByID(ctx, userID, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID uuid.UUID, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	return s.mutate(ctx, userID, taskID, models.TaskEventUpdated, func(task *models.Task) error {
		return task.Apply(req.Title, req.Description, req.Completed, s.now())
	})
}

func (s *TaskServiceImpl) ToggleTask(ctx context.Context, userID uuid.UUID, taskID uint) (*models.Task, error) {
	return s.mutate(ctx, userID, taskID, models.TaskEventToggled, func(task *models.Task) error {
		task.Toggle(s.now())
		return nil
	})
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID uuid.UUID, taskID uint) error {
	var task *models.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if task, err = s.taskRepo.GetByID(ctx, userID, taskID); err != nil {
			return err
		}
		return s.taskRepo.Delete(ctx, userID, taskID)
	})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	s.afterMutation(ctx, models.TaskEventDeleted, task)
	return nil
}

// mutate loads the owner's task, applies change and persists it in one transaction.
func (s *TaskServiceImpl) mutate(ctx context.Context, userID uuid.UUID, taskID uint, eventType string, change func(*models.Task) error) (*models.Task, error) {
	var task *models.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if task, err = s.taskRepo.GetByID(ctx, userID, taskID); err != nil {
			return err
		}
		if err := change(task); err != nil {
			return err
		}
		return s.taskRepo.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Task "+eventType, "task_id", task.ID, "user_id", userID)
	s.afterMutation(ctx, eventType, task)
	return task, nil
}

// afterMutation runs once the transaction has committed. Failures are logged only.
func (s *TaskServiceImpl) afterMutation(ctx context.Context, eventType string, task *models.Task) {
	if s.cache != nil {
		if err := s.cache.InvalidateTaskList(ctx, task.UserID); err != nil {
			logger.WarnContext(ctx, "Task list cache invalidation failed", "user_id", task.UserID, "error", err)
		}
	}
	if s.events != nil {
		event := models.NewTaskEvent(eventType, task, s.now())
		if err := s.events.PublishTaskEvent(ctx, event); err != nil {
			logger.WarnContext(ctx, "Task event publish failed", "type", eventType, "task_id", task.ID, "error", err)
		}
	}
}
