// Package memory keeps tasks in a process-local map. Nothing survives the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"todo-api/domain/models"
	"todo-api/domain/repositories"
)

// TaskStore is an in-memory TaskRepository. IDs come from a counter that only
// grows, so a deleted ID is never handed out again. Callers always receive
// copies; the store owns its records.
type TaskStore struct {
	mu     sync.Mutex
	tasks  map[uint]*models.Task
	nextID uint
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[uint]*models.Task),
		nextID: 1,
	}
}

var (
	_ repositories.TaskRepository = (*TaskStore)(nil)
	_ repositories.Transactor     = (*TaskStore)(nil)
)

// WithinTransaction runs fn directly; single operations are already atomic.
func (s *TaskStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID
	s.nextID++
	s.tasks[task.ID] = task.Clone()
	return nil
}

func (s *TaskStore) GetByID(ctx context.Context, ownerID uuid.UUID, id uint) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, models.ErrNotFound
	}
	return task.Clone(), nil
}

func (s *TaskStore) ListByUser(ctx context.Context, ownerID uuid.UUID, order models.TaskOrder) ([]*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []*models.Task{}
	for _, task := range s.tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, task.Clone())
		}
	}

	switch order {
	case models.OrderIDAscending:
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	default:
		sort.Slice(tasks, func(i, j int) bool {
			if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
				return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
			}
			return tasks[i].ID > tasks[j].ID
		})
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return models.ErrNotFound
	}
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Completed = task.Completed
	stored.UpdatedAt = task.UpdatedAt
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, ownerID uuid.UUID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return models.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *TaskStore) DeleteByUser(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, task := range s.tasks {
		if task.UserID == ownerID {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}
