package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
	"todo-api/domain/ports"
)

const (
	taskListKeyPrefix     = "tasks:list:"
	taskListVersionPrefix = "tasks:version:"
)

// TaskListCache keeps each owner's listing under tasks:list:{user_id}:{version}.
// tasks:version:{user_id} holds the current version and is bumped on every
// invalidation, so listings stored under an older version are never read.
type TaskListCache struct {
	client *Client
	ttl    time.Duration
}

func NewTaskListCache(client *Client, ttl time.Duration) *TaskListCache {
	return &TaskListCache{client: client, ttl: ttl}
}

func taskListKey(userID uuid.UUID, version int64) string {
	return taskListKeyPrefix + userID.String() + ":" + strconv.FormatInt(version, 10)
}

func taskListVersionKey(userID uuid.UUID) string {
	return taskListVersionPrefix + userID.String()
}

func (c *TaskListCache) GetTaskList(ctx context.Context, userID uuid.UUID) (*models.TaskList, int64, error) {
	version, err := c.client.GetInt64(ctx, taskListVersionKey(userID))
	if err != nil {
		return nil, 0, fmt.Errorf("read task list version: %w", err)
	}

	var list models.TaskList
	found, err := c.client.GetJSON(ctx, taskListKey(userID, version), &list)
	if err != nil {
		return nil, 0, fmt.Errorf("read cached task list: %w", err)
	}
	if !found {
		return nil, version, nil
	}
	if list.Tasks == nil {
		list.Tasks = []*models.Task{}
	}
	return &list, version, nil
}

func (c *TaskListCache) SetTaskList(ctx context.Context, userID uuid.UUID, version int64, list *models.TaskList) error {
	if err := c.client.SetJSON(ctx, taskListKey(userID, version), list, c.ttl); err != nil {
		return fmt.Errorf("cache task list: %w", err)
	}
	return nil
}

func (c *TaskListCache) InvalidateTaskList(ctx context.Context, userID uuid.UUID) error {
	version, err := c.client.Incr(ctx, taskListVersionKey(userID))
	if err != nil {
		return fmt.Errorf("invalidate task list: %w", err)
	}
	// the previous listing is unreachable now; dropping it only frees memory
	if err := c.client.Del(ctx, taskListKey(userID, version-1)); err != nil {
		return fmt.Errorf("drop stale task list: %w", err)
	}
	return nil
}

// Verify interface implementation
var _ ports.TaskListCachePort = (*TaskListCache)(nil)
