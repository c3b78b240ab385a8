package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskEventCreated = "created"
	TaskEventUpdated = "updated"
	TaskEventToggled = "toggled"
	TaskEventDeleted = "deleted"
)

// TaskEvent describes a committed task mutation.
type TaskEvent struct {
	Type       string    `json:"type"`
	TaskID     uint      `json:"task_id"`
	UserID     uuid.UUID `json:"user_id"`
	Completed  bool      `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTaskEvent(eventType string, task *Task, at time.Time) TaskEvent {
	return TaskEvent{
		Type:       eventType,
		TaskID:     task.ID,
		UserID:     task.UserID,
		Completed:  task.Completed,
		OccurredAt: at,
	}
}
