package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

// TaskOrder selects how a task listing is sorted.
type TaskOrder int

const (
	// OrderNewestFirst sorts by creation time descending, ties by ID descending.
	OrderNewestFirst TaskOrder = iota
	// OrderIDAscending sorts by ID ascending.
	OrderIDAscending
)

type Task struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000;not null"`
	Completed   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskList is an owner's tasks plus completion counts.
type TaskList struct {
	Tasks     []*Task
	Total     int
	Completed int
	Pending   int
}

func NewTaskList(tasks []*Task) *TaskList {
	list := &TaskList{Tasks: tasks, Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			list.Completed++
		}
	}
	list.Pending = list.Total - list.Completed
	return list
}

// NewTask builds a validated, not yet persisted task. Both timestamps are set to now.
func NewTask(ownerID uuid.UUID, title, description string, now time.Time) (*Task, error) {
	normTitle, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	normDesc, err := NormalizeDescription(description)
	if err != nil {
		return nil, err
	}

	return &Task{
		UserID:      ownerID,
		Title:       normTitle,
		Description: normDesc,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NormalizeTitle trims the title and checks it holds 1..TitleMaxLength characters.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", NewValidationError("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return "", NewValidationError("title", "Title must be 200 characters or less")
	}
	return title, nil
}

// NormalizeDescription trims the description and checks it holds at most
// DescriptionMaxLength characters.
func NormalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return "", NewValidationError("description", "Description must be 1000 characters or less")
	}
	return description, nil
}

// Apply sets every non-nil field and refreshes UpdatedAt. Nothing is changed
// when a field fails validation.
func (t *Task) Apply(title, description *string, completed *bool, now time.Time) error {
	newTitle, newDesc := t.Title, t.Description

	if title != nil {
		v, err := NormalizeTitle(*title)
		if err != nil {
			return err
		}
		newTitle = v
	}
	if description != nil {
		v, err := NormalizeDescription(*description)
		if err != nil {
			return err
		}
		newDesc = v
	}

	t.Title = newTitle
	t.Description = newDesc
	if completed != nil {
		t.Completed = *completed
	}
	t.Touch(now)
	return nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle(now time.Time) {
	t.Completed = !t.Completed
	t.Touch(now)
}

// Touch refreshes UpdatedAt, never moving it before CreatedAt.
func (t *Task) Touch(now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// Clone returns a copy detached from the receiver.
func (t *Task) Clone() *Task {
	c := *t
	c.User = nil
	return &c
}
