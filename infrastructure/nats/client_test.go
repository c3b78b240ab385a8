package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-api/domain/models"
)

func TestTaskSubject(t *testing.T) {
	assert.Equal(t, "todo.task.created", TaskSubject("todo", models.TaskEventCreated))
	assert.Equal(t, "acme.todo.task.deleted", TaskSubject("acme.todo", models.TaskEventDeleted))
}
