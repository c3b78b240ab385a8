package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

// Execute runs a single command line. It reports true when the user asked to
// exit; confirming is left to the caller.
func (c *Console) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	keyword, rest := splitKeyword(line)
	switch strings.ToLower(keyword) {
	case "add":
		c.add(ctx, rest)
	case "list", "view", "show":
		if rest != "" {
			c.invalid()
			return false
		}
		c.list(ctx)
	case "complete", "done":
		c.setCompleted(ctx, "complete", rest, true)
	case "uncomplete":
		c.setCompleted(ctx, "uncomplete", rest, false)
	case "update":
		c.update(ctx, rest)
	case "delete", "remove":
		c.delete(ctx, rest)
	case "help":
		if rest != "" {
			c.invalid()
			return false
		}
		c.println(helpText)
	case "exit", "quit":
		if rest != "" {
			c.invalid()
			return false
		}
		return true
	default:
		c.invalid()
	}
	return false
}

func splitKeyword(line string) (string, string) {
	keyword, rest, _ := strings.Cut(line, " ")
	return keyword, strings.TrimSpace(rest)
}

func (c *Console) invalid() {
	c.println("Invalid command. Type 'help' for available commands")
}

// parseAdd splits "<title> - <description>" on the first separator.
func parseAdd(args string) (string, string) {
	title, description, found := strings.Cut(args, " - ")
	if !found {
		return strings.TrimSpace(args), ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(description)
}

func (c *Console) add(ctx context.Context, args string) {
	title, description := parseAdd(args)
	if title == "" {
		c.println("Error: Title is required")
		return
	}

	task, err := c.tasks.CreateTask(ctx, c.owner, &dto.CreateTaskRequest{Title: title, Description: description})
	if err != nil {
		c.reportError(err, 0)
		return
	}
	c.printf("Task %d added successfully", task.ID)
}

func (c *Console) list(ctx context.Context) {
	list, err := c.tasks.ListTasks(ctx, c.owner)
	if err != nil {
		c.reportError(err, 0)
		return
	}
	c.println(formatTaskTable(list))
}

func (c *Console) setCompleted(ctx context.Context, verb, args string, completed bool) {
	id, ok := c.parseID(verb, firstField(args))
	if !ok {
		return
	}

	if _, err := c.tasks.UpdateTask(ctx, c.owner, id, &dto.UpdateTaskRequest{Completed: &completed}); err != nil {
		c.reportError(err, id)
		return
	}

	if completed {
		c.printf("Task %d marked as complete", id)
	} else {
		c.printf("Task %d marked as incomplete", id)
	}
}

func (c *Console) update(ctx context.Context, args string) {
	rawID, rest := splitKeyword(args)
	field, value := splitKeyword(rest)
	if rawID == "" || field == "" || value == "" {
		c.println("Error: Invalid update command. Use 'update <id> title <text>' or 'update <id> description <text>'")
		return
	}

	id, ok := c.parseID("update", rawID)
	if !ok {
		return
	}

	req := &dto.UpdateTaskRequest{}
	switch field = strings.ToLower(field); field {
	case "title":
		req.Title = &value
	case "description":
		req.Description = &value
	default:
		c.printf("Error: Unknown field '%s'. Use 'title' or 'description'", field)
		return
	}

	if _, err := c.tasks.UpdateTask(ctx, c.owner, id, req); err != nil {
		c.reportError(err, id)
		return
	}
	c.printf("Task %d updated successfully", id)
}

func (c *Console) delete(ctx context.Context, args string) {
	id, ok := c.parseID("delete", firstField(args))
	if !ok {
		return
	}

	if err := c.tasks.DeleteTask(ctx, c.owner, id); err != nil {
		c.reportError(err, id)
		return
	}
	c.printf("Task %d deleted successfully", id)
}

func firstField(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// parseID accepts decimal digits only.
func (c *Console) parseID(verb, raw string) (uint, bool) {
	if raw == "" {
		c.printf("Error: Please specify a task ID (e.g., '%s 1')", verb)
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			c.println("Error: Invalid task ID. Please enter a number.")
			return 0, false
		}
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		c.println("Error: Invalid task ID. Please enter a number.")
		return 0, false
	}
	return uint(id), true
}

func (c *Console) reportError(err error, id uint) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.printf("Error: %s", validationErr.Message)
	case errors.Is(err, models.ErrNotFound):
		c.printf("Error: Task ID %d not found", id)
	default:
		c.printf("Error: %v", err)
	}
}
