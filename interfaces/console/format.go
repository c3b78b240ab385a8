package console

import (
	"fmt"
	"strings"

	"todo-api/domain/models"
)

const (
	titleColumnWidth       = 24
	descriptionColumnWidth = 20
)

const banner = `
================================================================
        Todo Console App
  Type 'help' for available commands
  Type 'exit' to quit
================================================================`

const helpText = `
================================================================
                    Available Commands
================================================================

Task Management:
  add <title>                      Add new task with title only
  add <title> - <description>      Add new task with description
  list, view, show                 Display all tasks
  complete <id>, done <id>         Mark task as complete
  uncomplete <id>                  Mark task as incomplete
  update <id> title <text>         Update task title
  update <id> description <text>   Update task description
  delete <id>, remove <id>         Delete a task

System:
  help                             Show this help message
  exit, quit                       Exit application

Examples:
  > add Buy groceries
  > add Buy groceries - milk, eggs, bread
  > list
  > complete 1
  > update 1 title Buy groceries and supplies
  > delete 2`

// formatTaskTable renders the listing with a summary line, or "No tasks found".
func formatTaskTable(list *models.TaskList) string {
	if list == nil || len(list.Tasks) == 0 {
		return "No tasks found"
	}

	var b strings.Builder
	b.WriteString("ID | Status | Title                    | Description\n")
	b.WriteString("---|--------|--------------------------|--------------------\n")

	for _, task := range list.Tasks {
		status := "[ ]"
		if task.Completed {
			status = "[X]"
		}
		fmt.Fprintf(&b, "%-2d | %s  | %-24s | %s\n",
			task.ID,
			status,
			truncate(task.Title, titleColumnWidth),
			truncate(task.Description, descriptionColumnWidth),
		)
	}

	fmt.Fprintf(&b, "\n%d tasks total (%d completed, %d pending)", list.Total, list.Completed, list.Pending)
	return b.String()
}

// truncate shortens s to width characters, ending in "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
