package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/application/serviceimpl"
	"todo-api/domain/models"
	"todo-api/infrastructure/memory"
)

// syncBuffer lets the test read output while Run is still writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestConsole() (*Console, *syncBuffer) {
	store := memory.NewTaskStore()
	out := &syncBuffer{}
	svc := serviceimpl.NewTaskService(store, store, nil, nil, models.OrderIDAscending)
	return New(svc, out), out
}

func run(t *testing.T, input string) string {
	t.Helper()
	c, out := newTestConsole()
	err := c.Run(context.Background(), strings.NewReader(input), nil)
	require.NoError(t, err)
	return out.String()
}

func TestExecute_AddListAndSummary(t *testing.T) {
	c, out := newTestConsole()
	ctx := context.Background()

	assert.False(t, c.Execute(ctx, "add Buy groceries - milk, eggs, bread"))
	assert.False(t, c.Execute(ctx, "ADD Call mom"))
	assert.False(t, c.Execute(ctx, "done 1"))
	assert.False(t, c.Execute(ctx, "list"))

	text := out.String()
	assert.Contains(t, text, "Task 1 added successfully\n")
	assert.Contains(t, text, "Task 2 added successfully\n")
	assert.Contains(t, text, "Task 1 marked as complete\n")
	assert.Contains(t, text, "1  | [X]  | Buy groceries            | milk, eggs, bread\n")
	assert.Contains(t, text, "2  | [ ]  | Call mom                 | \n")
	assert.Contains(t, text, "2 tasks total (1 completed, 1 pending)")
	assert.Less(t, strings.Index(text, "1  | [X]"), strings.Index(text, "2  | [ ]"))
}

func TestExecute_EmptyList(t *testing.T) {
	c, out := newTestConsole()
	c.Execute(context.Background(), "show")
	assert.Equal(t, "No tasks found\n", out.String())
}

func TestExecute_UpdateUncompleteDelete(t *testing.T) {
	c, out := newTestConsole()
	ctx := context.Background()

	c.Execute(ctx, "add Draft")
	c.Execute(ctx, "update 1 title Final   version")
	c.Execute(ctx, "update 1 description notes here")
	c.Execute(ctx, "complete 1")
	c.Execute(ctx, "uncomplete 1")
	c.Execute(ctx, "view")
	c.Execute(ctx, "remove 1")
	c.Execute(ctx, "delete 1")
	c.Execute(ctx, "add Next")

	text := out.String()
	assert.Contains(t, text, "Task 1 updated successfully\n")
	assert.Contains(t, text, "Task 1 marked as incomplete\n")
	assert.Contains(t, text, "| [ ]  | Final   version          | notes here\n")
	assert.Contains(t, text, "Task 1 deleted successfully\n")
	assert.Contains(t, text, "Error: Task ID 1 not found\n")
	assert.Contains(t, text, "Task 2 added successfully\n")
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"frobnicate", "Invalid command. Type 'help' for available commands\n"},
		{"list now", "Invalid command. Type 'help' for available commands\n"},
		{"add", "Error: Title is required\n"},
		{"add " + strings.Repeat("x", 201), "Error: Title must be 200 characters or less\n"},
		{"complete", "Error: Please specify a task ID (e.g., 'complete 1')\n"},
		{"delete", "Error: Please specify a task ID (e.g., 'delete 1')\n"},
		{"complete abc", "Error: Invalid task ID. Please enter a number.\n"},
		{"delete -1", "Error: Invalid task ID. Please enter a number.\n"},
		{"complete 7", "Error: Task ID 7 not found\n"},
		{"update 1", "Error: Invalid update command. Use 'update <id> title <text>' or 'update <id> description <text>'\n"},
		{"update x title y", "Error: Invalid task ID. Please enter a number.\n"},
		{"update 1 priority high", "Error: Unknown field 'priority'. Use 'title' or 'description'\n"},
		{"update 9 title y", "Error: Task ID 9 not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, out := newTestConsole()
			assert.False(t, c.Execute(context.Background(), tt.line))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestExecute_BlankAndExit(t *testing.T) {
	c, out := newTestConsole()
	ctx := context.Background()

	assert.False(t, c.Execute(ctx, "   "))
	assert.Empty(t, out.String())
	assert.True(t, c.Execute(ctx, "exit"))
	assert.True(t, c.Execute(ctx, "QUIT"))
}

func TestRun_ExitRequiresConfirmation(t *testing.T) {
	text := run(t, "add Buy milk\nexit\nno\nlist\nquit\nY\nadd never\n")

	assert.Contains(t, text, "Todo Console App")
	assert.Contains(t, text, "WARNING: Tasks are not saved. They will be lost when you exit.")
	assert.Contains(t, text, "Are you sure you want to exit? (yes/no): ")
	assert.Contains(t, text, "Continuing...")
	assert.Contains(t, text, "1 tasks total (0 completed, 1 pending)")
	assert.True(t, strings.HasSuffix(text, "\nGoodbye!\n"))
	assert.NotContains(t, text, "Task 2 added")
}

func TestRun_EOFEndsGracefully(t *testing.T) {
	text := run(t, "add Only task\nhelp\n")

	assert.Contains(t, text, "Available Commands")
	assert.True(t, strings.HasSuffix(text, "\n\nGoodbye!\n"))
}

func TestRun_EOFDuringConfirmation(t *testing.T) {
	text := run(t, "exit\n")
	assert.True(t, strings.HasSuffix(text, "\n\nGoodbye!\n"))
}

func TestRun_InterruptResumesLoop(t *testing.T) {
	c, out := newTestConsole()
	in, feed := io.Pipe()
	interrupts := make(chan os.Signal, 1)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background(), in, interrupts) }()

	interrupts <- os.Interrupt
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Interrupted by user. Type 'exit' to quit safely.")
	}, time.Second, 10*time.Millisecond)

	_, err := io.WriteString(feed, "add After interrupt\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Task 1 added successfully")
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, feed.Close())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("console did not stop at end of input")
	}
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye!\n"))
}

func TestRun_ReadErrorIsReturned(t *testing.T) {
	c, _ := newTestConsole()
	in, feed := io.Pipe()
	require.NoError(t, feed.CloseWithError(assert.AnError))

	err := c.Run(context.Background(), in, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestReadLines_StopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	lines, readErr := readLines(strings.NewReader("exit\nyes\nleft over\nnever read\n"), done)

	assert.Equal(t, "exit", <-lines)
	assert.Equal(t, "yes", <-lines)

	// the consumer stops with lines still pending
	close(done)

	select {
	case _, ok := <-readErr:
		assert.False(t, ok, "no read error is reported after an early stop")
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still blocked after done was closed")
	}
	_, ok := <-lines
	assert.False(t, ok)
}

func TestReadLines_ReportsEOF(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(strings.NewReader("one\ntwo"), done)

	var got []string
	for line := range lines {
		got = append(got, line)
	}
	assert.Equal(t, []string{"one", "two"}, got)
	assert.NoError(t, <-readErr)
}

func TestRun_ContextCancelled(t *testing.T) {
	c, _ := newTestConsole()
	in, _ := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, in, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatTaskTable_Truncates(t *testing.T) {
	list := models.NewTaskList([]*models.Task{{
		ID:          12,
		Title:       strings.Repeat("t", 25),
		Description: strings.Repeat("d", 21),
	}})

	table := formatTaskTable(list)
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "ID | Status | Title                    | Description", lines[0])
	assert.Equal(t, "12 | [ ]  | "+strings.Repeat("t", 21)+"... | "+strings.Repeat("d", 17)+"...", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "1 tasks total (0 completed, 1 pending)", lines[4])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "exactly twenty chars", truncate("exactly twenty chars", 20))
	assert.Equal(t, "ééééééééééééééééé...", truncate(strings.Repeat("é", 21), 20))
}
