// Package console is the interactive, in-memory task manager. It has no
// authentication: every task belongs to one implicit owner and nothing is
// persisted.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"todo-api/domain/services"
)

const prompt = "\n> "

// Console reads commands line by line and runs them against a TaskService.
type Console struct {
	tasks services.TaskService
	owner uuid.UUID
	out   io.Writer
}

func New(tasks services.TaskService, out io.Writer) *Console {
	return &Console{tasks: tasks, owner: uuid.Nil, out: out}
}

// Run prints the banner and processes input until the user confirms exit,
// input ends or ctx is cancelled. A value on interrupts while waiting for
// input prints a hint and resumes the loop. The only error returned is a
// failure reading input or ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader, interrupts <-chan os.Signal) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	c.println(banner)

	confirming := false
	for {
		if !confirming {
			c.print(prompt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-interrupts:
			confirming = false
			c.println("\n\nInterrupted by user. Type 'exit' to quit safely.")

		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				c.println("\n\nGoodbye!")
				return nil
			}

			if confirming {
				confirming = false
				if confirmed(line) {
					c.println("\nGoodbye!")
					return nil
				}
				c.println("Continuing...")
				continue
			}

			if c.Execute(ctx, line) {
				c.println("\nWARNING: Tasks are not saved. They will be lost when you exit.")
				c.print("Are you sure you want to exit? (yes/no): ")
				confirming = true
			}
		}
	}
}

// readLines feeds lines from in to the returned channel, closing it at EOF or
// once done is closed. The scanner error, possibly nil, is sent after the
// channel is closed at EOF.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(lines)

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	}
	return false
}
