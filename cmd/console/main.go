package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"todo-api/application/serviceimpl"
	"todo-api/domain/models"
	"todo-api/infrastructure/memory"
	"todo-api/interfaces/console"
	"todo-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("\nFatal error: %v\n", err)
		fmt.Println("The application encountered an unexpected error and must exit.")
		os.Exit(1)
	}
}

func run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	// service logs stay off the interactive output
	if err := logger.Init(logger.Config{Level: "warn", Format: "text", Output: "stderr"}); err != nil {
		return err
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	store := memory.NewTaskStore()
	tasks := serviceimpl.NewTaskService(store, store, nil, nil, models.OrderIDAscending)

	return console.New(tasks, os.Stdout).Run(context.Background(), os.Stdin, interrupts)
}
