package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/routes"
	"todo-api/pkg/di"
	"todo-api/pkg/logger"
)

func main() {
	container := di.NewContainer()

	// Initialize all dependencies (including logger)
	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()
	h := handlers.NewHandlers(container.GetHandlerServices())
	app := routes.NewApp(cfg.App.Name, cfg.CORS.AllowedOrigins(), h)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Gracefully shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
	}()

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
		"health", "http://localhost:"+port+"/health",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		_ = container.Cleanup()
		os.Exit(1)
	}

	if err := container.Cleanup(); err != nil {
		logger.Error("Error during cleanup", "error", err)
	}
	logger.Info("Shutdown complete")
}
