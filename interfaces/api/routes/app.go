package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/middleware"
)

// NewApp builds the fiber app with middleware (order matters) and all routes.
func NewApp(appName string, allowOrigins []string, h *handlers.Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		AppName:               appName,
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestIDMiddleware()) // before logger
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(allowOrigins))

	SetupRoutes(app, h)
	return app
}
