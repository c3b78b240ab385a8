package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app, h)
	SetupAuthRoutes(app, h)

	api := app.Group("/api")
	SetupTaskRoutes(api, h)
}
