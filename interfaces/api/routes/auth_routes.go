package routes

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/interfaces/api/handlers"
	"todo-api/interfaces/api/middleware"
)

func SetupAuthRoutes(router fiber.Router, h *handlers.Handlers) {
	auth := router.Group("/auth")

	auth.Post("/register", h.UserHandler.Register)
	auth.Post("/login", h.UserHandler.Login)

	// Protected routes - require authentication
	protected := middleware.Protected(h.UserService)
	auth.Get("/me", protected, h.UserHandler.GetProfile)
	auth.Delete("/me", protected, h.UserHandler.DeleteAccount)
}
