package handlers

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/domain/dto"
	"todo-api/pkg/config"
	"todo-api/pkg/utils"
)

type HealthHandler struct {
	app config.AppConfig
}

func NewHealthHandler(app config.AppConfig) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, &dto.RootResponse{
		Message: h.app.Name + " is running",
		Version: h.app.Version,
		Health:  "/health",
	})
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, &dto.HealthResponse{Status: "healthy"})
}
