package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

// LoggerMiddleware logs one line per request once the handler chain has run.
// Health probes are logged at debug level.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// run the ErrorHandler now so the logged status is the one sent
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		}
		if user, userErr := utils.GetUserFromContext(c); userErr == nil {
			attrs = append(attrs, "user_id", user.ID)
		}

		logFunc := logger.InfoContext
		switch {
		case status >= fiber.StatusInternalServerError:
			logFunc = logger.ErrorContext
		case status >= fiber.StatusBadRequest:
			logFunc = logger.WarnContext
		case c.Path() == "/health":
			logFunc = logger.DebugContext
		}
		logFunc(c.UserContext(), "Request completed", attrs...)

		return nil
	}
}
