package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"todo-api/domain/models"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

// ErrorHandler maps any error returned by a handler to the error envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ctx := c.UserContext()

		var validationErr *models.ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			return utils.ValidationErrorResponse(c, validationErr.Message, []utils.FieldError{{
				Field:   validationErr.Field,
				Tag:     "invalid",
				Message: validationErr.Message,
			}})
		case errors.Is(err, models.ErrDuplicateEmail):
			return utils.BadRequestResponse(c, "Email already registered")
		case errors.Is(err, models.ErrInvalidCredentials):
			return utils.UnauthorizedResponse(c, "Incorrect email or password")
		case errors.Is(err, models.ErrInvalidToken):
			return utils.UnauthorizedResponse(c, "Could not validate credentials")
		case errors.Is(err, models.ErrForbidden):
			return utils.ForbiddenResponse(c, "")
		case errors.Is(err, models.ErrNotFound):
			return utils.NotFoundResponse(c, "")
		case errors.As(err, &fiberErr):
			return fiberError(c, fiberErr)
		}

		logger.ErrorContext(ctx, "Unhandled error", "path", c.Path(), "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}

func fiberError(c *fiber.Ctx, e *fiber.Error) error {
	switch e.Code {
	case fiber.StatusBadRequest:
		return utils.BadRequestResponse(c, e.Message)
	case fiber.StatusUnauthorized:
		return utils.UnauthorizedResponse(c, e.Message)
	case fiber.StatusForbidden:
		return utils.ForbiddenResponse(c, e.Message)
	case fiber.StatusNotFound:
		return utils.NotFoundResponse(c, e.Message)
	case fiber.StatusUnprocessableEntity:
		return utils.ValidationErrorResponse(c, e.Message, nil)
	}
	if e.Code >= fiber.StatusInternalServerError {
		logger.ErrorContext(c.UserContext(), "Server error", "path", c.Path(), "error", e)
		return utils.InternalServerErrorResponse(c)
	}
	return utils.ErrorResponse(c, e.Code, utils.ErrCodeBadRequest, e.Message, nil)
}
