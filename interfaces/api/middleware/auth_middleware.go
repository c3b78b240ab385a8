package middleware

import (
	"github.com/gofiber/fiber/v2"

	"todo-api/domain/access"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
	"todo-api/pkg/utils"
)

// Protected validates the bearer token, resolves the user it names and sets
// the user context.
func Protected(userService services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Not authenticated")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		user, err := userService.Authenticate(c.UserContext(), token)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			return utils.UnauthorizedResponse(c, "Could not validate credentials")
		}

		utils.SetUserContext(c, &utils.UserContext{ID: user.ID, Email: user.Email})
		return c.Next()
	}
}

// OwnerOnly rejects requests whose :user_id path parameter is not the
// authenticated caller with a 403 carrying deniedMessage. Must run after
// Protected.
func OwnerOnly(deniedMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "Not authenticated")
		}

		if _, err := access.AuthorizeRaw(user.ID, c.Params("user_id")); err != nil {
			logger.WarnContext(c.UserContext(), "Cross-user access denied",
				"user_id", user.ID,
				"path_user_id", c.Params("user_id"),
			)
			return utils.ForbiddenResponse(c, deniedMessage)
		}

		return c.Next()
	}
}
