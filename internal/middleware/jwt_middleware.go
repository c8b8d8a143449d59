package middleware

import (
	"fmt"
	"strings"

	"teslo/internal/apperrors"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// userKey is the c.Locals key holding the authenticated *models.User.
const userKey = "user"

// AuthRequired is a Fiber middleware that resolves the bearer token to an
// active user and stores it for subsequent handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.Unauthorized("Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
			return apperrors.Unauthorized("Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.ResolveUser(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RoleRequired rejects callers that hold none of the given roles. It must run
// after AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return apperrors.Unauthorized("user not found in request")
		}
		if len(roles) > 0 && !user.HasRole(roles...) {
			return apperrors.Forbidden(fmt.Sprintf("user %s needs a valid role: [%s]", user.FullName, strings.Join(roles, ", ")))
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
