package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/services"
)

// Locals keys set by the middleware and handlers. UploadedFileKey is read by
// the central error handler to clean up after failed uploads.
const (
	localUserID     = "userId"
	UploadedFileKey = "uploadedFile"
)

// AuthMiddleware verifies the bearer token and attaches the caller's user id
// to the request. OPTIONS requests pass through untouched so browser
// preflights succeed.
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return models.ErrAuthFailed
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return models.ErrAuthFailed
		}

		c.Locals(localUserID, claims.UserID)
		return c.Next()
	}
}
