package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/services"
)

// ListUsersHandler returns every registered user, digests excluded.
func ListUsersHandler(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		found, err := users.List(c.Context())
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": found})
	}
}

// SignupHandler registers a user from a multipart form with an image file and
// returns a bearer token.
func SignupHandler(users *services.UserService, uploadDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := models.SignupRequest{
			Username: c.FormValue("username"),
			Email:    c.FormValue("email"),
			Password: c.FormValue("password"),
		}
		if err := validate.Struct(req); err != nil {
			return models.ErrInvalidInput
		}

		imagePath, err := saveUploadedImage(c, "image", uploadDir)
		if err != nil {
			return err
		}

		auth, err := users.Signup(c.Context(), req, imagePath)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(auth)
	}
}

// LoginHandler verifies credentials and returns a bearer token.
func LoginHandler(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return models.ErrInvalidInput
		}

		auth, err := users.Login(c.Context(), req)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(auth)
	}
}
