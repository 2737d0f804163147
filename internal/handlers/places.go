package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/services"
)

// GetPlaceHandler returns a single place by id.
func GetPlaceHandler(places *services.PlaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		place, err := places.Get(c.Context(), c.Params("placeId"))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"place": place})
	}
}

// GetUserPlacesHandler returns every place a user created.
func GetUserPlacesHandler(places *services.PlaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		found, err := places.ListByUser(c.Context(), c.Params("userId"))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"places": found})
	}
}

// CreatePlaceHandler creates a place for the authenticated user from a
// multipart form with an image file.
func CreatePlaceHandler(places *services.PlaceService, uploadDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := models.CreatePlaceRequest{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Address:     c.FormValue("address"),
		}
		if err := validate.Struct(req); err != nil {
			return models.ErrInvalidInput
		}

		imagePath, err := saveUploadedImage(c, "image", uploadDir)
		if err != nil {
			return err
		}

		creatorID := c.Locals(localUserID).(string)
		place, err := places.Create(c.Context(), req, imagePath, creatorID)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"place": place})
	}
}

// UpdatePlaceHandler changes a place's title and description.
func UpdatePlaceHandler(places *services.PlaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdatePlaceRequest
		if err := c.BodyParser(&req); err != nil {
			return models.ErrInvalidInput
		}
		if err := validate.Struct(req); err != nil {
			return models.ErrInvalidInput
		}

		requesterID := c.Locals(localUserID).(string)
		place, err := places.Update(c.Context(), c.Params("placeId"), requesterID, req)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{"place": place})
	}
}

// DeletePlaceHandler removes a place owned by the authenticated user.
func DeletePlaceHandler(places *services.PlaceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requesterID := c.Locals(localUserID).(string)
		place, err := places.Delete(c.Context(), c.Params("placeId"), requesterID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"place": place})
	}
}
