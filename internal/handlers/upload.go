package handlers

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
)

// Shared validator instance; struct metadata is cached after first use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// maxImageSize caps uploads at 1 MB per file.
const maxImageSize = 1_000_000

// mimeExtensions maps the accepted image content types to the extension the
// stored file gets. Anything else is rejected before the file is written.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// saveUploadedImage stores the multipart file from field under dir with a
// generated name and returns its path. The path is also recorded on the
// request so the central error handler can remove the file if the rest of the
// pipeline fails.
func saveUploadedImage(c *fiber.Ctx, field, dir string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", models.ErrImageRequired
	}

	if fileHeader.Size > maxImageSize {
		return "", models.ErrImageTooLarge
	}

	ext, ok := mimeExtensions[fileHeader.Header.Get("Content-Type")]
	if !ok {
		return "", models.ErrInvalidImageType
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", models.ErrInternal
	}

	destPath := filepath.Join(dir, uuid.New().String()+"."+ext)
	if err := c.SaveFile(fileHeader, destPath); err != nil {
		return "", models.ErrInternal
	}

	c.Locals(UploadedFileKey, destPath)
	return destPath, nil
}
