package routes

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadImage stores an uploaded image under a unique filename and
// returns the path that can be saved on a product.
func (a *API) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to get uploaded file", nil)
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(a.Cfg.UploadDir, filename)); err != nil {
		a.Log.Error("save uploaded file failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to save file", nil)
	}

	return success(c, fiber.StatusCreated, "Image uploaded successfully", fiber.Map{
		"filename": filename,
		"path":     "/api/v1/uploads/" + filename,
	})
}
