package catalogue

import (
	"strings"

	"electromart-backend/internal/config"
	"electromart-backend/internal/database"
	"electromart-backend/internal/models"
	"electromart-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

type SlideResponse struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image"`
}

// GET /api/slides
func ListSlidesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var slides []models.Slide
		if err := database.DB.Order("id asc").Find(&slides).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list slides")
		}

		resp := make([]SlideResponse, 0, len(slides))
		for _, s := range slides {
			resp = append(resp, SlideResponse{ID: s.ID, Text: s.Text, Image: s.ImagePath})
		}
		return c.JSON(resp)
	}
}

// POST /api/slides (multipart: text, image)
func CreateSlideHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text := strings.TrimSpace(c.FormValue("text"))
		if text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Text is required")
		}

		imagePath, err := uploads.SaveImage(c, "image", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		s := models.Slide{Text: text, ImagePath: imagePath}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create slide")
		}

		return c.Status(fiber.StatusCreated).JSON(SlideResponse{ID: s.ID, Text: s.Text, Image: s.ImagePath})
	}
}

// PUT /api/slides/:id (multipart, all fields optional)
func UpdateSlideHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid slide ID")
		}

		var s models.Slide
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Slide not found")
		}

		if text := strings.TrimSpace(c.FormValue("text")); text != "" {
			s.Text = text
		}

		newImage, err := uploads.SaveImage(c, "image", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		oldImage := s.ImagePath
		if newImage != "" {
			s.ImagePath = newImage
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update slide")
		}
		if newImage != "" {
			uploads.Delete(oldImage, cfg.UploadPath)
		}

		return c.JSON(SlideResponse{ID: s.ID, Text: s.Text, Image: s.ImagePath})
	}
}

// DELETE /api/slides/:id
func DeleteSlideHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid slide ID")
		}

		var s models.Slide
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Slide not found")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete slide")
		}

		uploads.Delete(s.ImagePath, cfg.UploadPath)
		return c.JSON(fiber.Map{"message": "Slide deleted"})
	}
}
