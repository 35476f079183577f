package catalogue

import (
	"strings"

	"electromart-backend/internal/config"
	"electromart-backend/internal/database"
	"electromart-backend/internal/models"
	"electromart-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

type SchemeResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// GET /api/schemes
func ListSchemesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var schemes []models.Scheme
		if err := database.DB.Order("id desc").Find(&schemes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list schemes")
		}

		resp := make([]SchemeResponse, 0, len(schemes))
		for _, s := range schemes {
			resp = append(resp, SchemeResponse{ID: s.ID, Title: s.Title, Description: s.Description, Image: s.ImagePath})
		}
		return c.JSON(resp)
	}
}

// POST /api/schemes (multipart: title, description, image)
func CreateSchemeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title is required")
		}

		imagePath, err := uploads.SaveImage(c, "image", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		s := models.Scheme{
			Title:       title,
			Description: strings.TrimSpace(c.FormValue("description")),
			ImagePath:   imagePath,
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create scheme")
		}

		return c.Status(fiber.StatusCreated).JSON(SchemeResponse{ID: s.ID, Title: s.Title, Description: s.Description, Image: s.ImagePath})
	}
}

// PUT /api/schemes/:id (multipart, all fields optional)
func UpdateSchemeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid scheme ID")
		}

		var s models.Scheme
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scheme not found")
		}

		if title := strings.TrimSpace(c.FormValue("title")); title != "" {
			s.Title = title
		}
		if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
			s.Description = desc
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
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update scheme")
		}
		if newImage != "" {
			uploads.Delete(oldImage, cfg.UploadPath)
		}

		return c.JSON(SchemeResponse{ID: s.ID, Title: s.Title, Description: s.Description, Image: s.ImagePath})
	}
}

// DELETE /api/schemes/:id
func DeleteSchemeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid scheme ID")
		}

		var s models.Scheme
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Scheme not found")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete scheme")
		}

		uploads.Delete(s.ImagePath, cfg.UploadPath)
		return c.JSON(fiber.Map{"message": "Scheme deleted"})
	}
}
