package catalogue

import (
	"strings"

	"electromart-backend/internal/config"
	"electromart-backend/internal/database"
	"electromart-backend/internal/models"
	"electromart-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Video       string `json:"video"`
}

// GET /api/projects
func ListProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var projects []models.Project
		if err := database.DB.Order("id desc").Find(&projects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list projects")
		}

		resp := make([]ProjectResponse, 0, len(projects))
		for _, p := range projects {
			resp = append(resp, ProjectResponse{ID: p.ID, Title: p.Title, Description: p.Description, Video: p.VideoPath})
		}
		return c.JSON(resp)
	}
}

// POST /api/projects (multipart: title, description, video)
func CreateProjectHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title is required")
		}

		videoPath, err := uploads.SaveVideo(c, "video", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p := models.Project{
			Title:       title,
			Description: strings.TrimSpace(c.FormValue("description")),
			VideoPath:   videoPath,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create project")
		}

		return c.Status(fiber.StatusCreated).JSON(ProjectResponse{ID: p.ID, Title: p.Title, Description: p.Description, Video: p.VideoPath})
	}
}

// PUT /api/projects/:id (multipart, all fields optional)
func UpdateProjectHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid project ID")
		}

		var p models.Project
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}

		if title := strings.TrimSpace(c.FormValue("title")); title != "" {
			p.Title = title
		}
		if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
			p.Description = desc
		}

		newVideo, err := uploads.SaveVideo(c, "video", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		oldVideo := p.VideoPath
		if newVideo != "" {
			p.VideoPath = newVideo
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update project")
		}
		if newVideo != "" {
			uploads.Delete(oldVideo, cfg.UploadPath)
		}

		return c.JSON(ProjectResponse{ID: p.ID, Title: p.Title, Description: p.Description, Video: p.VideoPath})
	}
}

// DELETE /api/projects/:id
func DeleteProjectHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid project ID")
		}

		var p models.Project
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete project")
		}

		uploads.Delete(p.VideoPath, cfg.UploadPath)
		return c.JSON(fiber.Map{"message": "Project deleted"})
	}
}
