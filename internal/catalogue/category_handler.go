package catalogue

import (
	"strings"

	"electromart-backend/internal/database"
	"electromart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID   uint                `json:"id"`
	Name string              `json:"name"`
	Type models.CategoryType `json:"type"`
}

type CreateCategoryRequest struct {
	Name string              `json:"name"`
	Type models.CategoryType `json:"type"`
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}

		resp := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			resp = append(resp, CategoryResponse{ID: cat.ID, Name: cat.Name, Type: cat.Type})
		}
		return c.JSON(resp)
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.Type != models.CategoryTypeProduct && body.Type != models.CategoryTypeStock {
			return fiber.NewError(fiber.StatusBadRequest, "Type must be 'product' or 'stock'")
		}

		cat := models.Category{Name: body.Name, Type: body.Type}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create category")
		}

		return c.Status(fiber.StatusCreated).JSON(CategoryResponse{ID: cat.ID, Name: cat.Name, Type: cat.Type})
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category ID")
		}

		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		if name := strings.TrimSpace(body.Name); name != "" {
			cat.Name = name
		}
		if body.Type != "" {
			if body.Type != models.CategoryTypeProduct && body.Type != models.CategoryTypeStock {
				return fiber.NewError(fiber.StatusBadRequest, "Type must be 'product' or 'stock'")
			}
			cat.Type = body.Type
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update category")
		}

		return c.JSON(CategoryResponse{ID: cat.ID, Name: cat.Name, Type: cat.Type})
	}
}

// DELETE /api/categories/:id
// No cascade: products and stock entries keep their dangling reference.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid category ID")
		}

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}

		return c.JSON(fiber.Map{"message": "Category deleted"})
	}
}
