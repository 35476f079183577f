package catalogue

import (
	"fmt"
	"strings"

	"electromart-backend/internal/config"
	"electromart-backend/internal/database"
	"electromart-backend/internal/models"
	"electromart-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductCategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID       uint                `json:"id"`
	Name     string              `json:"name"`
	Category *ProductCategoryRef `json:"category"`
	Rate     decimal.Decimal     `json:"rate"`
	Image    string              `json:"image"`
}

func toProductResponse(p *models.Product) ProductResponse {
	var cat *ProductCategoryRef
	if p.Category != nil {
		cat = &ProductCategoryRef{ID: p.Category.ID, Name: p.Category.Name}
	}
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: cat,
		Rate:     p.Rate,
		Image:    p.ImagePath,
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("Category").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		resp := make([]ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, toProductResponse(&products[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/products (multipart: name, category, rate, image)
func CreateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		rate, err := decimal.NewFromString(c.FormValue("rate"))
		if err != nil || rate.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Rate must be a non-negative number")
		}

		var categoryID *uint
		if catStr := c.FormValue("category"); catStr != "" {
			var cid uint
			if _, err := fmt.Sscan(catStr, &cid); err != nil || cid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
			}
			var cat models.Category
			if err := database.DB.First(&cat, "id = ?", cid).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
			categoryID = &cid
		}

		imagePath, err := uploads.SaveImage(c, "image", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p := models.Product{
			Name:       name,
			CategoryID: categoryID,
			Rate:       rate,
			ImagePath:  imagePath,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		database.DB.Preload("Category").First(&p, p.ID)
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&p))
	}
}

// PUT /api/products/:id (multipart, all fields optional)
func UpdateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
		}

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		if name := strings.TrimSpace(c.FormValue("name")); name != "" {
			p.Name = name
		}
		if rateStr := c.FormValue("rate"); rateStr != "" {
			rate, err := decimal.NewFromString(rateStr)
			if err != nil || rate.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Rate must be a non-negative number")
			}
			p.Rate = rate
		}
		if catStr := c.FormValue("category"); catStr != "" {
			var cid uint
			if _, err := fmt.Sscan(catStr, &cid); err != nil || cid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
			}
			var cat models.Category
			if err := database.DB.First(&cat, "id = ?", cid).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
			p.CategoryID = &cid
		}

		newImage, err := uploads.SaveImage(c, "image", cfg.UploadPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		oldImage := p.ImagePath
		if newImage != "" {
			p.ImagePath = newImage
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}
		if newImage != "" {
			uploads.Delete(oldImage, cfg.UploadPath)
		}

		database.DB.Preload("Category").First(&p, p.ID)
		return c.JSON(toProductResponse(&p))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
		}

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		uploads.Delete(p.ImagePath, cfg.UploadPath)
		return c.JSON(fiber.Map{"message": "Product deleted"})
	}
}
