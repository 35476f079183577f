package main

import (
	"log"
	"strings"

	"electromart-backend/internal/audit"
	"electromart-backend/internal/auth"
	"electromart-backend/internal/billing"
	"electromart-backend/internal/catalogue"
	"electromart-backend/internal/config"
	"electromart-backend/internal/database"
	"electromart-backend/internal/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Uploaded product images, slide images and project videos
	app.Static("/uploads", cfg.UploadPath)

	api := app.Group("/api")

	// Public auth
	api.Post("/admin/register", auth.RegisterAdminHandler(cfg))
	api.Post("/admin/login", auth.LoginHandler(cfg))

	// Public catalogue
	api.Get("/products", catalogue.ListProductsHandler())
	api.Get("/categories", catalogue.ListCategoriesHandler())
	api.Get("/projects", catalogue.ListProjectsHandler())
	api.Get("/schemes", catalogue.ListSchemesHandler())
	api.Get("/slides", catalogue.ListSlidesHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/admin/me", auth.MeHandler())

	// Catalogue management
	protected.Post("/products", catalogue.CreateProductHandler(cfg))
	protected.Put("/products/:id", catalogue.UpdateProductHandler(cfg))
	protected.Delete("/products/:id", catalogue.DeleteProductHandler(cfg))
	protected.Post("/categories", catalogue.CreateCategoryHandler())
	protected.Put("/categories/:id", catalogue.UpdateCategoryHandler())
	protected.Delete("/categories/:id", catalogue.DeleteCategoryHandler())
	protected.Post("/projects", catalogue.CreateProjectHandler(cfg))
	protected.Put("/projects/:id", catalogue.UpdateProjectHandler(cfg))
	protected.Delete("/projects/:id", catalogue.DeleteProjectHandler(cfg))
	protected.Post("/schemes", catalogue.CreateSchemeHandler(cfg))
	protected.Put("/schemes/:id", catalogue.UpdateSchemeHandler(cfg))
	protected.Delete("/schemes/:id", catalogue.DeleteSchemeHandler(cfg))
	protected.Post("/slides", catalogue.CreateSlideHandler(cfg))
	protected.Put("/slides/:id", catalogue.UpdateSlideHandler(cfg))
	protected.Delete("/slides/:id", catalogue.DeleteSlideHandler(cfg))

	// Stock ledger
	protected.Get("/stock", inventory.ListStockHandler())
	protected.Post("/stock", inventory.CreateStockHandler())
	protected.Get("/stock/export", inventory.ExportStockHandler())
	protected.Put("/stock/:id", inventory.AdjustStockHandler())
	protected.Delete("/stock/:id", inventory.DeleteStockHandler())

	// Billing
	protected.Post("/billing", billing.CreateBillHandler())
	protected.Get("/billing", billing.ListBillsHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
