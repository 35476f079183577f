package inventory

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"electromart-backend/internal/database"
	"electromart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func stockRoutes(app *fiber.App) {
	app.Get("/api/stock", ListStockHandler())
	app.Post("/api/stock", CreateStockHandler())
	app.Put("/api/stock/:id", AdjustStockHandler())
	app.Delete("/api/stock/:id", DeleteStockHandler())
}

func TestStockEndpointLifecycle(t *testing.T) {
	database.DB = setupTestDB(t)
	app := newTestApp()
	stockRoutes(app)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/stock",
		`{"productId": "FAN-01", "productName": "Ceiling Fan", "quantity": 12, "rate": 1450.50}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", raw)

	var created StockEntryResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "FAN-01", created.ProductID)
	assert.Nil(t, created.Category)

	// restock by delta
	resp, raw = doJSON(t, app, http.MethodPut, "/api/stock/1", `{"quantity": 8}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %s", raw)
	var adjusted StockEntryResponse
	require.NoError(t, json.Unmarshal(raw, &adjusted))
	assert.Equal(t, 20, adjusted.Quantity)

	// rate-only change leaves quantity alone
	resp, raw = doJSON(t, app, http.MethodPut, "/api/stock/1", `{"rate": 1399}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &adjusted))
	assert.Equal(t, 20, adjusted.Quantity)
	assert.Equal(t, "1399", adjusted.Rate.String())

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/stock/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/stock", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []StockEntryResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list)
}

func TestStockEndpointRejectsOverdraw(t *testing.T) {
	database.DB = setupTestDB(t)
	app := newTestApp()
	stockRoutes(app)

	_, _ = doJSON(t, app, http.MethodPost, "/api/stock",
		`{"productId": "SW-09", "productName": "Switch Board", "quantity": 5, "rate": 80}`)

	resp, raw := doJSON(t, app, http.MethodPut, "/api/stock/1", `{"quantity": -9}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var failure struct {
		Insufficient []Shortage `json:"insufficient"`
	}
	require.NoError(t, json.Unmarshal(raw, &failure))
	require.Len(t, failure.Insufficient, 1)
	assert.Equal(t, "SW-09", failure.Insufficient[0].ProductCode)
	assert.Equal(t, 5, failure.Insufficient[0].Available)
}

func TestStockEndpointValidation(t *testing.T) {
	database.DB = setupTestDB(t)
	app := newTestApp()
	stockRoutes(app)

	// negative opening quantity
	resp, _ := doJSON(t, app, http.MethodPost, "/api/stock",
		`{"productId": "SW-09", "productName": "Switch Board", "quantity": -1, "rate": 80}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// unknown category
	resp, _ = doJSON(t, app, http.MethodPost, "/api/stock",
		`{"productId": "SW-09", "productName": "Switch Board", "category": 42, "quantity": 1, "rate": 80}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/stock/99", `{"quantity": 1}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/stock/99", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStockEndpointCategoryEmbedding(t *testing.T) {
	db := setupTestDB(t)
	database.DB = db
	require.NoError(t, db.Create(&models.Category{Name: "Lighting", Type: models.CategoryTypeStock}).Error)

	app := newTestApp()
	stockRoutes(app)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/stock",
		`{"productId": "LED-7W", "productName": "LED Bulb 7W", "category": 1, "quantity": 100, "rate": 65}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", raw)

	var created StockEntryResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotNil(t, created.Category)
	assert.Equal(t, "Lighting", created.Category.Name)
}
