package billing

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"electromart-backend/internal/database"
	"electromart-backend/internal/inventory"

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

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCreateBillEndpoint(t *testing.T) {
	db := setupTestDB(t)
	database.DB = db
	seedEntry(t, inventory.NewLedger(db), "P1", 10, 100)

	app := newTestApp()
	app.Post("/api/billing", CreateBillHandler())
	app.Get("/api/billing", ListBillsHandler())

	body := `{
		"customerName": "Asha Traders",
		"customerPhone": "9876543210",
		"invoiceDate": "2025-01-15",
		"items": [{"productId": "P1", "productName": "Product P1", "quantity": 3, "rate": 100}],
		"discount": 0,
		"tax": 20
	}`
	resp, raw := postJSON(t, app, "/api/billing", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", raw)

	var created struct {
		ID    uint    `json:"id"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 320.0, created.Total)

	entry, err := inventory.NewLedger(db).List()
	require.NoError(t, err)
	assert.Equal(t, 7, entry[0].Quantity)

	// listing is append-only, most-recent-last
	req := httptest.NewRequest(http.MethodGet, "/api/billing", nil)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	listRaw, _ := io.ReadAll(listResp.Body)
	var bills []map[string]any
	require.NoError(t, json.Unmarshal(listRaw, &bills))
	require.Len(t, bills, 1)
}

func TestCreateBillEndpointInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	database.DB = db
	seedEntry(t, inventory.NewLedger(db), "P1", 10, 100)

	app := newTestApp()
	app.Post("/api/billing", CreateBillHandler())

	body := `{
		"customerName": "Asha Traders",
		"customerPhone": "9876543210",
		"items": [{"productId": "P1", "productName": "Product P1", "quantity": 11, "rate": 100}],
		"discount": 0,
		"tax": 0
	}`
	resp, raw := postJSON(t, app, "/api/billing", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var failure struct {
		Error        string `json:"error"`
		Insufficient []struct {
			ProductID string `json:"productId"`
			Requested int    `json:"requested"`
			Available int    `json:"available"`
		} `json:"insufficient"`
	}
	require.NoError(t, json.Unmarshal(raw, &failure))
	require.Len(t, failure.Insufficient, 1)
	assert.Equal(t, "P1", failure.Insufficient[0].ProductID)
	assert.Equal(t, 11, failure.Insufficient[0].Requested)
	assert.Equal(t, 10, failure.Insufficient[0].Available)

	// the ledger is untouched
	entries, err := inventory.NewLedger(db).List()
	require.NoError(t, err)
	assert.Equal(t, 10, entries[0].Quantity)
}

func TestCreateBillEndpointValidation(t *testing.T) {
	db := setupTestDB(t)
	database.DB = db

	app := newTestApp()
	app.Post("/api/billing", CreateBillHandler())

	// missing customer name
	resp, _ := postJSON(t, app, "/api/billing", `{"customerPhone": "9876543210", "items": [{"productId": "P1", "quantity": 1, "rate": 10}]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// empty items
	resp, _ = postJSON(t, app, "/api/billing", `{"customerName": "Asha Traders", "customerPhone": "9876543210", "items": []}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// bad invoice date
	resp, _ = postJSON(t, app, "/api/billing", `{"customerName": "Asha Traders", "customerPhone": "9876543210", "invoiceDate": "15-01-2025", "items": [{"productId": "P1", "quantity": 1, "rate": 10}]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
