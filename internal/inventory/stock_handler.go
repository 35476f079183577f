package inventory

import (
	"errors"
	"fmt"

	"electromart-backend/internal/audit"
	"electromart-backend/internal/auth"
	"electromart-backend/internal/database"
	"electromart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateStockRequest struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Category    *uint           `json:"category"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

type AdjustStockRequest struct {
	Quantity *int             `json:"quantity"` // delta: positive restock, negative correction
	Rate     *decimal.Decimal `json:"rate"`
}

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type StockEntryResponse struct {
	ID          uint            `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Category    *CategoryRef    `json:"category"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	CreatedAt   string          `json:"createdAt"`
}

func toStockEntryResponse(e *models.StockEntry) StockEntryResponse {
	var cat *CategoryRef
	if e.Category != nil {
		cat = &CategoryRef{ID: e.Category.ID, Name: e.Category.Name}
	}
	return StockEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductCode,
		ProductName: e.ProductName,
		Category:    cat,
		Quantity:    e.Quantity,
		Rate:        e.Rate,
		CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Helper: current admin identity for the audit trail.
func userInfo(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userName, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, userName
}

// mapLedgerError translates ledger errors into HTTP responses. Insufficient
// stock gets a structured body so the admin sees which lines are short.
func mapLedgerError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	var serr *InsufficientStockError
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Stock entry not found")
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Msg)
	case errors.As(err, &serr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        serr.Error(),
			"insufficient": serr.Shortages,
		})
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Stock operation failed")
	}
}

// GET /api/stock
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := NewLedger(database.DB).List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock entries")
		}

		resp := make([]StockEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toStockEntryResponse(&entries[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/stock
func CreateStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Category != nil {
			var cat models.Category
			if err := database.DB.First(&cat, "id = ?", *body.Category).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Category not found (ID: %d)", *body.Category))
			}
		}

		entry, err := NewLedger(database.DB).Create(CreateEntryInput{
			ProductCode: body.ProductID,
			ProductName: body.ProductName,
			CategoryID:  body.Category,
			Quantity:    body.Quantity,
			Rate:        body.Rate,
		})
		if err != nil {
			return mapLedgerError(c, err)
		}

		userID, userName := userInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "stock_entry",
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stock entry: %s x%d", entry.ProductName, entry.Quantity),
			After:       entry,
		})

		if body.Category != nil {
			entry, _ = NewLedger(database.DB).Get(entry.ID)
		}
		return c.Status(fiber.StatusCreated).JSON(toStockEntryResponse(entry))
	}
}

// PUT /api/stock/:id
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid stock entry ID")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		ledger := NewLedger(database.DB)
		before, err := ledger.Get(uint(id))
		if err != nil {
			return mapLedgerError(c, err)
		}

		entry, err := ledger.Adjust(uint(id), body.Quantity, body.Rate)
		if err != nil {
			return mapLedgerError(c, err)
		}

		userID, userName := userInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "stock_entry",
			EntityID:    entry.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stock adjusted: %s now x%d", entry.ProductName, entry.Quantity),
			Before:      before,
			After:       entry,
		})

		return c.JSON(toStockEntryResponse(entry))
	}
}

// DELETE /api/stock/:id
func DeleteStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid stock entry ID")
		}

		ledger := NewLedger(database.DB)
		before, err := ledger.Get(uint(id))
		if err != nil {
			return mapLedgerError(c, err)
		}

		if err := ledger.Remove(uint(id)); err != nil {
			return mapLedgerError(c, err)
		}

		userID, userName := userInfo(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "stock_entry",
			EntityID:    before.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Stock entry deleted: %s", before.ProductName),
			Before:      before,
		})

		return c.JSON(fiber.Map{"message": "Stock entry deleted"})
	}
}
