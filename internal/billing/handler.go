package billing

import (
	"errors"
	"fmt"
	"time"

	"electromart-backend/internal/audit"
	"electromart-backend/internal/auth"
	"electromart-backend/internal/database"
	"electromart-backend/internal/inventory"
	"electromart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type BillItemPayload struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

type CreateBillRequest struct {
	CustomerName    string            `json:"customerName"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress"`
	InvoiceDate     string            `json:"invoiceDate"` // "2025-12-09", defaults to today
	Items           []BillItemPayload `json:"items"`
	Discount        decimal.Decimal   `json:"discount"`
	Tax             decimal.Decimal   `json:"tax"`
}

type BillItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

type BillResponse struct {
	ID              uint               `json:"id"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	InvoiceDate     string             `json:"invoiceDate"`
	Items           []BillItemResponse `json:"items"`
	Discount        decimal.Decimal    `json:"discount"`
	Tax             decimal.Decimal    `json:"tax"`
	Total           decimal.Decimal    `json:"total"`
	CreatedAt       string             `json:"createdAt"`
}

func toBillResponse(b *models.Bill) BillResponse {
	items := make([]BillItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, BillItemResponse{
			ProductID:   it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	return BillResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		InvoiceDate:     b.InvoiceDate.Format("2006-01-02"),
		Items:           items,
		Discount:        b.Discount,
		Tax:             b.Tax,
		Total:           b.Total,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/billing
func CreateBillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBillRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		draft := NewDraft()
		if err := draft.SetCustomer(body.CustomerName, body.CustomerPhone, body.CustomerAddress); err != nil {
			return mapBillingError(c, err)
		}
		if err := draft.SetAdjustments(body.Discount, body.Tax); err != nil {
			return mapBillingError(c, err)
		}
		if body.InvoiceDate != "" {
			d, err := time.Parse("2006-01-02", body.InvoiceDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invoiceDate must be 'YYYY-MM-DD'")
			}
			draft.SetDate(d)
		}

		// Items arrive as snapshots taken when the admin picked them; the
		// commit below re-validates them against the ledger.
		for _, item := range body.Items {
			if item.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "item quantity must be greater than zero")
			}
			draft.Items = append(draft.Items, LineItem{
				ProductCode: item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
			})
		}

		bill, err := NewCommitService(database.DB).Commit(draft)
		if err != nil {
			return mapBillingError(c, err)
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		userName, _ := c.Locals(auth.CtxUsernameKey).(string)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "bill",
			EntityID:    bill.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Bill #%d for %s, total %s", bill.ID, bill.CustomerName, bill.Total.StringFixed(2)),
			After:       bill,
		})

		return c.Status(fiber.StatusCreated).JSON(toBillResponse(bill))
	}
}

// GET /api/billing
func ListBillsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bills, err := NewCommitService(database.DB).ListBills()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list bills")
		}

		resp := make([]BillResponse, 0, len(bills))
		for i := range bills {
			resp = append(resp, toBillResponse(&bills[i]))
		}
		return c.JSON(resp)
	}
}

func mapBillingError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	var serr *inventory.InsufficientStockError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Msg)
	case errors.As(err, &serr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        serr.Error(),
			"insufficient": serr.Shortages,
		})
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create bill")
	}
}
